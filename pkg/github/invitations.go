package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// FindPendingInvitation returns the ID of the first invitation addressed to student.
//
// Lookup failures (command errors, API errors, malformed JSON) are reported as
// "not found" so one broken repository does not stop the run. This also hides
// real API problems, so the cause is logged at warn level.
func FindPendingInvitation(ctx context.Context, api InvitationAPI, logger *slog.Logger, owner, repo, student string) (int64, bool) {
	invitations, err := api.ListInvitations(ctx, owner, repo)
	if err != nil {
		if logger != nil {
			logger.Warn("invitation lookup failed, treating as no pending invitation",
				"repository", owner+"/"+repo,
				"student", student,
				"error", err,
			)
		}
		return 0, false
	}

	return MatchInvitation(invitations, student)
}

// MatchInvitation finds the first invitation whose invitee login equals student exactly.
// An empty student never matches, so invitations without an invitee are ignored.
func MatchInvitation(invitations []Invitation, student string) (int64, bool) {
	if student == "" {
		return 0, false
	}
	for _, inv := range invitations {
		if inv.Invitee == student {
			return inv.ID, true
		}
	}
	return 0, false
}

// Repairer replaces a pending invitation with a direct collaborator grant
type Repairer struct {
	api    InvitationAPI
	out    io.Writer
	dryRun bool
}

// NewRepairer creates a Repairer that reports its actions to out
func NewRepairer(api InvitationAPI, out io.Writer, dryRun bool) *Repairer {
	return &Repairer{api: api, out: out, dryRun: dryRun}
}

// Repair deletes the invitation and then adds the student with write permission.
// Nothing is read back. If the second step fails the invitation stays deleted.
func (r *Repairer) Repair(ctx context.Context, ref RepoRef, student string, invitationID int64) error {
	prefix := ""
	if r.dryRun {
		prefix = "[dry-run] "
	}

	fmt.Fprintf(r.out, "%sDeleting pending invitation for %s (ID: %d)\n", prefix, ref, invitationID)
	if !r.dryRun {
		if err := r.api.DeleteInvitation(ctx, ref.Owner, ref.Name, invitationID); err != nil {
			return fmt.Errorf("failed to delete invitation %d for %s: %w", invitationID, ref, err)
		}
	}

	fmt.Fprintf(r.out, "%sAdding %s to %s\n", prefix, student, ref)
	if !r.dryRun {
		if err := r.api.AddCollaborator(ctx, ref.Owner, ref.Name, student, PermissionWrite); err != nil {
			return fmt.Errorf("failed to add %s as collaborator to %s: %w", student, ref, err)
		}
	}

	return nil
}
