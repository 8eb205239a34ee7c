package github

import "context"

// InvitationAPI defines the GitHub operations needed to repair pending invitations
type InvitationAPI interface {
	ListInvitations(ctx context.Context, owner, repo string) ([]Invitation, error)
	DeleteInvitation(ctx context.Context, owner, repo string, invitationID int64) error
	AddCollaborator(ctx context.Context, owner, repo, username, permission string) error
}
