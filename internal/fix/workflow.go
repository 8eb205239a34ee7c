package fix

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/juhahinkula/classroom-fix/pkg/classroom"
	"github.com/juhahinkula/classroom-fix/pkg/fuzzy"
	"github.com/juhahinkula/classroom-fix/pkg/github"
)

// ClassroomSource lists classrooms, assignments and accepted assignments
type ClassroomSource interface {
	ListClassrooms(ctx context.Context) ([]classroom.Classroom, error)
	ListAssignments(ctx context.Context, classroomID string) ([]classroom.Assignment, error)
	ListAcceptedAssignments(ctx context.Context, assignmentID string, page int) ([]classroom.AcceptedAssignment, error)
}

// Summary counts what a run did
type Summary struct {
	Pages    int
	Students int
	Repaired int
	Skipped  int
}

// Workflow walks the operator from classroom selection to repaired invitations
type Workflow struct {
	Classrooms ClassroomSource
	API        github.InvitationAPI
	Selector   fuzzy.Selector
	Out        io.Writer
	Logger     *slog.Logger
	DryRun     bool
}

// Run executes the workflow. Any returned error means the run was aborted;
// work done before the failure is not rolled back.
func (w *Workflow) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	logger := w.logger()

	fmt.Fprintln(w.Out, "Fetching classrooms...")
	classrooms, err := w.Classrooms.ListClassrooms(ctx)
	if err != nil {
		return summary, err
	}
	if len(classrooms) == 0 {
		fmt.Fprintln(w.Out, "No classrooms found.")
		return summary, nil
	}

	selectedClassroom, err := w.selectClassroom(ctx, classrooms)
	if err != nil {
		return summary, err
	}
	fmt.Fprintf(w.Out, "Selected: %s\n", selectedClassroom.Name)

	fmt.Fprintf(w.Out, "Fetching assignments for classroom %s...\n", selectedClassroom.Name)
	assignments, err := w.Classrooms.ListAssignments(ctx, selectedClassroom.ID)
	if err != nil {
		return summary, err
	}
	if len(assignments) == 0 {
		fmt.Fprintln(w.Out, "No assignments found.")
		return summary, nil
	}

	selectedAssignment, err := w.selectAssignment(ctx, assignments)
	if err != nil {
		return summary, err
	}
	fmt.Fprintf(w.Out, "Selected: %s\n", selectedAssignment.Title)

	logger = logger.With("classroom_id", selectedClassroom.ID, "assignment_id", selectedAssignment.ID)
	repairer := github.NewRepairer(w.API, w.Out, w.DryRun)

	for page := 1; ; page++ {
		fmt.Fprintf(w.Out, "Fetching page %d of accepted assignments...\n", page)
		accepted, err := w.Classrooms.ListAcceptedAssignments(ctx, selectedAssignment.ID, page)
		if err != nil {
			return summary, err
		}
		summary.Pages++

		if len(accepted) == 0 {
			break
		}

		for _, submission := range accepted {
			summary.Students++

			repaired, err := w.processSubmission(ctx, logger, repairer, submission)
			if err != nil {
				return summary, err
			}
			if repaired {
				summary.Repaired++
			} else {
				summary.Skipped++
			}
		}
	}

	fmt.Fprintln(w.Out, "Done fixing pending invitations.")
	logger.Info("run complete",
		"pages", summary.Pages,
		"students", summary.Students,
		"repaired", summary.Repaired,
		"skipped", summary.Skipped,
		"dry_run", w.DryRun,
	)

	return summary, nil
}

func (w *Workflow) processSubmission(ctx context.Context, logger *slog.Logger, repairer *github.Repairer, submission classroom.AcceptedAssignment) (bool, error) {
	ref, ok := github.RepoFromURL(submission.RepositoryURL)
	if !ok {
		fmt.Fprintf(w.Out, "Skipping %s (unrecognised repository URL %q)\n", submission.Student, submission.RepositoryURL)
		return false, nil
	}

	invitationID, found := github.FindPendingInvitation(ctx, w.API, logger, ref.Owner, ref.Name, submission.Student)
	if !found {
		fmt.Fprintf(w.Out, "Skipping %s for %s (no pending invitation)\n", submission.Student, ref)
		return false, nil
	}

	if err := repairer.Repair(ctx, ref, submission.Student, invitationID); err != nil {
		return false, err
	}

	logger.Debug("invitation repaired", "student", submission.Student, "repository", ref.String(), "invitation_id", invitationID)
	return true, nil
}

func (w *Workflow) selectClassroom(ctx context.Context, classrooms []classroom.Classroom) (classroom.Classroom, error) {
	options := make([]fuzzy.Option, len(classrooms))
	for i, c := range classrooms {
		options[i] = fuzzy.Option{Value: c.ID, Description: c.Name}
	}

	index, err := w.Selector.Select(ctx, "Available classrooms:", "Select a classroom (number): ", options)
	if err != nil {
		return classroom.Classroom{}, fmt.Errorf("classroom selection failed: %w", err)
	}
	return classrooms[index], nil
}

func (w *Workflow) selectAssignment(ctx context.Context, assignments []classroom.Assignment) (classroom.Assignment, error) {
	options := make([]fuzzy.Option, len(assignments))
	for i, a := range assignments {
		options[i] = fuzzy.Option{Value: a.ID, Description: a.Title}
	}

	index, err := w.Selector.Select(ctx, "Available assignments:", "Select an assignment (number): ", options)
	if err != nil {
		return classroom.Assignment{}, fmt.Errorf("assignment selection failed: %w", err)
	}
	return assignments[index], nil
}

func (w *Workflow) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
