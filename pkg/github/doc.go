// Package github repairs repository invitations that students never accepted.
//
// The package includes:
// - InvitationAPI, implemented by CLIClient (gh api) and Client (REST via go-github)
// - FindPendingInvitation for looking up a student's open invitation
// - Repairer, which deletes the invitation and adds the student as a collaborator
// - GitHubError for classifying REST API failures
package github
