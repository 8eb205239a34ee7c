package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/juhahinkula/classroom-fix/internal/runner"
)

// CLIClient implements InvitationAPI by shelling out to `gh api`
type CLIClient struct {
	runner runner.Runner
}

// NewCLIClient creates an InvitationAPI backed by the gh CLI
func NewCLIClient(r runner.Runner) *CLIClient {
	return &CLIClient{runner: r}
}

// invitationPayload is the subset of the REST invitation object we read
type invitationPayload struct {
	ID      int64 `json:"id"`
	Invitee *struct {
		Login string `json:"login"`
	} `json:"invitee"`
}

// DecodeInvitations decodes the JSON array returned by GET /repos/{owner}/{repo}/invitations
func DecodeInvitations(data []byte) ([]Invitation, error) {
	var payload []invitationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode invitations: %w", err)
	}

	invitations := make([]Invitation, 0, len(payload))
	for _, p := range payload {
		inv := Invitation{ID: p.ID}
		if p.Invitee != nil {
			inv.Invitee = p.Invitee.Login
		}
		invitations = append(invitations, inv)
	}

	return invitations, nil
}

// ListInvitations lists pending invitations for a repository (first page only, as gh api returns it)
func (c *CLIClient) ListInvitations(ctx context.Context, owner, repo string) ([]Invitation, error) {
	output, err := c.runner.Run(ctx, "api", fmt.Sprintf("/repos/%s/%s/invitations", owner, repo))
	if err != nil {
		return nil, err
	}
	return DecodeInvitations([]byte(output))
}

// DeleteInvitation deletes a pending invitation by ID
func (c *CLIClient) DeleteInvitation(ctx context.Context, owner, repo string, invitationID int64) error {
	_, err := c.runner.Run(ctx,
		"api", "-X", "DELETE",
		fmt.Sprintf("/repos/%s/%s/invitations/%d", owner, repo, invitationID),
		"--silent",
	)
	return err
}

// AddCollaborator adds a user to the repository with the given permission
func (c *CLIClient) AddCollaborator(ctx context.Context, owner, repo, username, permission string) error {
	_, err := c.runner.Run(ctx,
		"api", "-X", "PUT",
		fmt.Sprintf("/repos/%s/%s/collaborators/%s", owner, repo, username),
		"-f", "permission="+permission,
		"--silent",
	)
	return err
}

// Ensure CLIClient implements the interface
var _ InvitationAPI = (*CLIClient)(nil)
