package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client implements InvitationAPI using the GitHub REST API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string) *Client {
	return &Client{client: github.NewClient(newOAuthHTTPClient(token))}
}

// NewEnterpriseClient creates a client for a GitHub Enterprise Server API URL
func NewEnterpriseClient(token, baseURL string) (*Client, error) {
	client, err := github.NewClient(newOAuthHTTPClient(token)).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub Enterprise URL %q: %w", baseURL, err)
	}
	return &Client{client: client}, nil
}

func newOAuthHTTPClient(token string) *http.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(context.Background(), ts)
}

// ListInvitations lists all pending invitations for a repository
func (c *Client) ListInvitations(ctx context.Context, owner, repo string) ([]Invitation, error) {
	opts := &github.ListOptions{PerPage: 100}

	var allInvitations []Invitation
	for {
		invitations, resp, err := c.client.Repositories.ListInvitations(ctx, owner, repo, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("invitations for %s/%s", owner, repo))
		}

		for _, inv := range invitations {
			allInvitations = append(allInvitations, Invitation{
				ID:      inv.GetID(),
				Invitee: inv.GetInvitee().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allInvitations, nil
}

// DeleteInvitation deletes a pending invitation by ID
func (c *Client) DeleteInvitation(ctx context.Context, owner, repo string, invitationID int64) error {
	_, err := c.client.Repositories.DeleteInvitation(ctx, owner, repo, invitationID)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("invitation %d for %s/%s", invitationID, owner, repo))
	}
	return nil
}

// AddCollaborator adds a collaborator to a repository
func (c *Client) AddCollaborator(ctx context.Context, owner, repo, username, permission string) error {
	opts := &github.RepositoryAddCollaboratorOptions{
		Permission: permission,
	}

	_, _, err := c.client.Repositories.AddCollaborator(ctx, owner, repo, username, opts)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("collaborator %s for %s/%s", username, owner, repo))
	}
	return nil
}

// Ensure Client implements the interface
var _ InvitationAPI = (*Client)(nil)
