package github

import (
	"fmt"
	"strings"
)

// PermissionWrite is the collaborator permission granted when repairing an invitation
const PermissionWrite = "write"

// Invitation represents a pending repository invitation
type Invitation struct {
	ID      int64  `json:"id"`
	Invitee string `json:"invitee"`
}

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string
	Name  string
}

// String returns "owner/name"
func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// RepoFromURL takes the last two path segments of a repository URL as owner and name.
// Other URL shapes are not validated; a URL without any "/" is rejected.
func RepoFromURL(url string) (RepoRef, bool) {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return RepoRef{}, false
	}

	return RepoRef{
		Owner: parts[len(parts)-2],
		Name:  parts[len(parts)-1],
	}, true
}
