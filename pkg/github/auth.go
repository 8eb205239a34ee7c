package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/juhahinkula/classroom-fix/internal/runner"
	"github.com/juhahinkula/classroom-fix/pkg/config"
)

// GetToken retrieves the GitHub token from environment variable or config file
func GetToken(cfg *config.Config) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}

	if cfg != nil && strings.TrimSpace(cfg.GitHub.Token) != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}

	return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN or configure github.token in ~/.classroom-fix/config.yaml")
}

// NewInvitationAPI builds the invitation backend selected in the configuration.
// The cli backend reuses the gh runner; the rest backend needs a token.
func NewInvitationAPI(cfg *config.Config, r runner.Runner) (InvitationAPI, error) {
	switch cfg.GitHub.Backend {
	case config.BackendCLI, "":
		return NewCLIClient(r), nil

	case config.BackendREST:
		token, err := GetToken(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.GitHub.BaseURL != "" {
			return NewEnterpriseClient(token, cfg.GitHub.BaseURL)
		}
		return NewClient(token), nil

	default:
		return nil, fmt.Errorf("unknown github backend %q", cfg.GitHub.Backend)
	}
}

// GetAuthInstructions returns instructions for setting up authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. The default backend uses the gh CLI:

   gh auth login
   gh extension install github/gh-classroom

For the rest backend, provide a token with the 'repo' scope using one of:

1. Environment Variable (a .env file in the working directory is also read):
   export GITHUB_TOKEN="your_personal_access_token"

2. Configuration File (~/.classroom-fix/config.yaml):

   github:
     backend: rest
     token: "your_personal_access_token"

Classroom listing always goes through gh-classroom, so gh must be authenticated either way.`
}
