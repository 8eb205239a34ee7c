//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// fakeGH answers the gh invocations made for one classroom with one pending invitation
// and records every call in $FAKE_GH_LOG
const fakeGH = `#!/bin/sh
echo "$*" >> "$FAKE_GH_LOG"
case "$*" in
"classroom list")
  printf '1 Classrooms\nID  Name  URL\nC1  Intro to Systems  https://classroom.github.com/classrooms/c1\n' ;;
"classroom assignments -c C1")
  printf '1 Assignments\nID  Title  URL\nA1  Lab 1  https://classroom.github.com/a/1\n' ;;
"classroom accepted-assignments -a A1 --per-page 30 --page 1")
  printf 'Assignment: Lab 1\nID: A1\n\nID\tSubmitted\tPassing\tStudent\tRepository\n1\ttrue\tfalse\talice\thttps://github.com/org1/repo1\n' ;;
"classroom accepted-assignments -a A1 --per-page 30 --page 2")
  printf 'Assignment: Lab 1\nID: A1\n\nID\tSubmitted\tPassing\tStudent\tRepository\n' ;;
"api /repos/org1/repo1/invitations")
  printf '[{"id": 42, "invitee": {"login": "alice"}}]' ;;
"api -X DELETE /repos/org1/repo1/invitations/42 --silent") ;;
"api -X PUT /repos/org1/repo1/collaborators/alice -f permission=write --silent") ;;
*)
  echo "unexpected call: $*" >&2
  exit 1 ;;
esac
`

func getProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "../.."
	}
	// Walk up until we find go.mod
	for dir != "/" {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		dir = filepath.Dir(dir)
	}
	return "../.."
}

// getBinaryPath uses CLASSROOM_FIX_BINARY from CI or builds the binary locally
func getBinaryPath(t *testing.T) string {
	t.Helper()

	if binaryPath := os.Getenv("CLASSROOM_FIX_BINARY"); binaryPath != "" {
		return binaryPath
	}

	binaryPath := filepath.Join(t.TempDir(), "classroom-fix-test")
	buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCmd.Dir = getProjectRoot()
	var buildOut bytes.Buffer
	buildCmd.Stdout = &buildOut
	buildCmd.Stderr = &buildOut
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v\nOutput: %s", err, buildOut.String())
	}
	return binaryPath
}

// setupFakeGH writes the fake gh script and a config that points at it
func setupFakeGH(t *testing.T, script string) (configPath, logPath string) {
	t.Helper()

	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "gh.sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0700); err != nil {
		t.Fatalf("Failed to write fake gh: %v", err)
	}

	configPath = filepath.Join(dir, "config.yaml")
	config := "github:\n  command: sh " + scriptPath + "\n  backend: cli\nselector: numbered\nlogging:\n  level: warn\n  format: text\n"
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return configPath, filepath.Join(dir, "calls.log")
}

func runBinary(t *testing.T, binaryPath, stdin, logPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "FAKE_GH_LOG="+logPath, "HOME="+t.TempDir(), "NO_COLOR=1")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestCLIHelp(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "help command", args: []string{"--help"}, expected: "classroom-fix"},
		{name: "init help", args: []string{"init", "--help"}, expected: "init"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runBinary(t, binaryPath, "", filepath.Join(t.TempDir(), "calls.log"), tt.args...)
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if !strings.Contains(stdout, tt.expected) {
				t.Errorf("Expected output to contain '%s', got: %s", tt.expected, stdout)
			}
		})
	}
}

func TestCLIRepairsPendingInvitation(t *testing.T) {
	binaryPath := getBinaryPath(t)
	configPath, logPath := setupFakeGH(t, fakeGH)

	stdout, stderr, err := runBinary(t, binaryPath, "1\n1\n", logPath, "--config", configPath)
	if err != nil {
		t.Fatalf("Command failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	for _, expected := range []string{
		"1. Intro to Systems (ID: C1)",
		"Selected: Lab 1",
		"Fetching page 2 of accepted assignments...",
		"Deleting pending invitation for org1/repo1 (ID: 42)",
		"Adding alice to org1/repo1",
		"Done fixing pending invitations.",
	} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("Expected output to contain %q, got: %s", expected, stdout)
		}
	}

	calls, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read call log: %v", err)
	}
	log := string(calls)
	deleteAt := strings.Index(log, "api -X DELETE /repos/org1/repo1/invitations/42")
	addAt := strings.Index(log, "api -X PUT /repos/org1/repo1/collaborators/alice")
	if deleteAt < 0 || addAt < 0 || deleteAt > addAt {
		t.Errorf("Expected delete before add, got calls:\n%s", log)
	}
}

func TestCLIDryRunMakesNoChanges(t *testing.T) {
	binaryPath := getBinaryPath(t)
	configPath, logPath := setupFakeGH(t, fakeGH)

	stdout, stderr, err := runBinary(t, binaryPath, "1\n1\n", logPath, "--config", configPath, "--dry-run")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}

	if !strings.Contains(stdout, "[dry-run] Deleting pending invitation for org1/repo1 (ID: 42)") {
		t.Errorf("Expected dry-run output, got: %s", stdout)
	}

	calls, _ := os.ReadFile(logPath)
	if strings.Contains(string(calls), "-X DELETE") || strings.Contains(string(calls), "-X PUT") {
		t.Errorf("Dry run must not modify repositories, got calls:\n%s", calls)
	}
}

func TestCLIFailingCommandExitsNonZero(t *testing.T) {
	binaryPath := getBinaryPath(t)
	configPath, logPath := setupFakeGH(t, "#!/bin/sh\necho 'unknown command \"classroom\" for \"gh\"' >&2\nexit 1\n")

	stdout, stderr, err := runBinary(t, binaryPath, "", logPath, "--config", configPath)

	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}
	if !strings.Contains(stdout, "Fetching classrooms...") {
		t.Errorf("Expected progress before failure, got: %s", stdout)
	}
	if !strings.Contains(stderr, "Error running command: sh ") || !strings.Contains(stderr, "unknown command") {
		t.Errorf("Expected command and stderr in error output, got: %s", stderr)
	}
}
