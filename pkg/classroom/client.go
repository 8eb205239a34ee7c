package classroom

import (
	"context"
	"fmt"
	"strconv"

	"github.com/juhahinkula/classroom-fix/internal/runner"
)

// PageSize is the fixed number of accepted assignments requested per page
const PageSize = 30

// Client queries GitHub Classroom through the gh-classroom extension
type Client struct {
	runner runner.Runner
	parser TableParser
}

// NewClient creates a classroom client that parses the extension's text tables
func NewClient(r runner.Runner) *Client {
	return NewClientWithParser(r, TextParser{})
}

// NewClientWithParser creates a classroom client with a custom table parser
func NewClientWithParser(r runner.Runner, parser TableParser) *Client {
	return &Client{
		runner: r,
		parser: parser,
	}
}

// ListClassrooms runs `gh classroom list`
func (c *Client) ListClassrooms(ctx context.Context) ([]Classroom, error) {
	output, err := c.runner.Run(ctx, "classroom", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list classrooms: %w", err)
	}
	return c.parser.ParseClassrooms(output), nil
}

// ListAssignments runs `gh classroom assignments -c <classroom>`
func (c *Client) ListAssignments(ctx context.Context, classroomID string) ([]Assignment, error) {
	output, err := c.runner.Run(ctx, "classroom", "assignments", "-c", classroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for classroom %s: %w", classroomID, err)
	}
	return c.parser.ParseAssignments(output), nil
}

// ListAcceptedAssignments fetches one page (1-based) of accepted assignments
func (c *Client) ListAcceptedAssignments(ctx context.Context, assignmentID string, page int) ([]AcceptedAssignment, error) {
	output, err := c.runner.Run(ctx,
		"classroom", "accepted-assignments",
		"-a", assignmentID,
		"--per-page", strconv.Itoa(PageSize),
		"--page", strconv.Itoa(page),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted assignments for %s (page %d): %w", assignmentID, page, err)
	}
	return c.parser.ParseAcceptedAssignments(output), nil
}
