package classroom

import "strings"

// TableParser turns the human-readable tables printed by gh-classroom into records.
// Swap the implementation if the extension grows a structured output mode.
type TableParser interface {
	ParseClassrooms(output string) []Classroom
	ParseAssignments(output string) []Assignment
	ParseAcceptedAssignments(output string) []AcceptedAssignment
}

// Number of leading lines in each table that are not data rows
const (
	listHeaderLines     = 2 // "N Classrooms" + column header
	acceptedHeaderLines = 4
)

// TextParser parses the plain text layout of gh-classroom
type TextParser struct{}

// ParseClassrooms parses the output of `gh classroom list`
func (TextParser) ParseClassrooms(output string) []Classroom {
	var classrooms []Classroom
	for _, row := range parseListRows(output) {
		classrooms = append(classrooms, Classroom{ID: row.id, Name: row.name})
	}
	return classrooms
}

// ParseAssignments parses the output of `gh classroom assignments`
func (TextParser) ParseAssignments(output string) []Assignment {
	var assignments []Assignment
	for _, row := range parseListRows(output) {
		assignments = append(assignments, Assignment{ID: row.id, Title: row.name})
	}
	return assignments
}

// ParseAcceptedAssignments parses the output of `gh classroom accepted-assignments`
func (TextParser) ParseAcceptedAssignments(output string) []AcceptedAssignment {
	lines := strings.Split(output, "\n")
	if len(lines) <= acceptedHeaderLines {
		return nil
	}

	var accepted []AcceptedAssignment
	for _, line := range lines[acceptedHeaderLines:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		accepted = append(accepted, AcceptedAssignment{
			Student:       strings.TrimSpace(fields[len(fields)-2]),
			RepositoryURL: strings.TrimSpace(fields[len(fields)-1]),
		})
	}

	return accepted
}

type listRow struct {
	id   string
	name string
}

// parseListRows handles the shared "ID  Name words  URL" layout of classrooms and assignments
func parseListRows(output string) []listRow {
	lines := strings.Split(output, "\n")
	if len(lines) < listHeaderLines+1 {
		return nil
	}

	var rows []listRow
	for _, line := range lines[listHeaderLines:] {
		tokens := strings.Fields(line)
		// id + at least one name token + url
		if len(tokens) < 3 {
			continue
		}

		rows = append(rows, listRow{
			id:   tokens[0],
			name: strings.Join(tokens[1:len(tokens)-1], " "),
		})
	}

	return rows
}

// Ensure TextParser implements the interface
var _ TableParser = TextParser{}
