package classroom

// Classroom is one row of `gh classroom list`
type Classroom struct {
	ID   string
	Name string
}

// Assignment is one row of `gh classroom assignments`
type Assignment struct {
	ID    string
	Title string
}

// AcceptedAssignment links a student to the repository created when they accepted an assignment
type AcceptedAssignment struct {
	Student       string
	RepositoryURL string
}
