package domain

// Filters holds the optional metadata equality predicates for retrieval.
// All set predicates must match (AND semantics). Empty fields match anything.
type Filters struct {
	// Department filters to an exact department, e.g. "Computer Science".
	Department string

	// Level filters to an exact level, e.g. "Graduate".
	Level string
}

// Empty reports whether no predicates are set.
func (f Filters) Empty() bool {
	return f.Department == "" && f.Level == ""
}

// Matches reports whether the document satisfies every set predicate.
func (f Filters) Matches(doc Document) bool {
	if f.Department != "" && doc.Course.Department != f.Department {
		return false
	}
	if f.Level != "" && doc.Course.Level != f.Level {
		return false
	}
	return true
}
