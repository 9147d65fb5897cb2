package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Course represents one catalog entry. Courses are loaded wholesale at
// index-build time and never mutated afterwards.
type Course struct {
	// Code is the unique course identifier, e.g. "CPSC 340".
	Code string `json:"course_code"`

	// Title is the human-readable course title.
	Title string `json:"title"`

	// Description is the free-text calendar description.
	Description string `json:"description"`

	// Prerequisites is free text, displayed verbatim and never parsed
	// into a structured prerequisite graph.
	Prerequisites string `json:"prerequisites"`

	// Credits is the credit value of the course.
	Credits float64 `json:"credits"`

	// Department is the offering department, e.g. "Computer Science".
	Department string `json:"department"`

	// Level is the course level, e.g. "First Year" or "Graduate".
	Level string `json:"level"`

	// Source is the provenance tag for the record.
	Source string `json:"source"`
}

// Validate checks that all required fields are present and credits are positive.
func (c *Course) Validate() error {
	switch {
	case strings.TrimSpace(c.Code) == "":
		return fmt.Errorf("%w: course code is required", ErrInvalidCourse)
	case strings.TrimSpace(c.Title) == "":
		return fmt.Errorf("%w: course %s missing title", ErrInvalidCourse, c.Code)
	case strings.TrimSpace(c.Description) == "":
		return fmt.Errorf("%w: course %s missing description", ErrInvalidCourse, c.Code)
	case strings.TrimSpace(c.Department) == "":
		return fmt.Errorf("%w: course %s missing department", ErrInvalidCourse, c.Code)
	case strings.TrimSpace(c.Level) == "":
		return fmt.Errorf("%w: course %s missing level", ErrInvalidCourse, c.Code)
	case c.Credits <= 0:
		return fmt.Errorf("%w: course %s has non-positive credits", ErrInvalidCourse, c.Code)
	}
	return nil
}

// levelOrder is the conceptual ordering of course levels, used only for
// presenting level lists in a sensible order.
var levelOrder = map[string]int{
	"First Year":  1,
	"Second Year": 2,
	"Third Year":  3,
	"Fourth Year": 4,
	"Graduate":    5,
}

// Departments returns the distinct departments across courses, sorted
// alphabetically. Used to populate filter choices.
func Departments(courses []Course) []string {
	return distinct(courses, func(c Course) string { return c.Department }, func(a, b string) bool {
		return a < b
	})
}

// Levels returns the distinct levels across courses, ordered First Year
// through Graduate. Unknown levels sort last, alphabetically.
func Levels(courses []Course) []string {
	return distinct(courses, func(c Course) string { return c.Level }, func(a, b string) bool {
		oa, oka := levelOrder[a]
		ob, okb := levelOrder[b]
		if oka && okb {
			return oa < ob
		}
		if oka != okb {
			return oka
		}
		return a < b
	})
}

func distinct(courses []Course, key func(Course) string, less func(a, b string) bool) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, c := range courses {
		v := key(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return less(values[i], values[j]) })
	return values
}
