package mcp

import (
	"context"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

// mockAdvisorService is a configurable stub for the advisor port.
type mockAdvisorService struct {
	advice   *domain.Advice
	course   *domain.Document
	err      error
	lastOpts driving.AskOptions
	asks     int
}

func (m *mockAdvisorService) Ask(_ context.Context, _ string, opts driving.AskOptions) (*domain.Advice, error) {
	m.asks++
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.advice, nil
}

func (m *mockAdvisorService) CourseInfo(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockAdvisorService) Departments() []string {
	return []string{"Computer Science", "Statistics"}
}

func (m *mockAdvisorService) Levels() []string {
	return []string{"First Year", "Second Year"}
}

func mlDocument() domain.Document {
	return domain.NewDocument(domain.Course{
		Code:          "CPSC 340",
		Title:         "Machine Learning and Data Mining",
		Description:   "Models of algorithms for dimensionality reduction, regression, and classification.",
		Prerequisites: "CPSC 221 and MATH 221",
		Credits:       3,
		Department:    "Computer Science",
		Level:         "Third Year",
	})
}
