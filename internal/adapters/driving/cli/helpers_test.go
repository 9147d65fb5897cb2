package cli

import (
	"context"
	"time"

	"github.com/campuslabs/advisor-cli/internal/adapters/driven/index/memory"
	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

// mockAdvisor is a stub advisor with canned responses.
type mockAdvisor struct {
	advice   *domain.Advice
	course   *domain.Document
	askErr   error
	lastOpts driving.AskOptions
}

func (m *mockAdvisor) Ask(_ context.Context, _ string, opts driving.AskOptions) (*domain.Advice, error) {
	m.lastOpts = opts
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.advice, nil
}

func (m *mockAdvisor) CourseInfo(_ context.Context, _ string) (*domain.Document, error) {
	return m.course, nil
}

func (m *mockAdvisor) Departments() []string { return []string{"Computer Science", "Statistics"} }

func (m *mockAdvisor) Levels() []string { return []string{"First Year", "Third Year"} }

// mockIndexManager serves a small fixed index.
type mockIndexManager struct {
	ensureErr  error
	statusErr  error
	lastForce  bool
	entryCount int
}

func (m *mockIndexManager) Ensure(ctx context.Context, force bool) (driven.VectorIndex, error) {
	m.lastForce = force
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	idx, _ := memory.NewIndex(2)
	for i := 0; i < m.entryCount; i++ {
		doc := domain.NewDocument(testCourse())
		if err := idx.Add(ctx, doc, []float32{1, 0}); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (m *mockIndexManager) Status(_ context.Context) (*driving.IndexStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return &driving.IndexStatus{
		Entries:    m.entryCount,
		Model:      "nomic-embed-text",
		Dimensions: 768,
		BuiltAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

// mockRetriever serves canned scored results for diagnostics output.
type mockRetriever struct {
	scored    []domain.ScoredDocument
	scoredErr error
}

func (m *mockRetriever) Search(_ context.Context, _ string, _ int, _ domain.Filters) ([]domain.Document, error) {
	docs := make([]domain.Document, len(m.scored))
	for i, s := range m.scored {
		docs[i] = s.Document
	}
	return docs, nil
}

func (m *mockRetriever) SearchWithScores(_ context.Context, _ string, _ int) ([]domain.ScoredDocument, error) {
	if m.scoredErr != nil {
		return nil, m.scoredErr
	}
	return m.scored, nil
}

func (m *mockRetriever) Lookup(_ string) *domain.Document { return nil }

func (m *mockRetriever) Documents() []domain.Document { return nil }

func testCourse() domain.Course {
	return domain.Course{
		Code:          "CPSC 340",
		Title:         "Machine Learning and Data Mining",
		Description:   "Models of algorithms for dimensionality reduction, regression, and classification.",
		Prerequisites: "CPSC 221 and MATH 221",
		Credits:       3,
		Department:    "Computer Science",
		Level:         "Third Year",
	}
}

// setupTestServices installs mock services and returns a cleanup restoring
// the previous wiring.
func setupTestServices() func() {
	oldAdvisor := advisorService
	oldManager := indexManager

	doc := domain.NewDocument(testCourse())
	advisorService = &mockAdvisor{
		advice: &domain.Advice{
			Answer:  "Take CPSC 340.\n\n**Sources:**\n- CPSC 340: Machine Learning and Data Mining (Third Year)",
			Sources: []domain.Document{doc},
		},
		course: &doc,
	}
	indexManager = &mockIndexManager{entryCount: 2}

	return func() {
		advisorService = oldAdvisor
		indexManager = oldManager
	}
}
