package driving

import (
	"context"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// AdvisorService is the conversational entry point for UI collaborators.
// The advisor is stateless across calls; conversation history is owned by
// the caller's session and passed in per call.
type AdvisorService interface {
	// Ask answers a question grounded in retrieved catalog courses.
	// Empty retrieval is not an error: generation still runs with an
	// explicit "no relevant courses" context and no citation block.
	// Generation failures surface as domain.ErrAdvisorGeneration
	// wrapping domain.ErrGenerationService.
	Ask(ctx context.Context, question string, opts AskOptions) (*domain.Advice, error)

	// CourseInfo looks up a course by its exact code, case-insensitively.
	// Returns nil and no error when the course does not exist.
	CourseInfo(ctx context.Context, code string) (*domain.Document, error)

	// Departments returns the filterable department values in the catalog.
	Departments() []string

	// Levels returns the filterable level values in the catalog.
	Levels() []string
}

// AskOptions configures a single advisor turn.
type AskOptions struct {
	// K is the number of courses to retrieve for context (default 4).
	K int

	// Filters restricts retrieval by department and/or level.
	Filters domain.Filters

	// History is the caller's bounded conversation buffer. May be nil.
	History *domain.History

	// IncludeSources controls whether a citation block is appended when
	// at least one course was retrieved.
	IncludeSources bool
}

// DefaultK is the default retrieval fan-out.
const DefaultK = 4

// NewAskOptions returns options with defaults applied.
func NewAskOptions() AskOptions {
	return AskOptions{K: DefaultK, IncludeSources: true}
}
