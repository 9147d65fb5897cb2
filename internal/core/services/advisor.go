package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
	"github.com/campuslabs/advisor-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// systemPrompt carries the advisor's fixed behavioural rules. Answers must
// be grounded only in the supplied context, with course codes cited.
const systemPrompt = `You are a helpful university course advisor assistant. Your role is to help students find the right courses based on their interests, goals, and background.

IMPORTANT RULES:
1. ONLY recommend courses from the provided context. Never make up courses.
2. Always cite course codes (e.g., CPSC 340) when mentioning courses.
3. Consider prerequisites when making recommendations.
4. Be encouraging but realistic about course difficulty.
5. If the context doesn't contain relevant courses, say so honestly.

When recommending courses:
- Explain WHY each course fits the student's needs
- Mention prerequisites if relevant
- Suggest a logical order if recommending multiple courses
- Note the course level (First Year, Graduate, etc.) to set expectations

Keep responses concise but informative. Use bullet points for multiple recommendations.`

// noCoursesContext tells the model truthfully that retrieval came up empty,
// rather than handing it an empty or misleading context.
const noCoursesContext = "No relevant courses found in the database."

// AdvisorService composes the retriever and the generation model per turn.
// It holds no mutable state: conversation history is owned by the caller's
// session and passed in per call.
type AdvisorService struct {
	retriever   driving.Retriever
	llm         driven.LLMService
	chatOpts    driven.ChatOptions
	departments []string
	levels      []string
}

// NewAdvisorService creates the advisor. chatOpts fix the sampling
// configuration for the deployment; they are not varied per call.
func NewAdvisorService(retriever driving.Retriever, llm driven.LLMService, chatOpts driven.ChatOptions) *AdvisorService {
	docs := retriever.Documents()
	courses := make([]domain.Course, len(docs))
	for i, d := range docs {
		courses[i] = d.Course
	}

	return &AdvisorService{
		retriever:   retriever,
		llm:         llm,
		chatOpts:    chatOpts,
		departments: domain.Departments(courses),
		levels:      domain.Levels(courses),
	}
}

// Ask answers a question grounded in retrieved catalog courses.
func (s *AdvisorService) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.Advice, error) {
	logger.Section("Advisor Turn")
	logger.Debug("Question: %q", question)

	k := opts.K
	if k <= 0 {
		k = driving.DefaultK
	}

	documents, err := s.retriever.Search(ctx, question, k, opts.Filters)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	logger.Debug("Retrieved %d documents", len(documents))

	contextText := FormatContext(documents)
	messages := s.buildMessages(question, contextText, opts.History)
	logger.Debug("Prompt: %d messages, %d history turns", len(messages), opts.History.Len())

	answer, err := s.llm.Chat(ctx, messages, s.chatOpts)
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrAdvisorGeneration, domain.ErrGenerationService, err)
	}

	// Citations are only ever appended for real retrieved documents;
	// an empty result set gets no citation block.
	if opts.IncludeSources && len(documents) > 0 {
		answer += "\n\n" + FormatSources(documents)
	}

	return &domain.Advice{
		Answer:  answer,
		Sources: documents,
		Context: contextText,
	}, nil
}

// CourseInfo looks up a course directly by its code. Semantic search is
// reserved for fuzzy queries; a code is a key, not a query.
func (s *AdvisorService) CourseInfo(_ context.Context, code string) (*domain.Document, error) {
	return s.retriever.Lookup(code), nil
}

// Departments returns the filterable department values in the catalog.
func (s *AdvisorService) Departments() []string {
	return s.departments
}

// Levels returns the filterable level values in the catalog.
func (s *AdvisorService) Levels() []string {
	return s.levels
}

// buildMessages assembles the generation prompt: system rules, then the
// bounded history oldest first, then the context-bearing question.
func (s *AdvisorService) buildMessages(question, contextText string, history *domain.History) []driven.ChatMessage {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: systemPrompt},
	}

	for _, turn := range history.Turns() {
		messages = append(messages,
			driven.ChatMessage{Role: driven.RoleUser, Content: turn.Question},
			driven.ChatMessage{Role: driven.RoleAssistant, Content: turn.Answer},
		)
	}

	userPrompt := fmt.Sprintf(`Based on the following courses, please help answer the student's question.

AVAILABLE COURSES:
%s

STUDENT'S QUESTION: %s

Provide a helpful response recommending relevant courses from the list above.`, contextText, question)

	return append(messages, driven.ChatMessage{Role: driven.RoleUser, Content: userPrompt})
}

// FormatContext serialises retrieved documents into the fixed context
// template, numbered in retrieval order. The numbering is presentational.
func FormatContext(documents []domain.Document) string {
	if len(documents) == 0 {
		return noCoursesContext
	}

	parts := make([]string, len(documents))
	for i, doc := range documents {
		c := doc.Course
		parts[i] = fmt.Sprintf(`Course %d: %s - %s
Department: %s | Level: %s | Credits: %g
Prerequisites: %s
Description: %s`,
			i+1, c.Code, c.Title, c.Department, c.Level, c.Credits, c.Prerequisites, c.Description)
	}

	return strings.Join(parts, "\n\n")
}

// FormatSources renders the citation block, one line per retrieved document.
func FormatSources(documents []domain.Document) string {
	if len(documents) == 0 {
		return ""
	}

	lines := make([]string, len(documents))
	for i, doc := range documents {
		c := doc.Course
		lines[i] = fmt.Sprintf("- %s: %s (%s)", c.Code, c.Title, c.Level)
	}

	return "**Sources:**\n" + strings.Join(lines, "\n")
}
