package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

func mlCourse() domain.Course {
	return domain.Course{
		Code:          "CPSC 340",
		Title:         "Machine Learning and Data Mining",
		Description:   "Models of algorithms for dimensionality reduction, nonlinear regression, classification.",
		Prerequisites: "CPSC 221 and one of MATH 152, MATH 221, MATH 223.",
		Credits:       3,
		Department:    "Computer Science",
		Level:         "Third Year",
		Source:        "UBC Academic Calendar",
	}
}

func chatOpts() driven.ChatOptions {
	return driven.ChatOptions{MaxTokens: 1024, Temperature: 0.3}
}

func TestAdvisor_Ask_CitationPresence(t *testing.T) {
	retriever := &fakeRetriever{docs: []domain.Document{domain.NewDocument(mlCourse())}}
	llm := &fakeLLM{answer: "I recommend CPSC 340 for machine learning."}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	advice, err := advisor.Ask(context.Background(), "What ML courses are there?", driving.NewAskOptions())

	require.NoError(t, err)
	assert.Contains(t, advice.Answer, "I recommend CPSC 340")
	assert.Contains(t, advice.Answer, "**Sources:**")
	assert.Contains(t, advice.Answer, "- CPSC 340: Machine Learning and Data Mining (Third Year)")
	require.Len(t, advice.Sources, 1)
	assert.Contains(t, advice.Context, "CPSC 340")
}

func TestAdvisor_Ask_NoResultsGrounding(t *testing.T) {
	retriever := &fakeRetriever{} // retrieval returns nothing
	llm := &fakeLLM{answer: "I could not find relevant courses for that."}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	opts := driving.NewAskOptions()
	opts.Filters = domain.Filters{Department: "Nonexistent Dept"}

	advice, err := advisor.Ask(context.Background(), "completely unrelated nonsense query", opts)

	require.NoError(t, err)
	// The model is told truthfully that nothing was found.
	assert.Contains(t, advice.Context, "No relevant courses found")
	// And no citation block is fabricated for an empty result set.
	assert.NotContains(t, advice.Answer, "**Sources:**")
	assert.Empty(t, advice.Sources)

	// The generated prompt carried the explicit marker.
	final := llm.messages[len(llm.messages)-1]
	assert.Contains(t, final.Content, "No relevant courses found")
}

func TestAdvisor_Ask_IncludeSourcesDisabled(t *testing.T) {
	retriever := &fakeRetriever{docs: []domain.Document{domain.NewDocument(mlCourse())}}
	llm := &fakeLLM{answer: "Take CPSC 340."}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	opts := driving.NewAskOptions()
	opts.IncludeSources = false

	advice, err := advisor.Ask(context.Background(), "ML courses?", opts)

	require.NoError(t, err)
	assert.NotContains(t, advice.Answer, "**Sources:**")
	assert.Len(t, advice.Sources, 1)
}

func TestAdvisor_Ask_MessageSequence(t *testing.T) {
	retriever := &fakeRetriever{docs: []domain.Document{domain.NewDocument(mlCourse())}}
	llm := &fakeLLM{answer: "ok"}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	history := domain.NewHistory()
	history.Append("What ML courses should I take?", "I recommend CPSC 340.")
	history.Append("What about statistics?", "Consider STAT 200.")

	opts := driving.NewAskOptions()
	opts.History = history

	_, err := advisor.Ask(context.Background(), "Any graduate options?", opts)
	require.NoError(t, err)

	// system + 2 history turns (user+assistant each) + final user message.
	require.Len(t, llm.messages, 6)
	assert.Equal(t, driven.RoleSystem, llm.messages[0].Role)
	assert.Equal(t, driven.RoleUser, llm.messages[1].Role)
	assert.Equal(t, "What ML courses should I take?", llm.messages[1].Content)
	assert.Equal(t, driven.RoleAssistant, llm.messages[2].Role)
	assert.Equal(t, "I recommend CPSC 340.", llm.messages[2].Content)
	assert.Equal(t, driven.RoleUser, llm.messages[3].Role)
	assert.Equal(t, driven.RoleAssistant, llm.messages[4].Role)

	final := llm.messages[5]
	assert.Equal(t, driven.RoleUser, final.Role)
	assert.Contains(t, final.Content, "AVAILABLE COURSES:")
	assert.Contains(t, final.Content, "CPSC 340")
	assert.Contains(t, final.Content, "STUDENT'S QUESTION: Any graduate options?")

	// Fixed sampling configuration is passed through unchanged.
	assert.Equal(t, chatOpts(), llm.opts)
}

func TestAdvisor_Ask_DefaultK(t *testing.T) {
	retriever := &fakeRetriever{}
	llm := &fakeLLM{answer: "ok"}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	_, err := advisor.Ask(context.Background(), "q", driving.AskOptions{IncludeSources: true})

	require.NoError(t, err)
	assert.Equal(t, driving.DefaultK, retriever.lastK)
}

func TestAdvisor_Ask_GenerationFailure(t *testing.T) {
	retriever := &fakeRetriever{docs: []domain.Document{domain.NewDocument(mlCourse())}}
	llm := &fakeLLM{err: errUpstream}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	_, err := advisor.Ask(context.Background(), "q", driving.NewAskOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAdvisorGeneration)
	assert.ErrorIs(t, err, domain.ErrGenerationService)
	assert.ErrorIs(t, err, errUpstream)
}

func TestAdvisor_Ask_RetrievalFailurePropagates(t *testing.T) {
	retriever := &fakeRetriever{err: errUpstream}
	llm := &fakeLLM{answer: "never reached"}
	advisor := NewAdvisorService(retriever, llm, chatOpts())

	_, err := advisor.Ask(context.Background(), "q", driving.NewAskOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, errUpstream)
	assert.Nil(t, llm.messages)
}

func TestAdvisor_CourseInfo(t *testing.T) {
	retriever := &fakeRetriever{docs: []domain.Document{domain.NewDocument(mlCourse())}}
	advisor := NewAdvisorService(retriever, &fakeLLM{}, chatOpts())

	doc, err := advisor.CourseInfo(context.Background(), "cpsc 340")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "CPSC 340", doc.ID)

	doc, err = advisor.CourseInfo(context.Background(), "CPSC 999")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAdvisor_DepartmentsAndLevels(t *testing.T) {
	stats := mlCourse()
	stats.Code = "STAT 550"
	stats.Department = "Statistics"
	stats.Level = "Graduate"

	retriever := &fakeRetriever{docs: []domain.Document{
		domain.NewDocument(mlCourse()),
		domain.NewDocument(stats),
	}}
	advisor := NewAdvisorService(retriever, &fakeLLM{}, chatOpts())

	assert.Equal(t, []string{"Computer Science", "Statistics"}, advisor.Departments())
	assert.Equal(t, []string{"Third Year", "Graduate"}, advisor.Levels())
}

func TestFormatContext_NumberedInRetrievalOrder(t *testing.T) {
	stats := mlCourse()
	stats.Code = "STAT 200"
	stats.Title = "Elementary Statistics"

	got := FormatContext([]domain.Document{
		domain.NewDocument(mlCourse()),
		domain.NewDocument(stats),
	})

	assert.Contains(t, got, "Course 1: CPSC 340 - Machine Learning and Data Mining")
	assert.Contains(t, got, "Department: Computer Science | Level: Third Year | Credits: 3")
	assert.Contains(t, got, "Prerequisites: CPSC 221")
	assert.Contains(t, got, "Course 2: STAT 200 - Elementary Statistics")
}

func TestFormatSources_Empty(t *testing.T) {
	assert.Empty(t, FormatSources(nil))
}
