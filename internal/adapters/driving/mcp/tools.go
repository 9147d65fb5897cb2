package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"the question about the course catalog"`
	SessionID  string `json:"session_id,omitempty" jsonschema:"session identifier from a previous ask call, for follow-up questions"`
	Department string `json:"department,omitempty" jsonschema:"only consider courses from this department"`
	Level      string `json:"level,omitempty" jsonschema:"only consider courses at this level (e.g. First Year)"`
	K          int    `json:"k,omitempty" jsonschema:"number of courses to retrieve (default 4)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string         `json:"answer"`
	Sources   []CourseOutput `json:"sources"`
	SessionID string         `json:"session_id"`
}

// CourseInfoInput is the input schema for the course_info tool.
type CourseInfoInput struct {
	Code string `json:"code" jsonschema:"the course code, e.g. CPSC 340"`
}

// CourseInfoOutput is the output schema for the course_info tool.
type CourseInfoOutput struct {
	Found  bool          `json:"found"`
	Course *CourseOutput `json:"course,omitempty"`
}

// CourseOutput represents a single course.
type CourseOutput struct {
	Code          string  `json:"code"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Prerequisites string  `json:"prerequisites,omitempty"`
	Credits       float64 `json:"credits"`
	Department    string  `json:"department"`
	Level         string  `json:"level"`
}

func courseOutput(c domain.Course) CourseOutput {
	return CourseOutput{
		Code:          c.Code,
		Title:         c.Title,
		Description:   c.Description,
		Prerequisites: c.Prerequisites,
		Credits:       c.Credits,
		Department:    c.Department,
		Level:         c.Level,
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the course catalog and get a grounded, cited answer",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "course_info",
		Description: "Look up a single course by its exact code",
	}, s.handleCourseInfo)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	sessionID, sess := s.sessions.session(input.SessionID)

	// The session lock covers the whole turn so concurrent asks for one
	// session see a consistent history buffer.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	opts := driving.NewAskOptions()
	opts.Filters = domain.Filters{Department: input.Department, Level: input.Level}
	opts.History = sess.history
	// Sources travel as structured data, not appended to the answer text.
	opts.IncludeSources = false
	if input.K > 0 {
		opts.K = input.K
	}

	advice, err := s.ports.Advisor.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	sess.history.Append(input.Question, advice.Answer)

	output := AskOutput{
		Answer:    advice.Answer,
		Sources:   make([]CourseOutput, len(advice.Sources)),
		SessionID: sessionID,
	}
	for i, doc := range advice.Sources {
		output.Sources[i] = courseOutput(doc.Course)
	}
	return nil, output, nil
}

// handleCourseInfo handles the course_info tool invocation.
func (s *Server) handleCourseInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CourseInfoInput,
) (*mcp.CallToolResult, CourseInfoOutput, error) {
	doc, err := s.ports.Advisor.CourseInfo(ctx, input.Code)
	if err != nil {
		return nil, CourseInfoOutput{}, err
	}
	if doc == nil {
		return nil, CourseInfoOutput{Found: false}, nil
	}

	course := courseOutput(doc.Course)
	return nil, CourseInfoOutput{Found: true, Course: &course}, nil
}
