package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive advising session",
	Long: `Launches an interactive chat with the course advisor.

Each answer is grounded in the catalog and cites the courses it used. The
session remembers recent turns, so follow-up questions like "what are its
prerequisites?" work naturally.

Controls:
  Enter    - Send question
  ↑/↓      - Scroll the conversation
  Ctrl+C   - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a TUI crash still prints a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	model := tui.NewChat(cmd.Context(), advisorService)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
