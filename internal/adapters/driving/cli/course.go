package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

var courseCmd = &cobra.Command{
	Use:   "course [code]",
	Short: "Show details for a single course",
	Long: `Looks up a course by its code (for example "CPSC 340") and prints its
full catalog entry. The lookup is exact and case-insensitive; no retrieval
or generation is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runCourse,
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List departments present in the catalog",
	RunE:  runDepartments,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List course levels present in the catalog",
	RunE:  runLevels,
}

func init() {
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(departmentsCmd)
	rootCmd.AddCommand(levelsCmd)
}

func runCourse(cmd *cobra.Command, args []string) error {
	code := args[0]

	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	doc, err := advisorService.CourseInfo(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("course lookup failed: %w", err)
	}
	if doc == nil {
		cmd.Printf("No course found with code %q.\n", code)
		return nil
	}

	printCourse(cmd, doc.Course)
	return nil
}

func printCourse(cmd *cobra.Command, c domain.Course) {
	cmd.Printf("%s: %s\n", c.Code, c.Title)
	cmd.Printf("  Department:    %s\n", c.Department)
	cmd.Printf("  Level:         %s\n", c.Level)
	cmd.Printf("  Credits:       %g\n", c.Credits)
	if c.Prerequisites != "" {
		cmd.Printf("  Prerequisites: %s\n", c.Prerequisites)
	}
	cmd.Println()
	cmd.Println(c.Description)
}

func runDepartments(cmd *cobra.Command, _ []string) error {
	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	for _, dept := range advisorService.Departments() {
		cmd.Println(dept)
	}
	return nil
}

func runLevels(cmd *cobra.Command, _ []string) error {
	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	for _, level := range advisorService.Levels() {
		cmd.Println(level)
	}
	return nil
}
