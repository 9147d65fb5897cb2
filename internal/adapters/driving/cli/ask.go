package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

var (
	askDepartment string
	askLevel      string
	askK          int
	askJSON       bool
	askNoSources  bool
	askScores     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the course catalog",
	Long: `Asks a single question and prints the advisor's answer.

The question is matched against course descriptions by semantic similarity;
the most relevant courses ground the generated answer. Use --department and
--level to restrict which courses are considered.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDepartment, "department", "d", "", "only consider courses from this department")
	askCmd.Flags().StringVarP(&askLevel, "level", "l", "", "only consider courses at this level")
	askCmd.Flags().IntVarP(&askK, "k", "k", 0, "number of courses to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "omit the sources block from the answer")
	askCmd.Flags().BoolVar(&askScores, "scores", false, "print raw retrieval similarity scores")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if err := ensureAdvisor(cmd.Context()); err != nil {
		return friendlyError(err)
	}
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	opts := driving.NewAskOptions()
	opts.Filters = domain.Filters{Department: askDepartment, Level: askLevel}
	opts.IncludeSources = !askNoSources
	if askK > 0 {
		opts.K = askK
	} else if appConfig != nil && appConfig.Retrieval.TopK > 0 {
		opts.K = appConfig.Retrieval.TopK
	}

	advice, err := advisorService.Ask(cmd.Context(), question, opts)
	if err != nil {
		return friendlyError(fmt.Errorf("ask failed: %w", err))
	}

	if askScores && retrieverService != nil {
		if err := printScores(cmd, question, opts.K); err != nil {
			return err
		}
	}

	if askJSON {
		return outputAdviceJSON(cmd, advice)
	}

	cmd.Println(advice.Answer)
	return nil
}

// printScores re-runs the retrieval unfiltered and prints the raw
// similarity ranking. Diagnostic only; the answer above is unaffected.
func printScores(cmd *cobra.Command, question string, k int) error {
	scored, err := retrieverService.SearchWithScores(cmd.Context(), question, k)
	if err != nil {
		return fmt.Errorf("score retrieval failed: %w", err)
	}

	cmd.Println("\nRetrieval scores:")
	for i, s := range scored {
		cmd.Printf("%2d. %.4f  %s - %s\n", i+1, s.Similarity, s.Document.Course.Code, s.Document.Course.Title)
	}
	return nil
}

func outputAdviceJSON(cmd *cobra.Command, advice *domain.Advice) error {
	payload := struct {
		Answer  string          `json:"answer"`
		Sources []domain.Course `json:"sources"`
	}{Answer: advice.Answer}
	for _, doc := range advice.Sources {
		payload.Sources = append(payload.Sources, doc.Course)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal advice: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
