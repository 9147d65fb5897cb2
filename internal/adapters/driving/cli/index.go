package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Vector index commands",
	Long:  `Commands for building and inspecting the course vector index.`,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Re-embed the catalog and replace the index",
	Long: `Loads the course catalog, embeds every course with the configured
embedding model, and replaces the persisted index snapshot.

Run this after editing the catalog or switching embedding models.`,
	RunE: runIndexRebuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted index snapshot",
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if err := ensureIndexManager(); err != nil {
		return friendlyError(err)
	}
	if indexManager == nil {
		return errors.New("index manager not configured")
	}

	index, err := indexManager.Ensure(cmd.Context(), true)
	if err != nil {
		return friendlyError(fmt.Errorf("rebuild failed: %w", err))
	}

	cmd.Printf("Indexed %d courses.\n", index.Len())
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureIndexManager(); err != nil {
		return friendlyError(err)
	}
	if indexManager == nil {
		return errors.New("index manager not configured")
	}

	status, err := indexManager.Status(cmd.Context())
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No index snapshot found. Run 'advisor index rebuild' to create one.")
		return nil
	}
	if err != nil {
		return friendlyError(fmt.Errorf("status failed: %w", err))
	}

	cmd.Printf("Entries:    %d\n", status.Entries)
	cmd.Printf("Model:      %s\n", status.Model)
	cmd.Printf("Dimensions: %d\n", status.Dimensions)
	cmd.Printf("Built:      %s\n", status.BuiltAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
