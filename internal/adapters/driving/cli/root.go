// Package cli implements the advisor command-line interface.
//
// Commands talk to the core through the driving ports. Services are held in
// package variables so tests can substitute mocks; real wiring happens
// lazily, the first time a command needs the pipeline.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/advisor-cli/internal/adapters/driven/ai"
	catalogfile "github.com/campuslabs/advisor-cli/internal/adapters/driven/catalog/file"
	configfile "github.com/campuslabs/advisor-cli/internal/adapters/driven/config/file"
	"github.com/campuslabs/advisor-cli/internal/adapters/driven/index/memory"
	"github.com/campuslabs/advisor-cli/internal/adapters/driven/storage/sqlite"
	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
	"github.com/campuslabs/advisor-cli/internal/core/services"
	"github.com/campuslabs/advisor-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Command-line services. Tests substitute these with mocks; production
// wiring fills them through ensureAdvisor / ensureIndexManager.
var (
	advisorService   driving.AdvisorService
	indexManager     driving.IndexManager
	retrieverService driving.Retriever
)

// appConfig is the loaded configuration, shared across command runs.
var appConfig *configfile.Config

// Persistent flags.
var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Conversational course advisor",
	Long: `Advisor answers questions about a university course catalog.

Course descriptions are embedded into a vector index; each question retrieves
the most relevant courses and an LLM composes a grounded answer citing them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.advisor/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the configuration once per process.
func loadConfig() (*configfile.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	cfg, err := configfile.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// newIndexManager wires the index build pipeline from configuration.
func newIndexManager(cfg *configfile.Config) (driving.IndexManager, driven.EmbeddingService, error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return nil, nil, err
	}

	snapshots, err := sqlite.NewSnapshotStore(cfg.Index.Path)
	if err != nil {
		embedder.Close()
		return nil, nil, err
	}

	catalog := catalogfile.NewCatalogStore(cfg.Catalog.Path)
	indexer := services.NewIndexerService(catalog, embedder, snapshots, func(dimensions int) (driven.VectorIndex, error) {
		return memory.NewIndex(dimensions)
	})
	return indexer, embedder, nil
}

// ensureIndexManager wires the index manager if no test has injected one.
func ensureIndexManager() error {
	if indexManager != nil {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, _, err := newIndexManager(cfg)
	if err != nil {
		return err
	}
	indexManager = manager
	return nil
}

// ensureAdvisor wires the full question-answering pipeline if no test has
// injected services. The index is loaded from its snapshot, or built from
// the catalog on first use.
func ensureAdvisor(ctx context.Context) error {
	if advisorService != nil {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, embedder, err := newIndexManager(cfg)
	if err != nil {
		return err
	}
	indexManager = manager

	index, err := manager.Ensure(ctx, false)
	if err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	retriever, err := services.NewRetrieverService(index, embedder)
	if err != nil {
		return err
	}
	retrieverService = retriever

	llmSettings := cfg.LLMSettings()
	llm, err := ai.CreateAndValidateLLMService(llmSettings)
	if err != nil {
		return err
	}

	advisorService = services.NewAdvisorService(retriever, llm, driven.ChatOptions{
		MaxTokens:   llmSettings.MaxTokens,
		Temperature: llmSettings.Temperature,
	})
	return nil
}

// friendlyError rewrites well-known pipeline failures into actionable
// messages; anything else passes through unchanged.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return fmt.Errorf("%w\ncheck the [embedding] section of your config and that the service is running", err)
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Errorf("%w\ncheck the [llm] section of your config and that the service is running", err)
	case errors.Is(err, domain.ErrIndexDimensionMismatch):
		return fmt.Errorf("%w\nrun 'advisor index rebuild' to re-embed the catalog with the current model", err)
	default:
		return err
	}
}
