// Package cli implements the faqctl commands using Cobra.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skolica-digital/faqctl/internal/adapters/driven/config/file"
	"github.com/skolica-digital/faqctl/internal/adapters/driven/storage/sanity"
	"github.com/skolica-digital/faqctl/internal/adapters/driven/storage/sqlite"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/core/services"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose      bool
	snapshotPath string
	configDir    string
)

var rootCmd = &cobra.Command{
	Use:   "faqctl",
	Short: "Normalise inline FAQ content into referenced CMS documents",
	Long: `faqctl migrates inline FAQ items embedded in page documents into
standalone FAQ documents with category references, repairs FAQs whose
category no longer resolves, and verifies the resulting dataset.

Runs against the live content store by default, or against a local
SQLite snapshot with --snapshot.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "operate on a local SQLite snapshot instead of the live store")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.faqctl)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newContentStore builds the content store for a command run. Swapped
// out in tests.
var newContentStore = buildContentStore

// buildContentStore picks the snapshot store when --snapshot is set,
// otherwise connects to the live store using the loaded config. The
// returned func releases the store when non-nil.
func buildContentStore(ctx context.Context) (driven.ContentStore, func(), error) {
	if snapshotPath != "" {
		store, err := sqlite.NewStore(snapshotPath, services.DefaultFAQFields)
		if err != nil {
			return nil, nil, fmt.Errorf("opening snapshot %s: %w", snapshotPath, err)
		}
		logger.Debug("Using snapshot store: %s", snapshotPath)
		return store, func() { store.Close() }, nil
	}

	cfg, err := file.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client := sanity.NewClient(ctx, sanity.Config{
		ProjectID:  cfg.ProjectID,
		Dataset:    cfg.Dataset,
		Token:      cfg.Token,
		APIVersion: cfg.APIVersion,
	})
	logger.Debug("Using live store: project %s, dataset %s", cfg.ProjectID, cfg.Dataset)
	return sanity.NewStore(client, services.DefaultFAQFields), func() {}, nil
}
