package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/samsimpson1/stonks/core/config"
	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/logger"
	"github.com/samsimpson1/stonks/core/storage"
	"github.com/samsimpson1/stonks/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotTimeout time.Duration

// snapshotCmd uploads a copy of the database to object storage.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Upload a consistent copy of the database to object storage",
	Long: `Copies the SQLite database with VACUUM INTO and uploads it to the configured
bucket as snapshots/stonks-<UTC timestamp>.db. Older snapshots beyond
storage.keep_snapshots are removed.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 10*time.Minute, "Maximum time for copy and upload")
	RootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database, logg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	name, err := snapshot.NewSnapshotter(db, client, cfg.Storage, logg).Create(ctx)
	if err != nil {
		return err
	}
	logg.Info("Snapshot complete", zap.String("object", name))
	return nil
}
