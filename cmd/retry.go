package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/samsimpson1/stonks/core/config"
	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/logger"
	"github.com/samsimpson1/stonks/core/xivapi"
	"github.com/samsimpson1/stonks/feature/names"
	"github.com/samsimpson1/stonks/feature/records"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var itemIDsFile string

// retryCmd resolves and stores the names of listed items.
var retryCmd = &cobra.Command{
	Use:   "retry-items",
	Short: "Resolve and store names for a list of item ids",
	Long: `Reads one item id per line and runs each through the name resolver, storing
names that are not in the database yet. Items the lookup rejects are stored as
"Unknown Item <id>".

Example:
  stonks retry-items --file /data/item_ids.txt`,
	RunE: runRetry,
}

func init() {
	retryCmd.Flags().StringVar(&itemIDsFile, "file", "/data/item_ids.txt", "File with one item id per line")
	RootCmd.AddCommand(retryCmd)
}

func runRetry(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	f, err := os.Open(itemIDsFile)
	if err != nil {
		return fmt.Errorf("failed to open item id file: %w", err)
	}
	defer f.Close()

	ids, err := names.ParseItemIDs(f, logg)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database, logg)
	if err != nil {
		return err
	}
	store := records.NewStore(db, logg)
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	resolver, err := names.NewResolver(cfg.Names, store, xivapi.NewClient(cfg.XIVAPI), logg)
	if err != nil {
		return err
	}

	res, err := resolver.ResolveAll(ctx, ids)
	if err != nil {
		return err
	}
	logg.Info("Item names retried",
		zap.Int("items", len(ids)),
		zap.Int("resolved", res.Resolved),
		zap.Int("unresolved", res.Unresolved),
	)
	return nil
}
