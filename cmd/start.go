package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samsimpson1/stonks/core/config"
	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/core/logger"
	"github.com/samsimpson1/stonks/core/universalis"
	"github.com/samsimpson1/stonks/core/xivapi"
	"github.com/samsimpson1/stonks/feature/names"
	"github.com/samsimpson1/stonks/feature/records"
	"github.com/samsimpson1/stonks/feature/sales"
	"github.com/samsimpson1/stonks/feature/worlds"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start ingesting market sales",
	Long: `Registers the worlds of the configured region, subscribes to their sales feed
and stores every admitted sale. The status server runs alongside when enabled.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database, logg)
	if err != nil {
		return err
	}
	store := records.NewStore(db, logg)
	// Deferred first so it runs last, once the feed loop has returned.
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	bootstrapper := worlds.NewBootstrapper(cfg.Worlds, universalis.NewClient(cfg.Universalis), store, logg)
	catalog, err := bootstrapper.Run(ctx)
	if err != nil {
		return err
	}

	resolver, err := names.NewResolver(cfg.Names, store, xivapi.NewClient(cfg.XIVAPI), logg)
	if err != nil {
		return err
	}
	processor := sales.NewProcessor(resolver, store, catalog, logg)
	subscriber := feed.NewSubscriber(cfg.Feed, feed.NewWebsocketDialer(cfg.Feed), processor, logg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The status server has nothing to report once the feed is gone.
		defer stop()
		delay := time.Duration(cfg.Feed.ReconnectDelaySeconds) * time.Second
		return subscriber.Supervise(gctx, catalog.IDs(), delay)
	})

	if cfg.Server.Enabled {
		app, err := newStatusApp(logg, processor, subscriber)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		ln, err := net.Listen("tcp", cfg.Server.Address())
		if err != nil {
			stop()
			_ = g.Wait()
			return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address(), err)
		}

		g.Go(func() error {
			logg.Info("Starting status server", zap.String("addr", ln.Addr().String()))
			if err := app.Listener(ln); err != nil && gctx.Err() == nil {
				return fmt.Errorf("status server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			err := app.ShutdownWithTimeout(5 * time.Second)
			// Shutdown only closes listeners fiber has started serving.
			_ = ln.Close()
			return err
		})
	}

	err = g.Wait()
	stats := processor.Stats()
	logg.Info("Shutting down",
		zap.Uint64("admitted", stats.Admitted),
		zap.Uint64("duplicate", stats.Duplicate),
		zap.Uint64("stale", stats.Stale),
	)
	return err
}
