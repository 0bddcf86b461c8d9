package commands

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"syscall"
	"yatube/auth"
	"yatube/server"
	"yatube/storage"
	"yatube/tasks"
	"yatube/utils"

	"github.com/spf13/cobra"
)

// serveCmd runs the web server and its background tasks
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runBackgroundTasks(ctx context.Context, store storage.Store, s *server.Server) {
	// Statistics updater
	go utils.Recoverer(math.MaxInt, 1, func() {
		tasks.NewStatisticsUpdater(store, settings.Tasks.StatisticsInterval).Run(ctx)
	})

	// Orphaned media cleanup
	go utils.Recoverer(math.MaxInt, 2, func() {
		tasks.NewMediaCleaner(store, settings.Media.Root, settings.Tasks.MediaCleanupInterval).Run(ctx)
	})

	// Idle login limiter pruning
	go utils.Recoverer(math.MaxInt, 3, func() {
		s.LoginThrottle().Run(ctx, settings.Tasks.ThrottlePruneInterval)
	})
}

func runServe() error {
	if settings.Auth.SecretKey == "" {
		return errors.New("auth.secret_key (SECRET_KEY) must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close()

	pageCache, releaseCache, err := openPageCache(ctx, settings)
	if err != nil {
		return err
	}
	defer releaseCache()

	s, err := server.NewServer(
		store,
		pageCache,
		auth.NewSessions(settings.Auth.SecretKey, settings.Auth.SessionTTL),
		server.Options{
			PageSize:   settings.Posts.PageSize,
			MediaRoot:  settings.Media.Root,
			LoginRate:  settings.Auth.LoginRate,
			LoginBurst: settings.Auth.LoginBurst,
		},
	)
	if err != nil {
		return err
	}

	// Run background tasks
	runBackgroundTasks(ctx, store, s)

	return s.Run(ctx, settings.Server.Addr, settings.Server.ShutdownTimeout)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
