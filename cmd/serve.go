package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/access"
	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/remote"
	"github.com/ziadkadry99/brigade/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the presentation with the live navigator",
	Long: `Serves the presentation page, the navigator websocket at /ws/nav and the
access gate at POST /access.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().String("content", "", "content directory (overrides content.dir)")
	serveCmd.Flags().Bool("watch", false, "reload content when files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		cfg.Content.Dir = dir
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cfg.Content.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := loadLibrary(cfg.Content)
	if err != nil {
		return err
	}
	source := content.NewSource(lib)

	if cfg.Content.Watch {
		w, err := content.Watch(cfg.Content.Dir, cfg.Content.Include, source, logger)
		if err != nil {
			return fmt.Errorf("watching %s: %w", cfg.Content.Dir, err)
		}
		defer closeQuietly("content watcher", w.Close)
	}

	store, closeStore, err := openStore(ctx, cfg.Session)
	if err != nil {
		return err
	}
	defer closeQuietly("session store", closeStore)

	var limiter *access.Limiter
	if cfg.Access.RatePerSecond > 0 {
		limiter = access.NewLimiter(cfg.Access.RatePerSecond, cfg.Access.Burst)
		defer limiter.Close()
	}
	if cfg.Access.Code == "" {
		logger.Warn("access code is not configured; POST /access will answer 500")
	}

	nc := cfg.Navigation
	nav := remote.NewHandler(remote.Config{
		Library:         source.Library,
		Store:           store,
		Logger:          logger.Named("nav"),
		Params:          nc.Params(),
		HeaderOffset:    &nc.HeaderOffset,
		InstantCooldown: nc.InstantCooldown,
		SmoothCooldown:  nc.SmoothCooldown,
		FrameInterval:   nc.FrameInterval,
	})

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAll,
		Params:   nc.Params(),
	}, server.Deps{
		Content: source,
		Remote:  nav,
		Access:  access.NewHandler(cfg.Access.Code, limiter, logger.Named("access")),
		Logger:  logger.Named("http"),
	})

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("brigade starting",
		zap.String("version", Version),
		zap.Int("port", cfg.Server.Port),
		zap.String("title", lib.Title),
		zap.Int("sections", lib.Registry.Len()),
		zap.String("session_backend", string(cfg.Session.Backend)),
		zap.Bool("watch", cfg.Content.Watch))

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
