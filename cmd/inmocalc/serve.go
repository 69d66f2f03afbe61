package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/config"
	"github.com/rgehrsitz/inmocalc/internal/server"
	"github.com/rgehrsitz/inmocalc/internal/store"
)

const redisKeyPrefix = "inmocalc:"

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Long: `Serve the calculators as a JSON HTTP API.

Settings come from the --config YAML file with INMOCALC_* environment overrides
(INMOCALC_REDIS_ADDR for redis.addr). Without redis.addr, saved calculations and
quotas are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadServerConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Address = addr
			}
			if tables, _ := cmd.Flags().GetString("tables"); tables != "" {
				cfg.TablesFile = tables
			}

			levelOverride, _ := cmd.Flags().GetString("log-level")
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				levelOverride = "debug"
			}
			logger, err := config.NewLogger(cfg.Logging, levelOverride)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Address)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
			}
			return runServer(ctx, cfg, logger, ln)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Server config file (YAML)")
	cmd.Flags().String("addr", "", "Listen address, overrides the config file")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	return cmd
}

// runServer wires the collaborators from cfg and serves on ln until ctx is
// cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger, ln net.Listener) error {
	tables, err := config.LoadTaxTables(cfg.TablesFile)
	if err != nil {
		return err
	}
	engine, err := calculation.NewEngineWithTables(tables)
	if err != nil {
		return err
	}
	engine.SetLogger(logger.Sugar())

	opts := server.Options{
		Logger:       logger,
		Engine:       engine,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Version:      version,
		RateLimit:    cfg.RateLimit,
		RateWindow:   cfg.RateWindow,
	}
	if cfg.Redis.Addr != "" {
		client, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Store = store.NewRedisStore(client, redisKeyPrefix)
		opts.Quota = store.NewRedisQuota(client, redisKeyPrefix)
		logger.Info("using redis storage", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
	} else {
		logger.Info("using in-memory storage")
	}

	handler := server.NewHandler(opts)
	defer handler.Close()

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("tables", tables.Metadata.Version),
			zap.String("version", version),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
