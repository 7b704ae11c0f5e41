package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pg "doseup-parent/internal/adapters/storage/postgres"
	"doseup-parent/internal/app"
	"doseup-parent/internal/config"
	"doseup-parent/internal/platform/logger"

	"github.com/spf13/cobra"
)

// @title DoseUp Parent API
// @version 0.1.0
// @description API del familiar: medicinas, tomas de hoy, registro de tomas y recordatorios.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:          "doseup",
		Short:        "DoseUp parent backend",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(agentCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// boot es lo que comparten todos los comandos.
type boot struct {
	cfg *config.Config
	log logger.Logger
	db  *sql.DB
}

func bootstrap(needDB bool) (*boot, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	rt := &boot{cfg: cfg, log: log}
	if cfg.DBDSN == "" {
		if needDB {
			return nil, fmt.Errorf("DB_DSN is required")
		}
		log.Warn("DB_DSN not set, using in-memory storage", nil)
		return rt, nil
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		log.Error("db open failed", map[string]any{"error": err})
		return nil, err
	}
	rt.db = db
	return rt, nil
}

func (rt *boot) app() (*app.App, error) {
	return app.New(app.Options{
		Config: *rt.cfg,
		Log:    rt.log,
		DB:     rt.db,
	})
}

func (rt *boot) close() {
	if rt.db != nil {
		_ = rt.db.Close()
	}
}

// signalContext se cancela con SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
