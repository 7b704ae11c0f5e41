// Package app arma los servicios a partir de la config. Lo usan el router y los comandos del CLI.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"doseup-parent/internal/adapters/auth/otp"
	"doseup-parent/internal/adapters/auth/token"
	notifymem "doseup-parent/internal/adapters/notify/memory"
	"doseup-parent/internal/adapters/notify/local"
	"doseup-parent/internal/adapters/notify/pushgateway"
	mem "doseup-parent/internal/adapters/storage/memory"
	pg "doseup-parent/internal/adapters/storage/postgres"
	"doseup-parent/internal/config"
	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"
	"doseup-parent/internal/domain/sessions"
	"doseup-parent/internal/platform/httpclient"
	"doseup-parent/internal/platform/logger"
	"doseup-parent/internal/ports/auth"

	"gorm.io/gorm"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcionales; si faltan se arman según la config.
	Notifiers reminders.NotifierFactory
	OTP       auth.OTPProvider
	SMS       auth.SMSSender
}

type App struct {
	Config   config.Config
	Log      logger.Logger
	Location *time.Location

	Parents   *parents.Service
	Medicines *medicines.Service
	DoseLogs  *doselogs.Service
	Reminders *reminders.Manager
	Sessions  *sessions.Service
	Verifier  auth.AuthVerifier

	// Solo con NOTIFIER=local (lo usa el agent para disparar).
	LocalDB *gorm.DB
}

func New(opts Options) (*App, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	var (
		parentRepo   parents.Repository
		medicineRepo medicines.Repository
		doseLogRepo  doselogs.Repository
	)
	if opts.DB != nil {
		parentRepo = pg.NewParentsRepo(opts.DB)
		medicineRepo = pg.NewMedicinesRepo(opts.DB)
		doseLogRepo = pg.NewDoseLogsRepo(opts.DB)
	} else {
		parentRepo = mem.NewParentRepo()
		medicineRepo = mem.NewMedicineRepo()
		doseLogRepo = mem.NewDoseLogRepo()
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Location: loc,
	}

	a.Parents = parents.NewService(parentRepo)
	a.Medicines = medicines.NewService(medicineRepo, cfg.PollInterval)
	a.DoseLogs = doselogs.NewService(doseLogRepo, a.Medicines, cfg.PollInterval)

	factory := opts.Notifiers
	if factory == nil {
		factory, a.LocalDB, err = notifierFactory(cfg)
		if err != nil {
			return nil, err
		}
	}
	a.Reminders = reminders.NewManager(factory, log.With(map[string]any{"component": "reminders"}))

	signer, err := token.NewSigner(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	a.Verifier = signer

	provider := opts.OTP
	if provider == nil {
		sms := opts.SMS
		if sms == nil {
			sms = otp.LogSender{Log: log.With(map[string]any{"component": "sms"})}
		}
		provider, err = otpProvider(cfg, sms)
		if err != nil {
			return nil, err
		}
	}
	a.Sessions = sessions.NewService(provider, signer, a.Parents)

	return a, nil
}

func notifierFactory(cfg config.Config) (reminders.NotifierFactory, *gorm.DB, error) {
	switch cfg.Notifier {
	case "", "memory":
		return notifymem.Factory(), nil, nil
	case "push":
		c, err := httpclient.New(httpclient.Config{BaseURL: cfg.PushGatewayURL, APIKey: cfg.PushGatewayAPIKey})
		if err != nil {
			return nil, nil, fmt.Errorf("push gateway: %w", err)
		}
		return pushgateway.Factory(c), nil, nil
	case "local":
		db, err := local.Open(cfg.LocalNotifierPath)
		if err != nil {
			return nil, nil, fmt.Errorf("local notifier: %w", err)
		}
		return local.Factory(db), db, nil
	default:
		return nil, nil, errors.New("unknown notifier: " + cfg.Notifier)
	}
}

func otpProvider(cfg config.Config, sms auth.SMSSender) (auth.OTPProvider, error) {
	switch cfg.OTPProvider {
	case "", "local":
		return otp.NewLocalProvider(cfg.JWTSecret, cfg.OTPTTL, sms)
	case "gateway":
		c, err := httpclient.New(httpclient.Config{BaseURL: cfg.OTPGatewayURL, APIKey: cfg.OTPGatewayAPIKey})
		if err != nil {
			return nil, fmt.Errorf("otp gateway: %w", err)
		}
		return otp.NewGatewayProvider(c), nil
	default:
		return nil, errors.New("unknown otp provider: " + cfg.OTPProvider)
	}
}
