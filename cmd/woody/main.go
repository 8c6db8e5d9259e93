// Command woody runs the Woody LINE assistant: a webhook bot answering
// free-text questions and driving the reminder and timezone-conversion
// workflows.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ck19910321/LineBot/internal/api"
	"github.com/ck19910321/LineBot/internal/delivery"
	"github.com/ck19910321/LineBot/internal/intent"
	"github.com/ck19910321/LineBot/internal/messaging"
	"github.com/ck19910321/LineBot/internal/scheduler"
	"github.com/ck19910321/LineBot/internal/store"
	"github.com/ck19910321/LineBot/internal/util"
	"github.com/ck19910321/LineBot/internal/workflow"
)

// Default configuration constants.
const (
	// DefaultStateDir is the default directory for bot state data.
	DefaultStateDir = "/var/lib/woody"
	// DefaultDBFileName is the default SQLite database filename.
	DefaultDBFileName = "woody.db"
	// DefaultSweepSchedule runs the expired-session sweep every ten minutes.
	DefaultSweepSchedule = "*/10 * * * *"
)

// Config holds environment configuration.
type Config struct {
	DBDriver      string
	DBDSN         string
	StateDir      string
	APIAddr       string
	SweepSchedule string
	SMSMirrorTo   string
}

func main() {
	initializeLogger()
	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := run(flags); err != nil {
		slog.Error("Woody failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Woody exited successfully")
}

// initializeLogger sets up structured logging; WOODY_DEBUG enables debug
// level.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("WOODY_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and an
// optional .env file.
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DBDriver:      util.GetEnvOrDefault("DATABASE_DRIVER", "sqlite3"),
		DBDSN:         os.Getenv("DATABASE_DSN"),
		StateDir:      util.GetEnvOrDefault("WOODY_STATE_DIR", DefaultStateDir),
		APIAddr:       util.GetEnvOrDefault("API_ADDR", api.DefaultAddr),
		SweepSchedule: util.GetEnvOrDefault("SWEEP_SCHEDULE", DefaultSweepSchedule),
		SMSMirrorTo:   os.Getenv("REMINDER_SMS_TO"),
	}
	if config.DBDSN == "" && config.DBDriver == "sqlite3" {
		config.DBDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No DATABASE_DSN set, using default SQLite path", "dsn", config.DBDSN)
	}
	return config
}

// parseCommandLineFlags lets flags override environment configuration.
func parseCommandLineFlags(config Config) Config {
	dbDriver := flag.String("db-driver", config.DBDriver, "session store driver: sqlite3, postgres or memory")
	dbDSN := flag.String("db-dsn", config.DBDSN, "session store DSN")
	apiAddr := flag.String("api-addr", config.APIAddr, "webhook listen address")
	sweep := flag.String("sweep-schedule", config.SweepSchedule, "cron expression for the expired-session sweep")
	flag.Parse()

	config.DBDriver = *dbDriver
	config.DBDSN = *dbDSN
	config.APIAddr = *apiAddr
	config.SweepSchedule = *sweep
	return config
}

// buildStore constructs the session store for the configured driver.
func buildStore(config Config) (store.Store, error) {
	switch config.DBDriver {
	case "postgres":
		return store.NewPostgresStore(store.WithDSN(config.DBDSN))
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLiteStore(store.WithDSN(config.DBDSN))
	}
}

func run(config Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildStore(config)
	if err != nil {
		return err
	}
	defer st.Close()

	line, err := messaging.NewLineService()
	if err != nil {
		return err
	}

	// The SMS mirror is optional; without Twilio credentials reminders go out
	// over LINE push only.
	var sender messaging.Service = line
	if config.SMSMirrorTo != "" {
		sms, err := messaging.NewTwilioService()
		if err != nil {
			slog.Warn("SMS mirror disabled", "error", err)
		} else {
			sender = messaging.NewFanout(line, sms, config.SMSMirrorTo)
			slog.Info("SMS mirror enabled", "to", config.SMSMirrorTo)
		}
	}

	deliverer := delivery.NewTimerScheduler(sender)
	defer deliverer.Stop()

	registry := workflow.NewRegistry(
		workflow.NewReminderWorkflow(st, deliverer),
		workflow.NewTimeConvertWorkflow(st),
	)
	engine := workflow.NewEngine(registry)

	intents := intent.NewRouter(
		intent.NewTemperature(),
		intent.NewReminder(engine),
		intent.NewTimeConvert(),
	)

	cronScheduler := scheduler.NewScheduler()
	defer cronScheduler.Stop()
	if err := cronScheduler.AddSweep(config.SweepSchedule, st); err != nil {
		return err
	}

	slog.Info("Bootstrapping Woody", "db_driver", config.DBDriver, "api_addr", config.APIAddr)
	server := api.NewServer(line, engine, intents, api.WithAddr(config.APIAddr))
	return server.Run(ctx)
}
