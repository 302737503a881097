// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is where the SQLite database lives unless overridden.
const DefaultDatabasePath = "./library.db"

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Tasks
		Cleanup
		SMTP
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Storage struct {
		// PDFDir is where uploaded article PDFs are stored.
		PDFDir string
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	Cleanup struct {
		// Schedule is a cron expression for the orphan-author cleanup job.
		// Empty disables the scheduler.
		Schedule string
	}

	SMTP struct {
		// Addr is the host:port of the SMTP server. Empty means notification
		// emails are written to the log instead of being sent.
		Addr string
		From string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("pdf_storage_dir", "./pdfs")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Nightly orphan-author cleanup
	v.SetDefault("cleanup_schedule", "0 3 * * *")

	// Notifications
	v.SetDefault("smtp_addr", "")
	v.SetDefault("smtp_from", "library@localhost")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			PDFDir: v.GetString("PDF_STORAGE_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Cleanup: Cleanup{
			Schedule: v.GetString("CLEANUP_SCHEDULE"),
		},
		SMTP: SMTP{
			Addr: v.GetString("SMTP_ADDR"),
			From: v.GetString("SMTP_FROM"),
		},
	}
}
