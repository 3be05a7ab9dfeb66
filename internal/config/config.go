package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Translator
		Speech
		Tagger
		Retry
		Practice
		Ledger
		Tasks
		Maintenance
		Audit
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
	Log struct {
		Level  string // debug, info, warn, error
		Format string // text or json
	}
	Translator struct {
		URL             string
		Timeout         time.Duration // Per-call deadline
		RateLimit       float64       // Requests per second, 0 disables limiting
		MaxSourceLength int           // Longest accepted source text in characters (default: 1000)
	}
	Speech struct {
		URL           string
		Timeout       time.Duration
		RateLimit     float64
		AssetsDir     string // Local directory holding synthesized audio
		PublicBaseURL string // Prefix used to build audio asset refs
	}
	Tagger struct {
		URL             string // Remote part-of-speech service, used for every language without a local model
		Timeout         time.Duration
		JapaneseEnabled bool // Tag Japanese in-process with kagome
	}
	Retry struct {
		MaxAttempts     int
		InitialInterval time.Duration
		MaxInterval     time.Duration
	}
	Practice struct {
		SampleSize     int     // Questions per session (default: 5)
		PassThreshold  float64 // Minimum similarity ratio for a correct answer (default: 85)
		MaxGuessLength int     // Longest accepted answer in characters (default: 100)
	}
	Ledger struct {
		PageSize int // Translations per page (default: 5)
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration // Stuck tasks are released back to the queue after this
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Enabled              bool
		AudioSweepSchedule   string        // Cron format: "30 3 * * *" = daily at 03:30
		AudioSweepGrace      time.Duration // Orphaned audio younger than this is kept
		AuditCleanupSchedule string
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 30)
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Collaborators
	v.SetDefault("translator_url", "http://localhost:8081")
	v.SetDefault("translator_timeout", "10s")
	v.SetDefault("translator_rate_limit", 5)
	v.SetDefault("translator_max_source_length", 1000)
	v.SetDefault("speech_url", "http://localhost:8082")
	v.SetDefault("speech_timeout", "20s")
	v.SetDefault("speech_rate_limit", 5)
	v.SetDefault("speech_assets_dir", DefaultMediaDir)
	v.SetDefault("speech_public_base_url", "/media")
	v.SetDefault("tagger_url", "")
	v.SetDefault("tagger_timeout", "5s")
	v.SetDefault("tagger_japanese_enabled", true)

	// Retry policy shared by all collaborator calls
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_initial_interval", "200ms")
	v.SetDefault("retry_max_interval", "2s")

	v.SetDefault("practice_sample_size", 5)
	v.SetDefault("practice_pass_threshold", 85)
	v.SetDefault("practice_max_guess_length", 100)
	v.SetDefault("ledger_page_size", 5)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("audio_sweep_schedule", "30 3 * * *") // Daily at 03:30
	v.SetDefault("audio_sweep_grace", "24h")
	v.SetDefault("audit_cleanup_schedule", "0 4 * * *") // Daily at 04:00
	v.SetDefault("audit_retention_days", 30)

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
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Translator: Translator{
			URL:             v.GetString("TRANSLATOR_URL"),
			Timeout:         v.GetDuration("TRANSLATOR_TIMEOUT"),
			RateLimit:       v.GetFloat64("TRANSLATOR_RATE_LIMIT"),
			MaxSourceLength: v.GetInt("TRANSLATOR_MAX_SOURCE_LENGTH"),
		},
		Speech: Speech{
			URL:           v.GetString("SPEECH_URL"),
			Timeout:       v.GetDuration("SPEECH_TIMEOUT"),
			RateLimit:     v.GetFloat64("SPEECH_RATE_LIMIT"),
			AssetsDir:     v.GetString("SPEECH_ASSETS_DIR"),
			PublicBaseURL: v.GetString("SPEECH_PUBLIC_BASE_URL"),
		},
		Tagger: Tagger{
			URL:             v.GetString("TAGGER_URL"),
			Timeout:         v.GetDuration("TAGGER_TIMEOUT"),
			JapaneseEnabled: v.GetBool("TAGGER_JAPANESE_ENABLED"),
		},
		Retry: Retry{
			MaxAttempts:     v.GetInt("RETRY_MAX_ATTEMPTS"),
			InitialInterval: v.GetDuration("RETRY_INITIAL_INTERVAL"),
			MaxInterval:     v.GetDuration("RETRY_MAX_INTERVAL"),
		},
		Practice: Practice{
			SampleSize:     v.GetInt("PRACTICE_SAMPLE_SIZE"),
			PassThreshold:  v.GetFloat64("PRACTICE_PASS_THRESHOLD"),
			MaxGuessLength: v.GetInt("PRACTICE_MAX_GUESS_LENGTH"),
		},
		Ledger: Ledger{
			PageSize: v.GetInt("LEDGER_PAGE_SIZE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Enabled:              v.GetBool("MAINTENANCE_ENABLED"),
			AudioSweepSchedule:   v.GetString("AUDIO_SWEEP_SCHEDULE"),
			AudioSweepGrace:      v.GetDuration("AUDIO_SWEEP_GRACE"),
			AuditCleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
