package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/quizmentor/internal/engine"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`            // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`              // Telegram API token loaded from environment
	QuestionsPath    string  `mapstructure:"questions_path"` // path to the YAML or JSON question bank
	Engine           Engine  `mapstructure:"engine"`         // quiz session settings
	DB               DB      `mapstructure:"database"`       // database configuration section
	Janitor          Janitor `mapstructure:"janitor"`        // idle session cleanup
}

// Engine contains quiz session settings.
type Engine struct {
	StartingLives int           `mapstructure:"starting_lives"` // lives at the start of a session
	BaseReward    int           `mapstructure:"base_reward"`    // points for a correct answer without combo
	ComboBonus    int           `mapstructure:"combo_bonus"`    // extra points per combo step
	TimerSeconds  int           `mapstructure:"timer_seconds"`  // per-question countdown, 0 disables it
	QuizLength    int           `mapstructure:"quiz_length"`    // questions drawn per session, 0 means the whole category
	TickInterval  time.Duration `mapstructure:"tick_interval"`  // timer resolution
	AdvanceDelay  time.Duration `mapstructure:"advance_delay"`  // pause between an answer and the next question
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Janitor configures the job that abandons forgotten sessions.
type Janitor struct {
	Schedule string        `mapstructure:"schedule"` // cron spec
	IdleTTL  time.Duration `mapstructure:"idle_ttl"` // sessions idle longer than this are abandoned
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads the full bot configuration; Telegram token and database URL are required.
func Load() (*Config, error) {
	cfg, err := LoadEngine()
	if err != nil {
		return nil, err
	}

	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	return cfg, nil
}

// LoadEngine reads configuration without requiring secrets.
// It is enough for running quizzes locally.
func LoadEngine() (*Config, error) {
	// Local .env files are optional.
	_ = godotenv.Load()

	v := newViper()

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("engine.timer_seconds", "QUIZ_TIMER_SECONDS")

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("questions_path", "assets/data/questions.yaml")
	v.SetDefault("engine.starting_lives", 3)
	v.SetDefault("engine.base_reward", 10)
	v.SetDefault("engine.combo_bonus", 5)
	v.SetDefault("engine.timer_seconds", 0)
	v.SetDefault("engine.quiz_length", 10)
	v.SetDefault("engine.tick_interval", "1s")
	v.SetDefault("engine.advance_delay", "2s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("janitor.schedule", "@every 10m")
	v.SetDefault("janitor.idle_ttl", "30m")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}

// SessionOptions converts the engine section into session options.
func (e Engine) SessionOptions() engine.Options {
	return engine.Options{
		StartingLives: e.StartingLives,
		Scoring: engine.Scoring{
			BaseReward: e.BaseReward,
			ComboBonus: e.ComboBonus,
		},
		TimerSeconds: e.TimerSeconds,
		TickInterval: e.TickInterval,
	}
}
