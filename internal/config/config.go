// Package config provides centralized configuration for paperpulse.
// Values come from environment variables (prefix PAPERPULSE, highest
// priority), an optional YAML file, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// DataConfig describes the input dataset and derived artifacts.
type DataConfig struct {
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE"`
	MaxRows    int    `yaml:"max_rows" envconfig:"MAX_ROWS"`
	SampleFile string `yaml:"sample_file" envconfig:"SAMPLE_FILE"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalysisConfig holds the aggregation parameters and field bindings.
type AnalysisConfig struct {
	DateField      string   `yaml:"date_field" envconfig:"DATE_FIELD"`
	TitleField     string   `yaml:"title_field" envconfig:"TITLE_FIELD"`
	CategoryField  string   `yaml:"category_field" envconfig:"CATEGORY_FIELD"`
	DefaultTopN    int      `yaml:"default_top_n" envconfig:"DEFAULT_TOP_N"`
	MinWordLength  int      `yaml:"min_word_length" envconfig:"MIN_WORD_LENGTH"`
	CloudMaxWords  int      `yaml:"cloud_max_words" envconfig:"CLOUD_MAX_WORDS"`
	ExtraStopWords []string `yaml:"extra_stop_words" envconfig:"EXTRA_STOP_WORDS"`
}

// TopNOptions are the ranked-bar sizes the API accepts for top-journal
// requests.
var TopNOptions = []int{5, 10, 15, 20}

// ValidTopN reports whether n is one of the accepted top-N options.
func ValidTopN(n int) bool {
	for _, opt := range TopNOptions {
		if n == opt {
			return true
		}
	}
	return false
}

// defaultConfig returns the built-in defaults, applied before the file
// and the environment.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"http://localhost:8080"},
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "console",
			FilePath:    "logs/paperpulse.log",
			Development: true,
		},
		Data: DataConfig{
			InputFile:  "data/metadata.csv",
			MaxRows:    3000,
			SampleFile: "data/metadata_sample.csv",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
		Analysis: AnalysisConfig{
			DateField:     "publish_time",
			TitleField:    "title",
			CategoryField: "journal",
			DefaultTopN:   10,
			MinWordLength: 3,
			CloudMaxWords: 100,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file named by PAPERPULSE_CONFIG_FILE (default
// paperpulse.yaml in the working directory, skipped when absent), and
// environment variables on top.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configFile := os.Getenv("PAPERPULSE_CONFIG_FILE")
	if configFile == "" {
		configFile = "paperpulse.yaml"
	}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	// Environment variables override both the file and the defaults.
	// Without default tags envconfig only touches fields whose variables
	// are actually set.
	if err := envconfig.Process("PAPERPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.InputFile == "" {
		return fmt.Errorf("data input file must be set")
	}
	if c.Analysis.MinWordLength <= 0 {
		return fmt.Errorf("minimum word length must be positive, got %d", c.Analysis.MinWordLength)
	}
	if c.Analysis.DefaultTopN <= 0 {
		return fmt.Errorf("default top-n must be positive, got %d", c.Analysis.DefaultTopN)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
