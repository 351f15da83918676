package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultConfigPath is read when LoadConfig is called with an empty path.
const DefaultConfigPath = "foreclosure.toml"

// Config holds all application configuration
type Config struct {
	Input    InputConfig    `toml:"input"`
	Output   OutputConfig   `toml:"output"`
	Database DatabaseConfig `toml:"database"`
	PDF      PDFConfig      `toml:"pdf"`
	AWS      AWSConfig      `toml:"aws"`
	Server   ServerConfig   `toml:"server"`
	NYC      NYCConfig      `toml:"nyc"`
	LogLevel string         `toml:"log_level"`
}

// InputConfig names the three document folders. Each is a local directory or an s3://bucket/prefix URI.
type InputConfig struct {
	NoticeDir      string `toml:"notice_dir"`
	JudgmentDir    string `toml:"judgment_dir"`
	AffirmationDir string `toml:"affirmation_dir"`
	Recursive      bool   `toml:"recursive"`
	SkipHidden     bool   `toml:"skip_hidden"`
}

// OutputConfig holds output-sink configuration
type OutputConfig struct {
	Path string `toml:"path"` // .csv | .xlsx | .jsonl
}

// DatabaseConfig holds case-store configuration. An empty DSN disables persistence.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxConns        int32         `toml:"max_conns"`
	MinConns        int32         `toml:"min_conns"`
	MaxConnLifetime time.Duration `toml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `toml:"max_conn_idle_time"`
	DialTimeout     time.Duration `toml:"dial_timeout"`
}

// PDFConfig holds text-extraction configuration
type PDFConfig struct {
	Method     string        `toml:"method"` // auto | native | pdftotext | docconv
	Pdftotext  string        `toml:"pdftotext"`
	Workers    int           `toml:"workers"`
	Timeout    time.Duration `toml:"timeout"`
	StrictRead bool          `toml:"strict_read"`
}

// AWSConfig is only used when an input folder is an s3:// URI.
type AWSConfig struct {
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// ServerConfig holds foreclosured listen addresses
type ServerConfig struct {
	GRPCAddr string `toml:"grpc_addr"`
	HTTPAddr string `toml:"http_addr"`
}

// NYCConfig holds the Geoclient / Socrata credentials used by parcel lookups.
type NYCConfig struct {
	GeoclientURL    string        `toml:"geoclient_url"`
	GeoclientKey    string        `toml:"geoclient_key"`
	SocrataAppToken string        `toml:"socrata_app_token"`
	PlutoEndpoint   string        `toml:"pluto_endpoint"`
	Timeout         time.Duration `toml:"timeout"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			NoticeDir:      "notices",
			JudgmentDir:    "judgments",
			AffirmationDir: "affirmations",
			SkipHidden:     true,
		},
		Output: OutputConfig{
			Path: "combined_output.csv",
		},
		Database: DatabaseConfig{
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
		PDF: PDFConfig{
			Method:     "auto",
			Pdftotext:  "pdftotext",
			Workers:    4,
			Timeout:    time.Minute,
			StrictRead: true,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Server: ServerConfig{
			GRPCAddr: ":8080",
			HTTPAddr: ":8081",
		},
		NYC: NYCConfig{
			GeoclientURL:  "https://api.nyc.gov/geoclient/v2",
			PlutoEndpoint: "https://data.cityofnewyork.us/resource/64uk-42ks.json",
			Timeout:       15 * time.Second,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads config: defaults -> TOML file -> .env -> environment (env wins).
// A missing TOML file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("parse %s", path), err)
	}

	_ = godotenv.Load()
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Input.NoticeDir = getEnv("NOTICE_DIR", cfg.Input.NoticeDir)
	cfg.Input.JudgmentDir = getEnv("JUDGMENT_DIR", cfg.Input.JudgmentDir)
	cfg.Input.AffirmationDir = getEnv("AFFIRMATION_DIR", cfg.Input.AffirmationDir)
	cfg.Input.Recursive = getEnvAsBool("INPUT_RECURSIVE", cfg.Input.Recursive)
	cfg.Output.Path = getEnv("OUTPUT_PATH", cfg.Output.Path)

	cfg.Database.DSN = getEnv("DB_URL", cfg.Database.DSN)
	cfg.Database.MaxConns = getEnvAsInt32("DB_MAX_CONNS", cfg.Database.MaxConns)
	cfg.Database.MinConns = getEnvAsInt32("DB_MIN_CONNS", cfg.Database.MinConns)
	cfg.Database.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", cfg.Database.DialTimeout)

	cfg.PDF.Method = getEnv("PDF_METHOD", cfg.PDF.Method)
	cfg.PDF.Pdftotext = getEnv("PDFTOTEXT_BIN", cfg.PDF.Pdftotext)
	cfg.PDF.Workers = getEnvAsInt("PDF_WORKERS", cfg.PDF.Workers)
	cfg.PDF.Timeout = getEnvAsDuration("PDF_TIMEOUT", cfg.PDF.Timeout)
	cfg.PDF.StrictRead = getEnvAsBool("STRICT_READ", cfg.PDF.StrictRead)

	cfg.AWS.Region = getEnv("AWS_REGION", cfg.AWS.Region)
	cfg.AWS.AccessKey = getEnv("AWS_ACCESS_KEY", cfg.AWS.AccessKey)
	cfg.AWS.SecretKey = getEnv("AWS_SECRET_KEY", cfg.AWS.SecretKey)

	cfg.Server.GRPCAddr = getEnv("GRPC_ADDR", cfg.Server.GRPCAddr)
	cfg.Server.HTTPAddr = getEnv("HTTP_ADDR", cfg.Server.HTTPAddr)

	cfg.NYC.GeoclientURL = getEnv("NYC_GEOCLIENT_URL", cfg.NYC.GeoclientURL)
	cfg.NYC.GeoclientKey = getEnv("NYC_GEOCLIENT_SUBSCRIPTION_KEY", cfg.NYC.GeoclientKey)
	cfg.NYC.SocrataAppToken = getEnv("SOCRATA_APP_TOKEN", cfg.NYC.SocrataAppToken)
	cfg.NYC.Timeout = getEnvAsDuration("NYC_TIMEOUT", cfg.NYC.Timeout)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration for a batch run.
func (c *Config) Validate() error {
	v := NewValidator().
		Field("input.notice_dir", c.Input.NoticeDir, Required).
		Field("input.judgment_dir", c.Input.JudgmentDir, Required).
		Field("input.affirmation_dir", c.Input.AffirmationDir, Required).
		Field("output.path", c.Output.Path, Required, HasSuffix(".csv", ".xlsx", ".jsonl")).
		Field("pdf.method", c.PDF.Method, OneOf("auto", "native", "pdftotext", "docconv")).
		Field("pdf.workers", c.PDF.Workers, Positive)
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level name understood by slog.Level.UnmarshalText.
func (c *Config) SlogLevel() string {
	return strings.ToUpper(strings.TrimSpace(c.LogLevel))
}
