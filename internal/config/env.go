package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RenderConfig defines rasterization and image output parameters.
type RenderConfig struct {
	DPI         int
	JPEGQuality int
}

// WorkerConfig defines worker-pool limits.
type WorkerConfig struct {
	// MaxWorkers caps the pool size; the effective pool is
	// min(MaxWorkers, host parallelism), computed once by PoolSize.
	MaxWorkers int
}

// MetricsConfig defines the optional Prometheus listener.
type MetricsConfig struct {
	// Addr is the listen address for /metrics, e.g. ":9090".
	// Empty disables the listener.
	Addr string
}

// UploadConfig defines the optional S3 mirror of converted images.
type UploadConfig struct {
	Bucket string
	Prefix string
}

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig
	Render  RenderConfig
	Worker  WorkerConfig
	Metrics MetricsConfig
	Upload  UploadConfig
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	cfg.Render = RenderConfig{
		DPI:         parseInt(getEnv("RENDER_DPI", "150"), 150),
		JPEGQuality: parseInt(getEnv("JPEG_QUALITY", "85"), 85),
	}

	cfg.Worker = WorkerConfig{
		MaxWorkers: parseInt(getEnv("MAX_WORKERS", "32"), 32),
	}

	cfg.Metrics = MetricsConfig{
		Addr: getEnv("METRICS_ADDR", ""),
	}

	cfg.Upload = UploadConfig{
		Bucket: getEnv("UPLOAD_BUCKET", ""),
		Prefix: getEnv("UPLOAD_PREFIX", "pdfbatch"),
	}

	return cfg
}

// PoolSize returns the worker-pool size for this host: the configured cap
// bounded by available parallelism. Computed once at startup and passed
// into the dispatcher explicitly.
func (c Config) PoolSize() int {
	n := c.Worker.MaxWorkers
	if n <= 0 {
		n = 32
	}
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
