// Package config loads the settings shared by the training and inference commands.
// Values come from defaults, then an optional YAML file, then HWR_* environment
// variables, which may also be placed into a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/neurlang/handwriting/model"
)

// Config holds the pipeline configuration
type Config struct {
	DataDir         string  `yaml:"data_dir"`
	ValidationDir   string  `yaml:"validation_dir"`
	ValidationSplit float64 `yaml:"validation_split"`
	ModelPath       string  `yaml:"model_path"`
	AnnotatedPath   string  `yaml:"annotated_path"`

	Topology string `yaml:"topology"`
	Epochs   int    `yaml:"epochs"`
	Threads  int    `yaml:"threads"`
	Seed     int64  `yaml:"seed"`
	Offset   int    `yaml:"offset"`

	Significance  byte   `yaml:"significance"`
	Factor        uint32 `yaml:"factor"`
	Subtractor    uint32 `yaml:"subtractor"`
	DeadlineMs    int    `yaml:"deadline_ms"`
	DeadlineRetry int    `yaml:"deadline_retry"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	threads := cpuid.CPU.LogicalCores
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return &Config{
		DataDir:       "data/train",
		ModelPath:     "handwriting.json.lzw",
		Topology:      "deep",
		Epochs:        10,
		Threads:       threads,
		Seed:          1,
		Factor:        1,
		Subtractor:    1,
		DeadlineMs:    1000,
		DeadlineRetry: 3,
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads the YAML file at path over the defaults and applies the environment.
// An empty path skips the file. Variables from the optional .env files are
// loaded first and never override variables already set.
func Load(path string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("env file %s: %w", f, err)
		}
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnvOrDefault("HWR_DATA_DIR", c.DataDir)
	c.ValidationDir = getEnvOrDefault("HWR_VALIDATION_DIR", c.ValidationDir)
	c.ValidationSplit = getEnvAsFloatOrDefault("HWR_VALIDATION_SPLIT", c.ValidationSplit)
	c.ModelPath = getEnvOrDefault("HWR_MODEL_PATH", c.ModelPath)
	c.AnnotatedPath = getEnvOrDefault("HWR_ANNOTATED_PATH", c.AnnotatedPath)
	c.Topology = getEnvOrDefault("HWR_TOPOLOGY", c.Topology)
	c.Epochs = getEnvAsIntOrDefault("HWR_EPOCHS", c.Epochs)
	c.Threads = getEnvAsIntOrDefault("HWR_THREADS", c.Threads)
	c.Seed = int64(getEnvAsIntOrDefault("HWR_SEED", int(c.Seed)))
	c.Offset = getEnvAsIntOrDefault("HWR_OFFSET", c.Offset)
	c.Significance = byte(getEnvAsUintOrDefault("HWR_SIGNIFICANCE", uint64(c.Significance), 8))
	c.Factor = uint32(getEnvAsUintOrDefault("HWR_FACTOR", uint64(c.Factor), 32))
	c.Subtractor = uint32(getEnvAsUintOrDefault("HWR_SUBTRACTOR", uint64(c.Subtractor), 32))
	c.DeadlineMs = getEnvAsIntOrDefault("HWR_DEADLINE_MS", c.DeadlineMs)
	c.DeadlineRetry = getEnvAsIntOrDefault("HWR_DEADLINE_RETRY", c.DeadlineRetry)
	c.LogLevel = getEnvOrDefault("HWR_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("HWR_LOG_FORMAT", c.LogFormat)
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required")
	}
	if _, err := model.ParseTopology(c.Topology); err != nil {
		return err
	}
	if c.Epochs < 0 {
		return fmt.Errorf("epochs must not be negative, got %d", c.Epochs)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		return fmt.Errorf("validation_split must be in [0,1), got %v", c.ValidationSplit)
	}
	if c.Significance >= 100 {
		return fmt.Errorf("significance must be below 100, got %d", c.Significance)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Hyperparameters returns the classifier hyperparameters
func (c *Config) Hyperparameters(logger *zap.Logger) model.Hyperparameters {
	return model.Hyperparameters{
		Epochs:        c.Epochs,
		Threads:       c.Threads,
		Seed:          c.Seed,
		Significance:  c.Significance,
		Factor:        c.Factor,
		Subtractor:    c.Subtractor,
		DeadlineMs:    c.DeadlineMs,
		DeadlineRetry: c.DeadlineRetry,
		Logger:        logger,
	}
}

// Logger builds the logger described by log_level and log_format
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if c.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsUintOrDefault ignores values which do not fit bitSize bits
func getEnvAsUintOrDefault(key string, defaultValue uint64, bitSize int) uint64 {
	value, err := strconv.ParseUint(os.Getenv(key), 10, bitSize)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}
