package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Import   ImportConfig
	Metrics  MetricsConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// DSN renders the connection string understood by pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// ModelConfig points at the pre-fitted artifacts exported by the training pipeline.
type ModelConfig struct {
	ModelPath  string
	ScalerPath string
}

type ImportConfig struct {
	SourceURL     string
	Timeout       time.Duration
	Workers       int
	RatePerMinute int
	MaxBodyBytes  int64
}

type MetricsConfig struct {
	Enabled bool
}

var envFiles = []string{".env", "../.env", "../../.env"}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	importTimeout, _ := strconv.Atoi(getEnv("IMPORT_TIMEOUT_SECONDS", "30"))
	importWorkers, _ := strconv.Atoi(getEnv("IMPORT_WORKERS", "4"))
	importRate, _ := strconv.Atoi(getEnv("IMPORT_RATE_PER_MINUTE", "6"))
	importMaxBody, _ := strconv.ParseInt(getEnv("IMPORT_MAX_BODY_BYTES", "33554432"), 10, 64)

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finanziamenti"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		Model: ModelConfig{
			ModelPath:  getEnv("MODEL_PATH", "model_scaler/best_model.yaml"),
			ScalerPath: getEnv("SCALER_PATH", "model_scaler/best_scaler.yaml"),
		},
		Import: ImportConfig{
			SourceURL:     getEnv("IMPORT_SOURCE_URL", ""),
			Timeout:       time.Duration(importTimeout) * time.Second,
			Workers:       importWorkers,
			RatePerMinute: importRate,
			MaxBodyBytes:  importMaxBody,
		},
		Metrics: MetricsConfig{
			Enabled: getEnv("METRICS_ENABLED", "true") == "true",
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Import.Workers < 1 {
		cfg.Import.Workers = 1
	}
	if cfg.Model.ModelPath == "" || cfg.Model.ScalerPath == "" {
		return nil, fmt.Errorf("MODEL_PATH and SCALER_PATH must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
