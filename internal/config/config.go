package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8001"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Auth (optional; endpoints are open when unset).
	APIKey string `env:"CHUNKD_API_KEY"`

	// Chunking
	ChildChunkSize  int  `env:"CHILD_CHUNK_SIZE" envDefault:"512"`
	ChunkOverlap    int  `env:"CHUNK_OVERLAP" envDefault:"50"`
	ParentChunkSize int  `env:"PARENT_CHUNK_SIZE" envDefault:"1536"`
	LegacyLinking   bool `env:"LEGACY_ADJACENCY_LINKING" envDefault:"false"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ChildChunkSize <= 0 {
		return fmt.Errorf("CHILD_CHUNK_SIZE must be positive, got %d", c.ChildChunkSize)
	}
	if c.ParentChunkSize <= 0 {
		return fmt.Errorf("PARENT_CHUNK_SIZE must be positive, got %d", c.ParentChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChildChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHILD_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChildChunkSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
