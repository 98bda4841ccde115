// Package config loads the application configuration from an optional yaml
// file with environment overrides for credentials.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Neo4jConfig contains graph store connection settings. Credentials come
// from the environment, never the yaml file.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// ModelConfig configures the completion service.
type ModelConfig struct {
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// IngestConfig configures chunking and the ingestion worker pool.
type IngestConfig struct {
	Workers      int `yaml:"workers"`
	ChunkMaxSize int `yaml:"chunk_max_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// AnswerConfig configures answer formatting.
type AnswerConfig struct {
	DisplayBound int `yaml:"display_bound"`
}

// Config is the root application configuration.
type Config struct {
	Neo4j    Neo4jConfig  `yaml:"neo4j"`
	Model    ModelConfig  `yaml:"model"`
	Ingest   IngestConfig `yaml:"ingest"`
	Answer   AnswerConfig `yaml:"answer"`
	LogLevel string       `yaml:"log_level"`
}

// Environment variables for credentials and connection overrides.
const (
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUsername = "NEO4J_USERNAME"
	EnvNeo4jPassword = "NEO4J_PASSWORD"
)

// Load reads a config from path. A missing file yields defaults; a present
// but unparseable file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// Neo4jUsername returns the store username from the environment.
func Neo4jUsername() string {
	if v := os.Getenv(EnvNeo4jUsername); v != "" {
		return v
	}
	return "neo4j"
}

// Neo4jPassword returns the store password from the environment.
func Neo4jPassword() string {
	return os.Getenv(EnvNeo4jPassword)
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = "bolt://localhost:7687"
	}
	if cfg.Model.TimeoutSecs == 0 {
		cfg.Model.TimeoutSecs = 60
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	// Chunk sizing, worker count and display bound fall back to their
	// package defaults when zero; no need to duplicate them here.
}

func applyEnvOverrides(cfg *Config) {
	if uri := os.Getenv(EnvNeo4jURI); uri != "" {
		cfg.Neo4j.URI = uri
	}
}
