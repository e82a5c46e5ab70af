// Package config loads and validates the lucide.yaml configuration file.
// Values may embed {{.VAR}} template holes expanded from the environment
// before parsing, so secrets never live in the file itself.
package config

import "time"

// Config is the umbrella configuration object returned by Initialize and
// passed to the component constructors.
type Config struct {
	configDir string

	Server       *ServerConfig
	Redis        *RedisConfig
	Upstream     *UpstreamConfig
	Orchestrator *OrchestratorConfig
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	// ListenAddr is the host:port the API binds to.
	ListenAddr string
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// RedisConfig holds the shared cache connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig holds the API-Football client settings.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// OrchestratorConfig tunes plan execution: retries, backoff, the per-plan
// deadline, and the circuit breaker.
type OrchestratorConfig struct {
	MaxRetries      int
	RetryDelay      time.Duration
	PlanTimeout     time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// ConfigDir returns the configuration directory path.
func (c *Config) ConfigDir() string {
	return c.configDir
}
