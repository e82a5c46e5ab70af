package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// lucideYAMLConfig mirrors the lucide.yaml file structure. Durations are
// strings ("30s", "500ms") parsed during resolution.
type lucideYAMLConfig struct {
	Server       *serverYAMLConfig       `yaml:"server"`
	Redis        *redisYAMLConfig        `yaml:"redis"`
	Upstream     *upstreamYAMLConfig     `yaml:"upstream"`
	Orchestrator *orchestratorYAMLConfig `yaml:"orchestrator"`
}

type serverYAMLConfig struct {
	ListenAddr      string `yaml:"listen_addr,omitempty"`
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`
}

type redisYAMLConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

type upstreamYAMLConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

type orchestratorYAMLConfig struct {
	MaxRetries      int    `yaml:"max_retries,omitempty"`
	RetryDelay      string `yaml:"retry_delay,omitempty"`
	PlanTimeout     string `yaml:"plan_timeout,omitempty"`
	BreakerFailures uint32 `yaml:"breaker_failures,omitempty"`
	BreakerCooldown string `yaml:"breaker_cooldown,omitempty"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load lucide.yaml from configDir
//  2. Expand environment variables ({{.VAR}} template syntax)
//  3. Parse YAML into structs
//  4. Apply built-in defaults for unset values
//  5. Validate the result
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("Configuration initialized successfully",
		"listen_addr", cfg.Server.ListenAddr,
		"redis_addr", cfg.Redis.Addr,
		"upstream", cfg.Upstream.BaseURL)
	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	var raw lucideYAMLConfig
	if err := loader.loadYAML("lucide.yaml", &raw); err != nil {
		return nil, NewLoadError("lucide.yaml", err)
	}

	return &Config{
		configDir:    configDir,
		Server:       resolveServerConfig(raw.Server),
		Redis:        resolveRedisConfig(raw.Redis),
		Upstream:     resolveUpstreamConfig(raw.Upstream),
		Orchestrator: resolveOrchestratorConfig(raw.Orchestrator),
	}, nil
}

func validate(cfg *Config) error {
	if cfg.Upstream.APIKey == "" {
		return NewValidationError("upstream", "api_key", ErrMissingRequiredField)
	}
	if cfg.Orchestrator.MaxRetries < 1 {
		return NewValidationError("orchestrator", "max_retries", ErrInvalidValue)
	}
	return nil
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	// Expand environment variables using {{.VAR}} template syntax.
	// Note: ExpandEnv passes through original data on parse/execution errors,
	// allowing the YAML parser to handle the content (or fail with a clearer
	// error message).
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return nil
}

// resolveServerConfig resolves the server section, applying defaults.
func resolveServerConfig(raw *serverYAMLConfig) *ServerConfig {
	cfg := &ServerConfig{
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
	if raw == nil {
		return cfg
	}
	if raw.ListenAddr != "" {
		cfg.ListenAddr = raw.ListenAddr
	}
	cfg.ShutdownTimeout = parseDuration("server", "shutdown_timeout", raw.ShutdownTimeout, cfg.ShutdownTimeout)
	return cfg
}

// resolveRedisConfig resolves the redis section, applying defaults.
func resolveRedisConfig(raw *redisYAMLConfig) *RedisConfig {
	cfg := &RedisConfig{
		Addr: DefaultRedisAddr,
	}
	if raw == nil {
		return cfg
	}
	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	cfg.Password = raw.Password
	cfg.DB = raw.DB
	return cfg
}

// resolveUpstreamConfig resolves the upstream section, applying defaults.
func resolveUpstreamConfig(raw *upstreamYAMLConfig) *UpstreamConfig {
	cfg := &UpstreamConfig{
		Timeout: DefaultUpstreamTimeout,
	}
	if raw == nil {
		return cfg
	}
	cfg.BaseURL = raw.BaseURL
	cfg.APIKey = raw.APIKey
	cfg.Timeout = parseDuration("upstream", "timeout", raw.Timeout, cfg.Timeout)
	return cfg
}

// resolveOrchestratorConfig resolves the orchestrator section, applying defaults.
func resolveOrchestratorConfig(raw *orchestratorYAMLConfig) *OrchestratorConfig {
	cfg := &OrchestratorConfig{
		MaxRetries:      DefaultMaxRetries,
		RetryDelay:      DefaultRetryDelay,
		PlanTimeout:     DefaultPlanTimeout,
		BreakerFailures: DefaultBreakerFailures,
		BreakerCooldown: DefaultBreakerCooldown,
	}
	if raw == nil {
		return cfg
	}
	if raw.MaxRetries > 0 {
		cfg.MaxRetries = raw.MaxRetries
	}
	if raw.BreakerFailures > 0 {
		cfg.BreakerFailures = raw.BreakerFailures
	}
	cfg.RetryDelay = parseDuration("orchestrator", "retry_delay", raw.RetryDelay, cfg.RetryDelay)
	cfg.PlanTimeout = parseDuration("orchestrator", "plan_timeout", raw.PlanTimeout, cfg.PlanTimeout)
	cfg.BreakerCooldown = parseDuration("orchestrator", "breaker_cooldown", raw.BreakerCooldown, cfg.BreakerCooldown)
	return cfg
}

// parseDuration parses a duration string, falling back to def on empty or
// malformed values with a warning.
func parseDuration(section, field, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in config, using default",
			"section", section, "field", field, "value", value, "default", def, "error", err)
		return def
	}
	return d
}
