package config

import "time"

// Built-in defaults applied for any value the YAML leaves unset.
const (
	DefaultListenAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"

	DefaultUpstreamTimeout = 10 * time.Second

	DefaultMaxRetries      = 3
	DefaultRetryDelay      = 1 * time.Second
	DefaultPlanTimeout     = 30 * time.Second
	DefaultBreakerFailures uint32 = 5
	DefaultBreakerCooldown = 60 * time.Second
)
