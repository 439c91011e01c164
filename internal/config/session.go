package config

import (
	"os"
	"strconv"
	"time"
)

const (
	sessionIdleTimeoutEnv   = "SESSION_IDLE_TIMEOUT"
	sessionSweepIntervalEnv = "SESSION_SWEEP_INTERVAL"
	sessionMaxEnv           = "SESSION_MAX"

	defaultSessionIdleTimeout   = 10 * time.Minute
	defaultSessionSweepInterval = time.Minute
	defaultSessionMax           = 1000
)

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

func LoadSessionConfig() *SessionConfig {
	idleTimeout := defaultSessionIdleTimeout
	if v := os.Getenv(sessionIdleTimeoutEnv); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			idleTimeout = parsed
		}
	}

	sweepInterval := defaultSessionSweepInterval
	if v := os.Getenv(sessionSweepIntervalEnv); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			sweepInterval = parsed
		}
	}

	maxSessions := defaultSessionMax
	if v := os.Getenv(sessionMaxEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxSessions = parsed
		}
	}

	return &SessionConfig{
		IdleTimeout:   idleTimeout,
		SweepInterval: sweepInterval,
		MaxSessions:   maxSessions,
	}
}
