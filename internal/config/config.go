// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort         = "8081"
	DefaultDBPath       = "tasks.db"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// Config holds the process settings.
type Config struct {
	// Port is the TCP port the server listens on.
	Port string

	// DBPath is the SQLite database file.
	DBPath string

	// StrictStatus maps validation failures to 400 and missing tasks to 404
	// instead of reporting every failure as 500.
	StrictStatus bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads PORT, TASKS_DB, TASKS_STRICT_STATUS, TASKS_READ_TIMEOUT and
// TASKS_WRITE_TIMEOUT, falling back to defaults for unset variables.
func Load() (*Config, error) {
	c := &Config{
		Port:         DefaultPort,
		DBPath:       DefaultDBPath,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("PORT: invalid port %q", v)
		}
		c.Port = v
	}
	if v := os.Getenv("TASKS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TASKS_STRICT_STATUS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TASKS_STRICT_STATUS: %w", err)
		}
		c.StrictStatus = b
	}

	var err error
	if c.ReadTimeout, err = durationEnv("TASKS_READ_TIMEOUT", c.ReadTimeout); err != nil {
		return nil, err
	}
	if c.WriteTimeout, err = durationEnv("TASKS_WRITE_TIMEOUT", c.WriteTimeout); err != nil {
		return nil, err
	}
	return c, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, d)
	}
	return d, nil
}
