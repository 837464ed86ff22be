package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "TASKS_DB", "TASKS_STRICT_STATUS", "TASKS_READ_TIMEOUT", "TASKS_WRITE_TIMEOUT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Port:         "8081",
		DBPath:       "tasks.db",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}, c)
	assert.Equal(t, ":8081", c.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TASKS_DB", "/var/lib/tasks/tasks.db")
	t.Setenv("TASKS_STRICT_STATUS", "true")
	t.Setenv("TASKS_READ_TIMEOUT", "2s")
	t.Setenv("TASKS_WRITE_TIMEOUT", "0")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Addr())
	assert.Equal(t, "/var/lib/tasks/tasks.db", c.DBPath)
	assert.True(t, c.StrictStatus)
	assert.Equal(t, 2*time.Second, c.ReadTimeout)
	assert.Zero(t, c.WriteTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                "http",
		"TASKS_STRICT_STATUS": "sometimes",
		"TASKS_READ_TIMEOUT":  "ten",
		"TASKS_WRITE_TIMEOUT": "-1s",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	clearEnv(t)
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}
