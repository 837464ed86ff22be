package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/pkg/task"
)

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddUpdateGetRemove(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	out, err := run(t, dbPath, "add", "--title", "Buy milk")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, out)

	out, err = run(t, dbPath, "update", "1", "--title", "Buy oat milk", "--description", "2 litres", "--completed")
	require.NoError(t, err)
	assert.Equal(t, "updated task 1\n", out)

	out, err = run(t, dbPath, "get", "1")
	require.NoError(t, err)
	var got task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, task.Task{ID: 1, Title: "Buy oat milk", Description: "2 litres", Completed: true}, got)

	out, err = run(t, dbPath, "rm", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted task 1\n", out)

	_, err = run(t, dbPath, "get", "1")
	require.Error(t, err)
	assert.True(t, task.IsNotFound(err))
}

func TestMissingTaskIsAnError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	_, err := run(t, dbPath, "update", "9", "--title", "x")
	assert.EqualError(t, err, "task 9 not found")

	_, err = run(t, dbPath, "rm", "9")
	assert.EqualError(t, err, "task 9 not found")
}

func TestValidationSurfaces(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	_, err := run(t, dbPath, "add")
	require.Error(t, err)
	assert.True(t, task.IsValidation(err))

	_, err = run(t, dbPath, "get", "abc")
	assert.EqualError(t, err, `invalid task id "abc"`)

	_, err = run(t, dbPath, "get", "0")
	assert.True(t, task.IsValidation(err))
}

func TestListAndStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	out, err := run(t, dbPath, "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, err = run(t, dbPath, "add", "--title", "one")
	require.NoError(t, err)
	_, err = run(t, dbPath, "add", "--title", "two")
	require.NoError(t, err)
	_, err = run(t, dbPath, "update", "2", "--title", "two", "--completed")
	require.NoError(t, err)

	out, err = run(t, dbPath, "list", "--format", "short")
	require.NoError(t, err)
	assert.Equal(t, "1      [ ]  one\n2      [x]  two\n", out)

	out, err = run(t, dbPath, "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"db":"`+dbPath+`","tasks":2,"completed":1,"pending":1}`, out)
}

func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	out, err := run(t, dbPath, "init")
	require.NoError(t, err)
	assert.Equal(t, "initialized "+dbPath+"\n", out)
	assert.FileExists(t, dbPath)
}

func TestUnknownFormatIsRejected(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	out, err := run(t, dbPath, "list", "--format", "yaml")
	assert.EqualError(t, err, `invalid --format "yaml": want json or short`)
	assert.Empty(t, out)
	assert.NoFileExists(t, dbPath)

	_, err = run(t, dbPath, "status", "--format", "")
	assert.Error(t, err)
}
