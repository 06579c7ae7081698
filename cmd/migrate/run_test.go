package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls  []string
	forced int
	err    error
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return f.err }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return f.err }
func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.forced = v
	return f.err
}

func TestRun(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		m := &fakeMigrator{}
		require.NoError(t, run(m, "up", ""))
		assert.Equal(t, []string{"up"}, m.calls)
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &fakeMigrator{err: migrate.ErrNoChange}
		assert.NoError(t, run(m, "down", ""))
	})

	t.Run("force", func(t *testing.T) {
		m := &fakeMigrator{}
		require.NoError(t, run(m, "force", "3"))
		assert.Equal(t, 3, m.forced)
	})

	t.Run("force needs a version", func(t *testing.T) {
		assert.Error(t, run(&fakeMigrator{}, "force", "latest"))
	})

	t.Run("errors propagate", func(t *testing.T) {
		boom := errors.New("dirty database")
		assert.ErrorIs(t, run(&fakeMigrator{err: boom}, "up", ""), boom)
	})

	t.Run("unknown command", func(t *testing.T) {
		m := &fakeMigrator{}
		assert.Error(t, run(m, "sideways", ""))
		assert.Empty(t, m.calls)
	})
}
