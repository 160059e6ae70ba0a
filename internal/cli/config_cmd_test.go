package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitCommand(t *testing.T) {
	t.Run("writes default config", func(t *testing.T) {
		stdout, _, err := runAnnotate(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Wrote default config")

		path := filepath.Join(os.Getenv("HOME"), ".pathscribe", "config.yaml")
		assert.FileExists(t, path)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("PATHSCRIBE_SKIP_MIGRATION_CHECK", "1")

		root := NewRootCmd("test")
		root.SetArgs([]string{"config", "init"})
		root.SetOut(&strings.Builder{})
		root.SetErr(&strings.Builder{})
		require.NoError(t, root.Execute())

		root = NewRootCmd("test")
		root.SetArgs([]string{"config", "init"})
		root.SetOut(&strings.Builder{})
		root.SetErr(&strings.Builder{})
		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--force")
	})
}

func TestConfigValidateCommand(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("PATHSCRIBE_SKIP_MIGRATION_CHECK", "1")

		root := NewRootCmd("test")
		root.SetArgs([]string{"config", "init"})
		root.SetOut(&strings.Builder{})
		root.SetErr(&strings.Builder{})
		require.NoError(t, root.Execute())

		out := &strings.Builder{}
		root = NewRootCmd("test")
		root.SetArgs([]string{"config", "validate"})
		root.SetOut(out)
		root.SetErr(&strings.Builder{})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "is valid")
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := runAnnotate(t, "config", "validate")
		assert.Error(t, err)
	})
}
