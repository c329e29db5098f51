package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnvironmentVariables(t *testing.T) {
	t.Run("loads the env file", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env.test")
		require.NoError(t, os.WriteFile(envFile, []byte("OPTIONS_MACHINE_TEST_KEY=loaded\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("OPTIONS_MACHINE_TEST_KEY") })

		require.NoError(t, InitEnvironmentVariables(envFile))

		value, err := GetEnv("OPTIONS_MACHINE_TEST_KEY")
		require.NoError(t, err)
		assert.Equal(t, "loaded", value)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, InitEnvironmentVariables(filepath.Join(t.TempDir(), "missing.env")))
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("OPTIONS_MACHINE_PRESENT", "yes")

	value, err := GetEnv("OPTIONS_MACHINE_PRESENT")
	require.NoError(t, err)
	assert.Equal(t, "yes", value)

	_, err = GetEnv("OPTIONS_MACHINE_ABSENT")
	assert.Error(t, err)

	assert.Equal(t, "fallback", GetEnvOrDefault("OPTIONS_MACHINE_ABSENT", "fallback"))
}
