package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
APP_PORT: "9090"
STORE_DRIVER: redis
SEED_DEMO_ITEMS: true
GEMINI_MODEL: gemini-test
`), 0o644))

	t.Setenv("GEMINI_MODEL", "gemini-from-env")
	t.Setenv("STORE_WATCH", "true")

	LoadConfigFile(path)

	assert.Equal(t, "9090", GetConfig("APP_PORT"))
	assert.Equal(t, "redis", GetConfig("STORE_DRIVER"))
	assert.Equal(t, "gemini-from-env", GetConfig("GEMINI_MODEL"))
	assert.True(t, GetBoolConfig("SEED_DEMO_ITEMS"))
	assert.True(t, GetBoolConfig("STORE_WATCH"))
	assert.Equal(t, "true", GetConfig("STORE_WATCH"))
	assert.Equal(t, "smart-shelf-storage", GetConfig("STORE_NAME"), "defaults survive a partial file")
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfigFileMissing(t *testing.T) {
	LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "file", GetConfig("STORE_DRIVER"))
	assert.False(t, GetBoolConfig("SEED_DEMO_ITEMS"))
}

func TestSetConfig(t *testing.T) {
	LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

	SetConfig("JWT_SECRET", "s3cret")
	SetConfig("SEED_DEMO_ITEMS", "true")

	assert.Equal(t, "s3cret", GetConfig("JWT_SECRET"))
	assert.True(t, GetBoolConfig("SEED_DEMO_ITEMS"))
}

func TestIsTimeOfDay(t *testing.T) {
	InitValidator()

	for _, ok := range []string{"00:00", "08:30", "18:00", "23:59"} {
		assert.True(t, IsTimeOfDay(ok), ok)
	}
	for _, bad := range []string{"", "8:30", "24:00", "12:60", "noon", "18:00:00"} {
		assert.False(t, IsTimeOfDay(bad), bad)
	}

	type probe struct {
		At string `validate:"timeofday"`
	}
	assert.NoError(t, Validate.Struct(probe{At: "07:15"}))
	assert.Error(t, Validate.Struct(probe{At: "7:15"}))
}
