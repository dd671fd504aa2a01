package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Run("config file specified", func(t *testing.T) {
		cfgFile = "/test/config.yaml"
		assert.NotPanics(t, func() { initConfig() })
	})

	t.Run("no config file specified", func(t *testing.T) {
		cfgFile = ""
		assert.NotPanics(t, func() { initConfig() })
	})
}

func TestRootCommandFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		flag     string
		defValue string
	}{
		{"api-key", ""},
		{"language", ""},
		{"timeout", "30s"},
		{"user-agent", ""},
		{"proxy", ""},
		{"no-cache", "false"},
		{"cache-ttl", "24h0m0s"},
		{"refresh-cache", "false"},
		{"creator", ""},
		{"force", "false"},
		{"dry-run", "false"},
		{"verbose", "false"},
		{"config", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := flags.Lookup(tt.flag)
			require.NotNil(t, f, "flag %s not registered", tt.flag)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "ymaps2gpx [url] [output_dir]", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Version)

	// accepts zero, one or two positional args
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"https://yandex.ru/maps"}))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"https://yandex.ru/maps", "./out"}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"a", "b", "c"}))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["doctor"])
	assert.True(t, names["version"])
}

func TestCheckWritePermissions(t *testing.T) {
	t.Run("writable directory", func(t *testing.T) {
		dir := t.TempDir()
		assert.True(t, checkWritePermissions(dir))

		// the probe file must not survive the check
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.False(t, checkWritePermissions(filepath.Join(t.TempDir(), "missing")))
	})
}

func TestCacheTTLFlagParsing(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	require.NoError(t, flags.Set("cache-ttl", "1h"))
	t.Cleanup(func() { _ = flags.Set("cache-ttl", (24 * time.Hour).String()) })

	ttl, err := flags.GetDuration("cache-ttl")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
}
