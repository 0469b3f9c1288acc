// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigRoundTrip(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	cfg := NewGlobalConfig()
	appConfig, err := cfg.Lock()
	require.NoError(t, err)
	appConfig.LightTheme = true
	appConfig.ApiConfig.BaseUrl = "http://gold.example:9000"
	require.NoError(t, cfg.Unlock(appConfig))

	reloaded, err := NewGlobalConfig().Copy()
	require.NoError(t, err)
	assert.True(t, reloaded.LightTheme)
	assert.Equal(t, "http://gold.example:9000", reloaded.ApiConfig.BaseUrl)
	// untouched settings come back as defaults
	assert.Equal(t, defaultApiConfig.WsUrl, reloaded.ApiConfig.WsUrl)
}

func TestGlobalConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	c, err := NewGlobalConfig().Copy()
	require.NoError(t, err)
	assert.Equal(t, defaultApiConfig.BaseUrl, c.ApiConfig.BaseUrl)
	assert.Equal(t, "5m", c.ChartConfig.DefaultTimeframe)
}

func TestGlobalConfigRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	err := os.WriteFile(filepath.Join(dir, configFileName), []byte("fileversion: 99\n"), 0600)
	require.NoError(t, err)

	_, err = NewGlobalConfig().Copy()
	assert.ErrorIs(t, err, errConfigFromFuture)
}

func TestGlobalConfigUnchangedUnlockDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	cfg := NewGlobalConfig()
	appConfig, err := cfg.Lock()
	require.NoError(t, err)
	require.NoError(t, cfg.Unlock(appConfig))

	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.True(t, os.IsNotExist(err))
}
