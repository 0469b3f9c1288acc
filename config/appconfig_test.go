// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFillsDefaults(t *testing.T) {
	var c AppConfig
	c.Sanitize()
	assert.Equal(t, "5m", c.ChartConfig.DefaultTimeframe)
	assert.Equal(t, 100, c.ChartConfig.Bars)
	assert.NotEmpty(t, c.ChartConfig.Timeframes)
	assert.Equal(t, defaultApiConfig.BaseUrl, c.ApiConfig.BaseUrl)
	assert.Equal(t, 3, c.ApiConfig.ChartPollSeconds)
	assert.Equal(t, 1280, c.WindowConfig.Size.X)
}

func TestDefaultsRoundTrip(t *testing.T) {
	c := NewAppConfig()
	c.RemoveDefaults()
	assert.Empty(t, c.ApiConfig.BaseUrl)
	c.RestoreDefaults()
	assert.Equal(t, defaultApiConfig.BaseUrl, c.ApiConfig.BaseUrl)

	custom := NewAppConfig()
	custom.ApiConfig.BaseUrl = "http://gold.example:9000"
	custom.RemoveDefaults()
	assert.Equal(t, "http://gold.example:9000", custom.ApiConfig.BaseUrl)
}

func TestDeepCopyIsDetached(t *testing.T) {
	c := NewAppConfig()
	c.ChartConfig.Overlays = map[string]bool{"vwap": true}
	cp := c.deepCopy()
	cp.ChartConfig.Overlays["vwap"] = false
	cp.ChartConfig.Timeframes[0] = "2m"
	assert.True(t, c.ChartConfig.Overlays["vwap"])
	assert.Equal(t, "1m", c.ChartConfig.Timeframes[0])
}

func TestTestConfigUpdates(t *testing.T) {
	cfg := NewTestConfig()
	appConfig, err := cfg.Lock()
	require.NoError(t, err)
	appConfig.LightTheme = true
	require.NoError(t, cfg.Unlock(appConfig))

	copied, err := cfg.Copy()
	require.NoError(t, err)
	assert.True(t, copied.LightTheme)
}
