// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package config

import (
	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	LightTheme    bool `yaml:",omitempty"`
	HistoryDbPath string `yaml:",omitempty"`
	ApiConfig     ApiConfig
	ChartConfig   ChartConfig
	WindowConfig  WindowConfig
}

type ApiConfig struct {
	BaseUrl string `yaml:",omitempty"`
	WsUrl   string `yaml:",omitempty"`
	// The backend throttles aggressive pollers, so keep a client side limit.
	RateLimitPerSecond  int `yaml:",omitempty"`
	DataTimeoutSeconds  int `yaml:",omitempty"`
	ChartPollSeconds    int `yaml:",omitempty"`
	ForecastPollSeconds int `yaml:",omitempty"`
	ProfilePollSeconds  int `yaml:",omitempty"`
}

type ChartConfig struct {
	DefaultTimeframe string   `yaml:",omitempty"`
	Timeframes       []string `yaml:",omitempty,flow"`
	Bars             int      `yaml:",omitempty"`
	// Overlay visibility by overlay id, missing entries use the
	// overlay's own default.
	Overlays map[string]bool `yaml:",omitempty"`
}

var defaultApiConfig = NewApiConfig()
var defaultChartConfig = NewChartConfig()

func NewAppConfig() AppConfig {
	return AppConfig{
		ApiConfig:    NewApiConfig(),
		ChartConfig:  NewChartConfig(),
		WindowConfig: NewWindowConfig(),
	}
}

func NewApiConfig() ApiConfig {
	return ApiConfig{
		BaseUrl:             "http://localhost:8080",
		WsUrl:               "ws://localhost:8080/ws/ticks",
		RateLimitPerSecond:  10,
		DataTimeoutSeconds:  10,
		ChartPollSeconds:    3,
		ForecastPollSeconds: 5,
		ProfilePollSeconds:  15,
	}
}

func NewChartConfig() ChartConfig {
	return ChartConfig{
		DefaultTimeframe: "5m",
		Timeframes:       []string{"1m", "5m", "15m", "1h", "4h", "1d"},
		Bars:             100,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	a.WindowConfig.sanitize()
	if a.ChartConfig.Bars <= 0 {
		a.ChartConfig.Bars = defaultChartConfig.Bars
	}
	if len(a.ChartConfig.Timeframes) == 0 {
		a.ChartConfig.Timeframes = append([]string(nil), defaultChartConfig.Timeframes...)
	}
	if a.ChartConfig.DefaultTimeframe == "" {
		a.ChartConfig.DefaultTimeframe = defaultChartConfig.DefaultTimeframe
	}
	if a.ApiConfig.RateLimitPerSecond <= 0 {
		a.ApiConfig.RateLimitPerSecond = defaultApiConfig.RateLimitPerSecond
	}
	if a.ApiConfig.DataTimeoutSeconds <= 0 {
		a.ApiConfig.DataTimeoutSeconds = defaultApiConfig.DataTimeoutSeconds
	}
	if a.ApiConfig.ChartPollSeconds <= 0 {
		a.ApiConfig.ChartPollSeconds = defaultApiConfig.ChartPollSeconds
	}
	if a.ApiConfig.ForecastPollSeconds <= 0 {
		a.ApiConfig.ForecastPollSeconds = defaultApiConfig.ForecastPollSeconds
	}
	if a.ApiConfig.ProfilePollSeconds <= 0 {
		a.ApiConfig.ProfilePollSeconds = defaultApiConfig.ProfilePollSeconds
	}
	a.RestoreDefaults()
}

// We do not want to store certain default values in the configuration
// file, in order to avoid having to patch them.
func (a *AppConfig) RemoveDefaults() {
	if a.ApiConfig.BaseUrl == defaultApiConfig.BaseUrl {
		a.ApiConfig.BaseUrl = ""
	}
	if a.ApiConfig.WsUrl == defaultApiConfig.WsUrl {
		a.ApiConfig.WsUrl = ""
	}
}

// Restore certain default values which are not stored in the
// configuration file.
func (a *AppConfig) RestoreDefaults() {
	if len(a.ApiConfig.BaseUrl) == 0 {
		a.ApiConfig.BaseUrl = defaultApiConfig.BaseUrl
	}
	if len(a.ApiConfig.WsUrl) == 0 {
		a.ApiConfig.WsUrl = defaultApiConfig.WsUrl
	}
}
