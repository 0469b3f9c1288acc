// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const AppName = "goldchart"
const configFileName = "goldchart.yaml"
const configFileVersion = 1

// ConfigDirEnv overrides the configuration directory, mainly for
// running several instances against different backends.
const ConfigDirEnv = "GOLDCHART_CONFIG_DIR"

var errConfigFromFuture = errors.New("configuration file was written by a newer release")

// GlobalConfig persists the app configuration as a yaml file in the
// user config dir. The file is loaded lazily on first access and only
// written back when a snapshot actually changed.
type GlobalConfig struct {
	mu        sync.Mutex
	loaded    bool
	version   VersionConfig
	appConfig AppConfig
}

type VersionConfig struct {
	FileVersion int
}

func NewGlobalConfig() Config {
	return &GlobalConfig{
		version:   VersionConfig{FileVersion: configFileVersion},
		appConfig: NewAppConfig(),
	}
}

func (g *GlobalConfig) GetAppName() string {
	return AppName
}

// Lock returns a modifiable copy of the configuration and holds the
// lock until Unlock. Call Unlock only when no error was returned.
func (g *GlobalConfig) Lock() (*AppConfig, error) {
	g.mu.Lock()
	if err := g.ensureLoaded(); err != nil {
		g.mu.Unlock()
		return nil, err
	}
	c := g.appConfig.deepCopy()
	return &c, nil
}

// Unlock stores the given configuration and releases the lock. The
// file is rewritten only when the snapshot differs.
func (g *GlobalConfig) Unlock(c *AppConfig) error {
	var err error
	if !cmp.Equal(g.appConfig, *c) {
		g.appConfig = *c
		err = g.store()
	}
	g.mu.Unlock()
	return err
}

// Copy returns a detached snapshot for read-only use.
func (g *GlobalConfig) Copy() (AppConfig, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.ensureLoaded(); err != nil {
		return AppConfig{}, err
	}
	return g.appConfig.deepCopy(), nil
}

func (g *GlobalConfig) ensureLoaded() error {
	if g.loaded {
		return nil
	}
	return g.load()
}

func (g *GlobalConfig) configDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine configuration path: %w", err)
	}
	return filepath.Join(userConfigDir, AppName), nil
}

func (g *GlobalConfig) load() error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	fileName := filepath.Join(dir, configFileName)
	file, err := os.ReadFile(fileName)
	if errors.Is(err, os.ErrNotExist) {
		// First start, defaults apply.
		log.Printf("configuration file %q does not yet exist, using defaults", fileName)
		g.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(file, &g.version); err != nil {
		return fmt.Errorf("failed to parse configuration version: %w", err)
	}
	// A downgrade would silently drop settings the newer release wrote.
	if g.version.FileVersion > configFileVersion {
		return fmt.Errorf("%w: file version %d, supported %d",
			errConfigFromFuture, g.version.FileVersion, configFileVersion)
	}
	if err := yaml.Unmarshal(file, &g.appConfig); err != nil {
		return fmt.Errorf("failed to parse app configuration: %w", err)
	}
	g.appConfig.Sanitize()
	g.loaded = true
	return nil
}

func (g *GlobalConfig) store() error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	g.appConfig.Sanitize()
	g.appConfig.RemoveDefaults()
	versionPart, err := yaml.Marshal(&g.version)
	if err != nil {
		return fmt.Errorf("error generating configuration version: %w", err)
	}
	configPart, err := yaml.Marshal(&g.appConfig)
	if err != nil {
		return fmt.Errorf("error generating app configuration: %w", err)
	}
	g.appConfig.RestoreDefaults()

	fileName := filepath.Join(dir, configFileName)
	tmpFileName := fileName + ".tmp"
	// Writing may fail part way, so write to a temporary file and
	// rename over the old one.
	if err := os.WriteFile(tmpFileName, append(versionPart, configPart...), 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		return fmt.Errorf("failed to replace configuration file: %w", err)
	}
	return nil
}
