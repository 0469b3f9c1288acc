// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package config

import (
	"image"
)

type WindowConfig struct {
	Size image.Point `yaml:",omitempty"`
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Size: image.Point{X: 1280, Y: 800},
	}
}

func (w *WindowConfig) sanitize() {
	if w.Size.X <= 0 || w.Size.Y <= 0 {
		*w = NewWindowConfig()
	}
}
