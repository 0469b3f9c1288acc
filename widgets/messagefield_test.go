// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFieldPadsText(t *testing.T) {
	f := NewMessageField()
	th := NewDarkMaterialTheme()

	short := f.Layout("lost", widgetContext(), th)
	long := f.Layout("Connection to backend lost. Retrying...", widgetContext(), th)
	// the banner wraps the text with padding and grows with it
	assert.Greater(t, short.Size.X, 2*25)
	assert.Greater(t, long.Size.X, short.Size.X)
	assert.Equal(t, short.Size.Y, long.Size.Y)
}
