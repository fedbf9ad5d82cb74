package main

import (
	"testing"

	"blochview/bloch"
	"blochview/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionKeys(t *testing.T) {
	keys, err := selectionKeys(" plus, probB ,", bloch.DefaultControls())
	require.NoError(t, err)
	assert.Equal(t, []hal.KeyEvent{
		{Press: true, Rune: '3'},
		{Press: true, Rune: '6'},
	}, keys)

	keys, err = selectionKeys("", bloch.DefaultControls())
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = selectionKeys("plus,bogus", bloch.DefaultControls())
	assert.ErrorIs(t, err, bloch.ErrUnknownControl)

	_, err = selectionKeys("zero", nil)
	assert.ErrorIs(t, err, bloch.ErrUnknownControl)
}
