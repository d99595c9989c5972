package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/shop-admin/internal/richtext"
)

func TestEditors_KeepHistoryPerKey(t *testing.T) {
	var eds Editors

	eds.With("blogs:a", "<p>a</p>", func(ed *richtext.Editor) {
		require.NoError(t, ed.Apply(richtext.Heading2, 0))
	})
	eds.With("blogs:b", "<p>b</p>", func(ed *richtext.Editor) {
		assert.False(t, ed.CanUndo())
	})
	eds.With("blogs:a", "ignored", func(ed *richtext.Editor) {
		assert.Equal(t, "<h2>a</h2>", ed.Content())
		require.True(t, ed.Undo())
		assert.Equal(t, "<p>a</p>", ed.Content())
	})
	assert.Equal(t, 2, eds.Len())
}

func TestEditors_ResetClearsHistory(t *testing.T) {
	var eds Editors
	eds.With("blogs:a", "<p>a</p>", func(ed *richtext.Editor) {
		ed.Edit("<p>typed</p>")
	})

	eds.Reset("blogs:a", "<p>saved</p>")

	eds.With("blogs:a", "", func(ed *richtext.Editor) {
		assert.Equal(t, "<p>saved</p>", ed.Content())
		assert.False(t, ed.CanUndo())
	})
}

func TestEditors_EvictsLeastRecentlyUsed(t *testing.T) {
	var eds Editors
	for i := range maxOpenEditors {
		eds.Reset(fmt.Sprintf("blogs:%d", i), "<p>x</p>")
	}
	// touch the oldest so the second oldest goes first
	eds.With("blogs:0", "", func(*richtext.Editor) {})

	eds.Reset("blogs:new", "<p>new</p>")

	assert.Equal(t, maxOpenEditors, eds.Len())
	eds.With("blogs:0", "<p>fresh</p>", func(ed *richtext.Editor) {
		assert.Equal(t, "<p>x</p>", ed.Content(), "recently used editor kept")
	})
	eds.With("blogs:1", "<p>fresh</p>", func(ed *richtext.Editor) {
		assert.Equal(t, "<p>fresh</p>", ed.Content(), "evicted editor recreated")
	})
}

func TestEditors_Close(t *testing.T) {
	var eds Editors
	eds.Reset("blogs:a", "<p>a</p>")
	eds.Close("blogs:a")
	eds.Close("blogs:missing")
	assert.Zero(t, eds.Len())
}
