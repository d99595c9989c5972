package service

import (
	"slices"
	"sync"

	"github.com/target/shop-admin/internal/richtext"
)

const (
	// maxOpenEditors bounds editors kept per workspace; the least recently used is dropped first.
	maxOpenEditors = 8
	// editorHistory bounds undo steps per dialog.
	editorHistory = 50
)

// Editors keeps rich-text editors, and with them their undo history, across
// the requests of an open dialog. Keys name the dialog, e.g. "blogs:new".
type Editors struct {
	mu    sync.Mutex
	items map[string]*richtext.Editor
	// order lists keys least recently used first.
	order []string
}

// With runs fn on the editor for key, creating it on content when none is
// open. fn must not retain the editor.
func (e *Editors) With(key, content string, fn func(ed *richtext.Editor)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ed, ok := e.items[key]
	if !ok {
		ed = newEditor(content)
		e.putLocked(key, ed)
	} else {
		e.touchLocked(key)
	}
	fn(ed)
}

// Reset syncs the editor for key to content from outside, clearing its history.
// Opening a dialog calls it so a reopened record starts from the saved body.
func (e *Editors) Reset(key, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ed, ok := e.items[key]; ok {
		ed.SetContent(content)
		e.touchLocked(key)
		return
	}
	e.putLocked(key, newEditor(content))
}

func newEditor(content string) *richtext.Editor {
	return richtext.NewEditor(content).WithHistoryLimit(editorHistory)
}

// Close drops the editor for key.
func (e *Editors) Close(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.items, key)
	e.order = slices.DeleteFunc(e.order, func(k string) bool { return k == key })
}

// Len reports the number of open editors.
func (e *Editors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

func (e *Editors) putLocked(key string, ed *richtext.Editor) {
	if e.items == nil {
		e.items = make(map[string]*richtext.Editor)
	}
	for len(e.order) >= maxOpenEditors {
		delete(e.items, e.order[0])
		e.order = e.order[1:]
	}
	e.items[key] = ed
	e.order = append(e.order, key)
}

func (e *Editors) touchLocked(key string) {
	e.order = slices.DeleteFunc(e.order, func(k string) bool { return k == key })
	e.order = append(e.order, key)
}
