package richtext

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 100

var (
	ErrUnknownCommand = errors.New("unknown formatting command")
	ErrBlockRange     = errors.New("block index out of range")
)

// Editor holds the sanitized HTML of one rich-text field and its edit history.
type Editor struct {
	content string
	undo    []string
	redo    []string
	limit   int

	// OnChange runs after every operator edit, undo and redo. SetContent does not call it.
	OnChange func(html string)
}

// NewEditor starts an editor on content with an empty history.
func NewEditor(content string) *Editor {
	return &Editor{content: Sanitize(content), limit: DefaultHistoryLimit}
}

// WithHistoryLimit bounds the undo stack to n entries.
func (e *Editor) WithHistoryLimit(n int) *Editor {
	if n > 0 {
		e.limit = n
		e.trim()
	}
	return e
}

// Content returns the current HTML.
func (e *Editor) Content() string { return e.content }

// Blocks reports the number of top-level blocks.
func (e *Editor) Blocks() int { return len(parseBlocks(e.content)) }

// CanUndo reports whether Undo would change the content.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether Redo would change the content.
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// SetContent replaces the content from outside the editor, for example when the
// draft is re-initialised. History is reset and OnChange is not called.
func (e *Editor) SetContent(html string) {
	e.content = Sanitize(html)
	e.undo = nil
	e.redo = nil
}

// Edit records content typed by the operator.
func (e *Editor) Edit(html string) {
	e.commit(Sanitize(html))
}

// Apply toggles cmd on the block at index.
func (e *Editor) Apply(cmd Command, index int) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	blocks := parseBlocks(e.content)
	if index < 0 || index >= len(blocks) {
		return fmt.Errorf("%w: %d of %d", ErrBlockRange, index, len(blocks))
	}

	var replaced []*html.Node
	if kinds, ok := marks[cmd]; ok {
		toggleMark(blocks[index], kinds)
		replaced = blocks
	} else {
		replaced = append(replaced, blocks[:index]...)
		replaced = append(replaced, toggleBlock(blocks[index], blockCommands[cmd])...)
		replaced = append(replaced, blocks[index+1:]...)
	}
	e.commit(render(replaced))
	return nil
}

// IsActive reports whether cmd is already applied to the block at index.
func (e *Editor) IsActive(cmd Command, index int) bool {
	blocks := parseBlocks(e.content)
	if index < 0 || index >= len(blocks) {
		return false
	}
	if kinds, ok := marks[cmd]; ok {
		return markActive(blocks[index], kinds)
	}
	target, ok := blockCommands[cmd]
	return ok && blocks[index].DataAtom == target
}

// Undo restores the previous content.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.content)
	e.content = prev
	e.notify()
	return true
}

// Redo re-applies the most recently undone change.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.content)
	e.trim()
	e.content = next
	e.notify()
	return true
}

func (e *Editor) commit(next string) {
	if next == e.content {
		return
	}
	e.undo = append(e.undo, e.content)
	e.trim()
	e.redo = nil
	e.content = next
	e.notify()
}

func (e *Editor) trim() {
	if over := len(e.undo) - e.limit; over > 0 {
		e.undo = append([]string(nil), e.undo[over:]...)
	}
}

func (e *Editor) notify() {
	if e.OnChange != nil {
		e.OnChange(e.content)
	}
}
