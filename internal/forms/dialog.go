package forms

import (
	"context"
	"errors"
)

// Mode distinguishes creating a record from editing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	// ErrDialogPending is returned when a dialog is asked to close or resubmit mid-submit.
	ErrDialogPending = errors.New("dialog submit in progress")
	// ErrDialogClosed is returned when submitting a dialog that is not open.
	ErrDialogClosed = errors.New("dialog is not open")
)

// Dialog is the open/edit/submit state machine shared by every record form.
// TargetKey is "" when creating.
type Dialog[D Draft] struct {
	Open      bool
	Mode      Mode
	TargetKey string
	Draft     D
	Pending   bool
}

// Show opens the dialog for key, building the draft with init. The draft is
// rebuilt only when the dialog was closed or the target identity changed, so
// repeated renders for the same target keep the operator's edits. It reports
// whether the draft was rebuilt.
func (d *Dialog[D]) Show(key string, init func() D) bool {
	if d.Open && d.TargetKey == key {
		return false
	}
	if d.Open {
		d.Draft.Release()
	}
	d.Open = true
	d.TargetKey = key
	d.Mode = ModeCreate
	if key != "" {
		d.Mode = ModeEdit
	}
	d.Draft = init()
	d.Pending = false
	return true
}

// Close discards the draft. It is refused while a submit is pending.
func (d *Dialog[D]) Close() error {
	if d.Pending {
		return ErrDialogPending
	}
	if d.Open {
		d.Draft.Release()
	}
	var zero D
	d.Open = false
	d.Mode = ""
	d.TargetKey = ""
	d.Draft = zero
	return nil
}

// Errors returns the current field errors of an open dialog.
func (d *Dialog[D]) Errors() FieldErrors {
	if !d.Open {
		return FieldErrors{}
	}
	return d.Draft.Validate()
}

// Begin marks the dialog pending after validating the draft.
func (d *Dialog[D]) Begin() error {
	if !d.Open {
		return ErrDialogClosed
	}
	if d.Pending {
		return ErrDialogPending
	}
	if err := d.Draft.Validate().Err(); err != nil {
		return err
	}
	d.Pending = true
	return nil
}

// Finish ends a pending submit. Success closes the dialog; failure leaves it
// open with the draft intact so the operator can retry.
func (d *Dialog[D]) Finish(err error) {
	d.Pending = false
	if err == nil {
		_ = d.Close()
	}
}

// Submit runs Begin, hands the draft to fn and finishes with its result.
func (d *Dialog[D]) Submit(ctx context.Context, fn func(ctx context.Context, draft D) error) error {
	if err := d.Begin(); err != nil {
		return err
	}
	err := fn(ctx, d.Draft)
	d.Finish(err)
	return err
}
