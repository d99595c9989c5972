package ui

import (
	"context"
	"errors"
)

// ErrConfirmPending is returned when a confirmation is already running.
var ErrConfirmPending = errors.New("confirmation already in progress")

// ErrNothingToConfirm is returned by Confirm when no target was requested.
var ErrNothingToConfirm = errors.New("nothing to confirm")

// Confirm guards a destructive action on Target until the operator confirms it.
type Confirm[T any] struct {
	Open    bool
	Target  *T
	Pending bool
}

// Request opens the prompt for target, replacing any earlier unconfirmed one.
func (c *Confirm[T]) Request(target T) {
	if c.Pending {
		return
	}
	c.Open = true
	c.Target = &target
}

// Cancel closes the prompt without acting. It is ignored while the action runs.
func (c *Confirm[T]) Cancel() {
	if c.Pending {
		return
	}
	c.Open = false
	c.Target = nil
}

// Confirm runs fn on the target. On success the prompt clears; on failure it
// stays open so the operator can retry or cancel.
func (c *Confirm[T]) Confirm(ctx context.Context, fn func(context.Context, T) error) error {
	if c.Pending {
		return ErrConfirmPending
	}
	if !c.Open || c.Target == nil {
		return ErrNothingToConfirm
	}
	c.Pending = true
	err := fn(ctx, *c.Target)
	c.Pending = false
	if err != nil {
		return err
	}
	c.Open = false
	c.Target = nil
	return nil
}
