// Package ui models the cross-cutting dialog state shared by every admin page:
// the confirmation prompt guarding deletes and the single transient toast.
package ui

import (
	"sync"
	"time"
)

// ToastDuration is how long a toast stays visible before it dismisses itself.
const ToastDuration = 4 * time.Second

// Severity is the visual tone of a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Toast is the single live notification.
type Toast struct {
	Open     bool     `json:"open"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Success builds an open success toast.
func Success(msg string) Toast { return Toast{Open: true, Message: msg, Severity: SeveritySuccess} }

// Error builds an open error toast.
func Error(msg string) Toast { return Toast{Open: true, Message: msg, Severity: SeverityError} }

// Warning builds an open warning toast.
func Warning(msg string) Toast { return Toast{Open: true, Message: msg, Severity: SeverityWarning} }

// Info builds an open info toast.
func Info(msg string) Toast { return Toast{Open: true, Message: msg, Severity: SeverityInfo} }

// Notifier holds at most one toast. Showing a toast replaces the current one
// and restarts the dismiss timer; there is no queue.
type Notifier struct {
	mu       sync.Mutex
	current  Toast
	timer    *time.Timer
	gen      uint64
	duration time.Duration
	after    func(time.Duration, func()) *time.Timer
}

// NewNotifier returns a Notifier that dismisses after ToastDuration.
func NewNotifier() *Notifier {
	return &Notifier{duration: ToastDuration, after: time.AfterFunc}
}

// WithDuration overrides the auto-dismiss delay.
func (n *Notifier) WithDuration(d time.Duration) *Notifier {
	if d > 0 {
		n.duration = d
	}
	return n
}

// Show replaces the current toast.
func (n *Notifier) Show(msg string, sev Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = Toast{Open: true, Message: msg, Severity: sev}
	n.timer = n.after(n.duration, func() { n.expire(gen) })
}

// expire closes the toast only if it is still the one the timer was started for.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen == n.gen {
		n.current = Toast{}
		n.timer = nil
	}
}

// Close dismisses the current toast.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = Toast{}
}

// Current returns the live toast, or a closed one.
func (n *Notifier) Current() Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
