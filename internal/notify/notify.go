// Package notify shows transient toast notifications and dismisses them
// after a fixed duration.
package notify

import (
	"sync"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/clock"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

// Kind selects the notification style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// ID identifies a shown notification.
type ID uint64

// Notification is one toast.
type Notification struct {
	ID      ID
	Message string
	Kind    Kind
}

// Renderer puts notifications on screen and takes them off again.
type Renderer interface {
	Show(n Notification)
	Hide(id ID)
}

// Notifier is what form and page code use to raise a notification.
type Notifier interface {
	Notify(kind Kind, message string) ID
}

// Center tracks visible notifications and their dismissal timers.
type Center struct {
	renderer Renderer
	clock    clock.Clock
	duration time.Duration

	mu      sync.Mutex
	nextID  ID
	pending map[ID]clock.Timer
}

// NewCenter creates a Center. A nil clock uses the wall clock; a
// non-positive duration uses constants.NotificationDuration.
func NewCenter(r Renderer, clk clock.Clock, duration time.Duration) *Center {
	if clk == nil {
		clk = clock.New()
	}
	if duration <= 0 {
		duration = constants.NotificationDuration
	}
	return &Center{
		renderer: r,
		clock:    clk,
		duration: duration,
		pending:  make(map[ID]clock.Timer),
	}
}

// Notify shows a notification and schedules its dismissal.
func (c *Center) Notify(kind Kind, message string) ID {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.pending[id] = c.clock.AfterFunc(c.duration, func() { c.Dismiss(id) })
	c.mu.Unlock()

	c.renderer.Show(Notification{ID: id, Message: message, Kind: kind})
	return id
}

// Dismiss hides a notification before its timer fires. Unknown or already
// dismissed IDs are ignored.
func (c *Center) Dismiss(id ID) {
	c.mu.Lock()
	timer, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	timer.Stop()
	c.renderer.Hide(id)
}

// Visible returns the number of notifications on screen.
func (c *Center) Visible() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
