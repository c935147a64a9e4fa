// Package notifier holds the single transient message shown to the user
package notifier

import (
	"sync"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
)

// Center keeps at most one notification. A newer notification replaces the
// current one; each notification hides itself after the configured duration
// unless it has been superseded.
type Center struct {
	duration time.Duration

	mu      sync.Mutex
	seq     uint64
	current models.Notification
	subs    map[uint64]chan models.Notification
	nextSub uint64
}

// New creates a Center. A non-positive duration selects the default.
func New(duration time.Duration) *Center {
	if duration <= 0 {
		duration = constants.NotificationDuration
	}
	return &Center{
		duration: duration,
		subs:     make(map[uint64]chan models.Notification),
	}
}

// Duration returns how long a notification stays visible
func (c *Center) Duration() time.Duration {
	return c.duration
}

// Notify replaces the current notification and returns its id
func (c *Center) Notify(message string, severity constants.Severity) uint64 {
	if severity == "" {
		severity = constants.SeverityInfo
	}

	c.mu.Lock()
	c.seq++
	id := c.seq
	c.current = models.Notification{ID: id, Message: message, Severity: severity, Visible: true}
	n := c.current
	c.publishLocked(n)
	c.mu.Unlock()

	logger.Debug("Notification", "id", id, "severity", severity, "message", message)

	// old timers are left to fire; hide ignores them
	time.AfterFunc(c.duration, func() { c.hide(id) })
	return id
}

// Info is shorthand for an info-severity notification
func (c *Center) Info(message string) uint64 {
	return c.Notify(message, constants.SeverityInfo)
}

// Error is shorthand for an error-severity notification
func (c *Center) Error(message string) uint64 {
	return c.Notify(message, constants.SeverityError)
}

// Current returns the current notification. Visible is false once it expired.
func (c *Center) Current() models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dismiss hides the current notification immediately
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLocked(c.seq)
}

// Subscribe returns a channel that receives every change to the current
// notification, and a func to stop receiving. A slow reader only sees the
// latest change.
func (c *Center) Subscribe() (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, 1)

	c.mu.Lock()
	c.nextSub++
	key := c.nextSub
	c.subs[key] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, key)
			c.mu.Unlock()
		})
	}
}

func (c *Center) hide(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLocked(id)
}

// hideLocked hides the current notification only if it is still id
func (c *Center) hideLocked(id uint64) {
	if id != c.seq || !c.current.Visible {
		return
	}
	c.current.Visible = false
	c.publishLocked(c.current)
}

func (c *Center) publishLocked(n models.Notification) {
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
			// drop the stale pending value, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}
