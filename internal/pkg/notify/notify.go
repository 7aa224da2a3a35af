// internal/pkg/notify/notify.go
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Variant selects how a notification is presented
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short user-facing message with a title and description
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	At          time.Time `json:"at"`
}

// Notifier receives user-facing notifications
type Notifier interface {
	Notify(n Notification)
}

// Success builds a default notification
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault, At: time.Now()}
}

// Failure builds a destructive notification
func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive, At: time.Now()}
}

// IsDestructive reports whether the notification describes a failure
func (n Notification) IsDestructive() bool {
	return n.Variant == VariantDestructive
}

// Queue buffers notifications until the next page render drains them.
// Oldest entries are dropped once Max is reached.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	Max   int
}

// NewQueue creates a queue holding at most max notifications
func NewQueue(max int) *Queue {
	return &Queue{Max: max}
}

// Notify appends n to the queue
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, n)
	if q.Max > 0 && len(q.items) > q.Max {
		q.items = q.items[len(q.items)-q.Max:]
	}
}

// Drain returns all pending notifications and empties the queue
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Len returns the number of pending notifications
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LogNotifier writes notifications to a logger
type LogNotifier struct {
	Logger *logrus.Logger
}

// Notify logs n at warn level for failures and info level otherwise
func (l LogNotifier) Notify(n Notification) {
	entry := l.Logger.WithFields(logrus.Fields{
		"title":       n.Title,
		"description": n.Description,
	})
	if n.IsDestructive() {
		entry.Warn("notification")
		return
	}
	entry.Info("notification")
}

// Fanout delivers each notification to every notifier in order
type Fanout []Notifier

// Notify forwards n
func (f Fanout) Notify(n Notification) {
	for _, notifier := range f {
		notifier.Notify(n)
	}
}

// Discard drops notifications
type Discard struct{}

// Notify does nothing
func (Discard) Notify(Notification) {}
