package canvas

import (
	"sync"
	"time"
)

// Notifier holds the single transient notification shown to the user.
// Each Show cancels the previous auto-dismiss timer and re-arms it, so
// the newest message always gets the full display interval.
type Notifier struct {
	mu    sync.Mutex
	timer *time.Timer
	msg   string
	ttl   time.Duration
	sink  func(string)
}

// NewNotifier creates a notifier that auto-dismisses after ttl. The
// optional sink observes every message change, "" meaning dismissed.
func NewNotifier(ttl time.Duration, sink func(string)) *Notifier {
	return &Notifier{ttl: ttl, sink: sink}
}

// Show replaces the current notification and re-arms the dismiss timer.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.msg = msg
	if n.sink != nil {
		n.sink(msg)
	}
	n.timer = time.AfterFunc(n.ttl, n.dismiss)
}

func (n *Notifier) dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg = ""
	if n.sink != nil {
		n.sink("")
	}
}

// Current returns the visible notification, "" when none.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}
