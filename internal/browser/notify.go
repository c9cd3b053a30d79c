package browser

import (
	"sync"
	"time"
)

// NotificationKind selects the banner variant.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
)

func (k NotificationKind) String() string {
	if k == NotifyError {
		return "error"
	}
	return "success"
}

// Notification is a transient banner.
type Notification struct {
	ID      uint64
	Kind    NotificationKind
	Message string
	// Leaving is set for the exit transition that precedes removal.
	Leaving bool
}

// Default banner timings.
const (
	NotificationVisible = 3 * time.Second
	NotificationExit    = 300 * time.Millisecond
)

// Notifier keeps a stack of self-dismissing notifications. Each notification
// runs its own timers; a display adapter subscribes with OnChange.
type Notifier struct {
	visible time.Duration
	exit    time.Duration

	mu       sync.Mutex
	nextID   uint64
	active   []Notification
	onChange func([]Notification)
}

// NewNotifier returns a notifier using the default timings.
func NewNotifier() *Notifier {
	return NewNotifierWithTimings(NotificationVisible, NotificationExit)
}

func NewNotifierWithTimings(visible, exit time.Duration) *Notifier {
	return &Notifier{visible: visible, exit: exit}
}

// OnChange registers the callback invoked with a snapshot after every change.
func (n *Notifier) OnChange(fn func([]Notification)) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

func (n *Notifier) Success(message string) uint64 {
	return n.Show(NotifySuccess, message)
}

func (n *Notifier) Error(message string) uint64 {
	return n.Show(NotifyError, message)
}

// Show stacks a new notification and starts its dismissal timer.
func (n *Notifier) Show(kind NotificationKind, message string) uint64 {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.active = append(n.active, Notification{ID: id, Kind: kind, Message: message})
	n.mu.Unlock()

	time.AfterFunc(n.visible, func() { n.leave(id) })
	n.emit()
	return id
}

// Active returns the notifications currently on screen, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.active...)
}

func (n *Notifier) leave(id uint64) {
	n.mu.Lock()
	for i := range n.active {
		if n.active[i].ID == id {
			n.active[i].Leaving = true
		}
	}
	n.mu.Unlock()

	time.AfterFunc(n.exit, func() { n.remove(id) })
	n.emit()
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	for i := range n.active {
		if n.active[i].ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			break
		}
	}
	n.mu.Unlock()

	n.emit()
}

func (n *Notifier) emit() {
	n.mu.Lock()
	fn := n.onChange
	snapshot := append([]Notification(nil), n.active...)
	n.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}
