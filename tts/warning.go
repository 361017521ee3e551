package tts

import "sync"

// WarningBox holds the single current speech warning. Writers replace the
// message; readers wait on Changed for the next update.
type WarningBox struct {
	mu      sync.Mutex
	msg     string
	version uint64
	changed chan struct{}
}

// NewWarningBox returns an empty warning box.
func NewWarningBox() *WarningBox {
	return &WarningBox{changed: make(chan struct{})}
}

// Set replaces the current warning. Setting the same text again is a
// no-op so a dismissed banner stays dismissed.
func (w *WarningBox) Set(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if msg == w.msg {
		return
	}
	w.msg = msg
	w.version++
	close(w.changed)
	w.changed = make(chan struct{})
}

// Clear removes the current warning.
func (w *WarningBox) Clear() {
	w.Set("")
}

// Get returns the current warning, or "" if there is none.
func (w *WarningBox) Get() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.msg
}

// Snapshot returns the current warning and its version. The version
// increases with every change.
func (w *WarningBox) Snapshot() (string, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.msg, w.version
}

// Changed returns a channel that is closed on the next change.
func (w *WarningBox) Changed() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.changed
}
