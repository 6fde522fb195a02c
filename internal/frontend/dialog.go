package frontend

import "sync"

// DeleteTarget is the toy a confirmation dialog asks about.
type DeleteTarget struct {
	ID   int64
	Name string
}

// ConfirmDialog holds at most one pending delete. The pending target lives
// only here and is cleared by Close on both confirm and cancel.
type ConfirmDialog struct {
	mu      sync.Mutex
	target  DeleteTarget
	pending bool
}

// Open replaces any pending target with t.
func (d *ConfirmDialog) Open(t DeleteTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = t
	d.pending = true
}

// Pending returns the current target, if any.
func (d *ConfirmDialog) Pending() (DeleteTarget, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target, d.pending
}

// Close clears the pending target.
func (d *ConfirmDialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = DeleteTarget{}
	d.pending = false
}
