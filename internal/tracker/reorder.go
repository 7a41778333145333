package tracker

import (
	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
)

// Drag-and-drop reorder protocol. The session state is exactly one
// dragged row id plus at most one drop candidate; everything else is
// derived from the cache. Reordering is local only: the store is never
// written, and the next reload restores creation order.

// DragStart begins a drag on the row with the given id. It reports
// whether the drag was accepted: a drag already in progress or an id not
// in the cache leaves the state untouched.
func (t *Tracker) DragStart(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draggedID != uuid.Nil {
		return false
	}

	if t.indexOf(id) < 0 {
		return false
	}

	t.draggedID = id

	return true
}

// DragOver marks the row under the pointer as the drop candidate. The
// dragged row itself is never a candidate, and marking one row clears
// any other.
func (t *Tracker) DragOver(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draggedID == uuid.Nil || id == t.draggedID {
		return
	}

	t.dropTarget = id
}

// DragLeave clears the drop candidate flag if it is on the given row.
func (t *Tracker) DragLeave(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dropTarget == id {
		t.dropTarget = uuid.Nil
	}
}

// Drop completes the drag onto the row with the given id: the dragged
// bill is removed from its position and reinserted right behind the
// target, whose index is found on the post-removal sequence. That makes
// the drop idempotent: repeating it leaves the order alone. Dropping a
// row onto itself is a no-op. Either way the drag state is cleared.
// Reports whether the order changed.
func (t *Tracker) Drop(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	draggedID := t.draggedID
	t.draggedID = uuid.Nil
	t.dropTarget = uuid.Nil

	if draggedID == uuid.Nil || draggedID == id {
		return false
	}

	from := t.indexOf(draggedID)
	if from < 0 {
		return false
	}

	dragged := t.bills[from]
	rest := append(t.bills[:from:from], t.bills[from+1:]...)

	to := -1

	for i, b := range rest {
		if b.ID == id {
			to = i
			break
		}
	}

	if to < 0 {
		return false
	}

	bills := make([]*bill.Bill, 0, len(rest)+1)
	bills = append(bills, rest[:to+1]...)
	bills = append(bills, dragged)
	bills = append(bills, rest[to+1:]...)
	t.bills = bills

	return from != to+1
}

// DragEnd fires regardless of drop success and clears all drag state.
func (t *Tracker) DragEnd() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.draggedID = uuid.Nil
	t.dropTarget = uuid.Nil
}

// Dragging returns the id of the row being dragged, if any.
func (t *Tracker) Dragging() (uuid.UUID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.draggedID, t.draggedID != uuid.Nil
}

// DropTarget returns the current drop candidate, if any.
func (t *Tracker) DropTarget() (uuid.UUID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dropTarget, t.dropTarget != uuid.Nil
}
