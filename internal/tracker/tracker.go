// Package tracker implements the client-side bill list model: an ordered
// in-memory cache mirroring the record store, full-replace synchronization
// after every mutation, pending/paid totals and a local-only drag-and-drop
// reorder protocol.
package tracker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
)

//go:generate mockgen -source=tracker.go -destination=store_mock.go -package=tracker
type Store interface {
	List(ctx context.Context) ([]*bill.Bill, error)
	Create(ctx context.Context, params bill.Params) (*bill.Bill, error)
	Update(ctx context.Context, id uuid.UUID, params bill.Params) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FormMode says which operation a form submit triggers: adding a new bill
// or editing the one identified by id.
type FormMode struct {
	id uuid.UUID
}

func Adding() FormMode {
	return FormMode{}
}

func Editing(id uuid.UUID) FormMode {
	return FormMode{id: id}
}

// Editing reports whether the mode targets an existing bill and, if so,
// which one.
func (m FormMode) Editing() (uuid.UUID, bool) {
	return m.id, m.id != uuid.Nil
}

// Tracker owns the local record cache. All slice access goes through the
// mutex because the presentation layer may invoke mutations from command
// goroutines; the lock is never held across a store call.
type Tracker struct {
	store Store

	mu    sync.Mutex
	bills []*bill.Bill

	draggedID  uuid.UUID
	dropTarget uuid.UUID
}

func New(store Store) *Tracker {
	return &Tracker{store: store}
}

// Reload fetches the full ordered bill list from the store and replaces
// the cache wholesale. There is no incremental patching: either the fetch
// succeeds and the cache equals exactly the store's current content, or
// it fails and the cache is left as it was. Any manual reordering is
// discarded, along with any drag in progress, since every row the drag
// referred to has been replaced.
func (t *Tracker) Reload(ctx context.Context) error {
	bills, err := t.store.List(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.bills = bills
	t.draggedID = uuid.Nil
	t.dropTarget = uuid.Nil

	return nil
}

// Submit funnels both mutations through one entry point, keyed on the
// form mode. Editing requires the target to be present in the cache: if
// it is not, the operation aborts with bill.ErrNotFound before any store
// call. On success the cache is reloaded; on failure nothing changes.
func (t *Tracker) Submit(ctx context.Context, mode FormMode, params bill.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if id, editing := mode.Editing(); editing {
		if _, ok := t.find(id); !ok {
			return bill.ErrNotFound
		}

		if err := t.store.Update(ctx, id, params); err != nil {
			return err
		}

		return t.Reload(ctx)
	}

	if _, err := t.store.Create(ctx, params); err != nil {
		return err
	}

	return t.Reload(ctx)
}

// Delete removes the bill from the store and reloads. The target must be
// in the cache, otherwise the operation aborts with bill.ErrNotFound and
// no store call is made. Asking the user for confirmation is the
// presentation layer's job; by the time Delete runs, the answer was yes.
func (t *Tracker) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.find(id); !ok {
		return bill.ErrNotFound
	}

	if err := t.store.Delete(ctx, id); err != nil {
		return err
	}

	return t.Reload(ctx)
}

// Bills returns a copy of the cache in its current order.
func (t *Tracker) Bills() []*bill.Bill {
	t.mu.Lock()
	defer t.mu.Unlock()

	bills := make([]*bill.Bill, len(t.bills))
	copy(bills, t.bills)

	return bills
}

// Get returns the cached bill with the given id.
func (t *Tracker) Get(id uuid.UUID) (*bill.Bill, bool) {
	return t.find(id)
}

// Len returns the number of cached bills.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.bills)
}

// Totals sums the cached amounts grouped by status.
func (t *Tracker) Totals() bill.Totals {
	t.mu.Lock()
	defer t.mu.Unlock()

	return bill.ComputeTotals(t.bills)
}

func (t *Tracker) find(id uuid.UUID) (*bill.Bill, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.bills {
		if b.ID == id {
			return b, true
		}
	}

	return nil, false
}

func (t *Tracker) indexOf(id uuid.UUID) int {
	for i, b := range t.bills {
		if b.ID == id {
			return i
		}
	}

	return -1
}
