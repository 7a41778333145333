package tracker_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lucasvgarcia/contas/internal/bill"
	"github.com/lucasvgarcia/contas/internal/tracker"
)

func order(tr *tracker.Tracker) []string {
	bills := tr.Bills()
	descriptions := make([]string, len(bills))

	for i, b := range bills {
		descriptions[i] = b.Description
	}

	return descriptions
}

func idSet(bills []*bill.Bill) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(bills))
	for _, b := range bills {
		set[b.ID] = true
	}

	return set
}

func TestReorder_DragFirstOntoSecond(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(a.ID))
	tr.DragOver(b.ID)
	assert.True(t, tr.Drop(b.ID))
	tr.DragEnd()

	assert.Equal(t, []string{"B", "A"}, order(tr))
}

func TestReorder_PreservesMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")
	c := newBill("C")
	d := newBill("D")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b, c, d)

	before := idSet(tr.Bills())

	require.True(t, tr.DragStart(d.ID))
	tr.Drop(a.ID)

	after := tr.Bills()
	assert.Len(t, after, 4)
	assert.Equal(t, before, idSet(after))
	assert.Equal(t, []string{"A", "D", "B", "C"}, order(tr))
}

func TestReorder_RepeatedDropIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")
	c := newBill("C")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b, c)

	require.True(t, tr.DragStart(c.ID))
	assert.True(t, tr.Drop(a.ID))

	want := order(tr)

	require.True(t, tr.DragStart(c.ID))
	assert.False(t, tr.Drop(a.ID), "dropping onto the same target again must not move anything")
	assert.Equal(t, want, order(tr))
}

func TestReorder_DropOnSelfIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(a.ID))
	assert.False(t, tr.Drop(a.ID))
	assert.Equal(t, []string{"A", "B"}, order(tr))

	_, dragging := tr.Dragging()
	assert.False(t, dragging, "drop must clear the drag state either way")
}

func TestReorder_SingleDropCandidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")
	c := newBill("C")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b, c)

	require.True(t, tr.DragStart(a.ID))

	tr.DragOver(b.ID)
	target, ok := tr.DropTarget()
	require.True(t, ok)
	assert.Equal(t, b.ID, target)

	// moving on to another row replaces the candidate, never adds one
	tr.DragOver(c.ID)
	target, ok = tr.DropTarget()
	require.True(t, ok)
	assert.Equal(t, c.ID, target)

	tr.DragLeave(c.ID)
	_, ok = tr.DropTarget()
	assert.False(t, ok)
}

func TestReorder_DraggedRowIsNeverACandidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(a.ID))
	tr.DragOver(a.ID)

	_, ok := tr.DropTarget()
	assert.False(t, ok)
}

func TestReorder_DragStartRejectedMidDrag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(a.ID))
	assert.False(t, tr.DragStart(b.ID))

	dragged, ok := tr.Dragging()
	require.True(t, ok)
	assert.Equal(t, a.ID, dragged)
}

func TestReorder_DragStartUnknownID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, newBill("A"))

	assert.False(t, tr.DragStart(uuid.New()))
}

func TestReorder_CancelledDragLeavesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(b.ID))
	tr.DragOver(a.ID)
	tr.DragEnd()

	assert.Equal(t, []string{"A", "B"}, order(tr))

	_, dragging := tr.Dragging()
	assert.False(t, dragging)
	_, targeted := tr.DropTarget()
	assert.False(t, targeted)
}

func TestReorder_DiscardedByReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newBill("A")
	b := newBill("B")

	store := tracker.NewMockStore(ctrl)
	tr := loaded(t, store, a, b)

	require.True(t, tr.DragStart(a.ID))
	require.True(t, tr.Drop(b.ID))
	require.Equal(t, []string{"B", "A"}, order(tr))

	// the store still answers in creation order
	store.EXPECT().List(gomock.Any()).Return([]*bill.Bill{a, b}, nil)
	require.NoError(t, tr.Reload(context.Background()))

	assert.Equal(t, []string{"A", "B"}, order(tr))
}
