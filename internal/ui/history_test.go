package ui

import (
	"testing"

	"github.com/cargoplan/loadplanner/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	snap0 := MakeSnapshot(nil, nil, "initial")
	h.Push(snap0)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	currentItems := []model.Item{{ID: "p1", Reference: "Pallet 1", Length: 120, Width: 100, Height: 80, Quantity: 1}}
	current := MakeSnapshot(currentItems, nil, "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Items) != 0 {
		t.Errorf("expected 0 items after undo, got %d", len(restored.Items))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	snap0 := MakeSnapshot(nil, nil, "empty")
	h.Push(snap0)

	items1 := []model.Item{{ID: "p1", Reference: "Pallet 1", Length: 120, Width: 100, Height: 80, Quantity: 1}}
	snap1 := MakeSnapshot(items1, nil, "one item")
	h.Push(snap1)

	items2 := []model.Item{
		{ID: "p1", Reference: "Pallet 1", Length: 120, Width: 100, Height: 80, Quantity: 1},
		{ID: "p2", Reference: "Crate 2", Length: 200, Width: 100, Height: 90, Quantity: 2},
	}
	current := MakeSnapshot(items2, nil, "two items")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(restored.Items))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Items) != 2 {
		t.Errorf("expected 2 items after redo, got %d", len(redone.Items))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	snap0 := MakeSnapshot(nil, nil, "empty")
	h.Push(snap0)

	items1 := []model.Item{{ID: "p1", Reference: "Pallet 1", Length: 120, Width: 100, Height: 80, Quantity: 1}}
	current := MakeSnapshot(items1, nil, "one item")

	_, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	snap2 := MakeSnapshot(nil, nil, "new action")
	h.Push(snap2)
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, nil, ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Undo(current)
	if ok {
		t.Error("undo on empty history should return false")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Redo(current)
	if ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, nil, "a"))
	h.Push(MakeSnapshot(nil, nil, "b"))

	current := MakeSnapshot(nil, nil, "current")
	h.Undo(current)

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestCopyItemsIsIndependent(t *testing.T) {
	original := []model.Item{{ID: "p1", Reference: "Pallet 1", Length: 120, Width: 100, Height: 80, Quantity: 1}}
	snap := MakeSnapshot(original, nil, "test")

	original[0].Reference = "Modified"

	if snap.Items[0].Reference != "Pallet 1" {
		t.Error("snapshot should be independent of original slice")
	}
}

func TestCopyTrucksIsIndependent(t *testing.T) {
	original := []model.TruckSpecs{
		{ID: "t1", Name: "Box Truck", Length: 600, Width: 240, Height: 250, MaxWeight: 5000},
	}
	snap := MakeSnapshot(nil, original, "test")

	original[0].Name = "Modified"

	if snap.Trucks[0].Name != "Box Truck" {
		t.Error("snapshot trucks should be independent of original")
	}
}

func TestCopyNilSlices(t *testing.T) {
	snap := MakeSnapshot(nil, nil, "nil test")
	if snap.Items != nil {
		t.Error("nil items should stay nil")
	}
	if snap.Trucks != nil {
		t.Error("nil trucks should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(nil, nil, "empty"))
	h.Push(MakeSnapshot(
		[]model.Item{{ID: "p1", Reference: "P1", Length: 10, Width: 10, Height: 10, Quantity: 1}},
		nil, "1 item",
	))
	h.Push(MakeSnapshot(
		[]model.Item{
			{ID: "p1", Reference: "P1", Length: 10, Width: 10, Height: 10, Quantity: 1},
			{ID: "p2", Reference: "P2", Length: 20, Width: 20, Height: 20, Quantity: 1},
		},
		nil, "2 items",
	))

	current := MakeSnapshot(
		[]model.Item{
			{ID: "p1", Reference: "P1", Length: 10, Width: 10, Height: 10, Quantity: 1},
			{ID: "p2", Reference: "P2", Length: 20, Width: 20, Height: 20, Quantity: 1},
			{ID: "p3", Reference: "P3", Length: 30, Width: 30, Height: 30, Quantity: 1},
		},
		nil, "3 items",
	)

	s, ok := h.Undo(current)
	if !ok || len(s.Items) != 2 {
		t.Fatalf("first undo: expected 2 items, got %d", len(s.Items))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Items) != 1 {
		t.Fatalf("second undo: expected 1 item, got %d", len(s.Items))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Items) != 0 {
		t.Fatalf("third undo: expected 0 items, got %d", len(s.Items))
	}

	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Items) != 1 {
		t.Fatalf("first redo: expected 1 item, got %d", len(s.Items))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Items) != 2 {
		t.Fatalf("second redo: expected 2 items, got %d", len(s.Items))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Items) != 3 {
		t.Fatalf("third redo: expected 3 items, got %d", len(s.Items))
	}

	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
