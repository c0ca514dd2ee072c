package trips

import (
	"errors"
	"testing"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/trip"
)

func TestEditsReportUnknownIDs(t *testing.T) {
	tr, err := trip.New("u", "Berlin", "2024-06-01")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cat := &catalog.State{Items: []catalog.Item{{ID: "a", Name: "Cable"}}}

	if err := AddItem("missing", "")(&tr, cat); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("add: expected not found, got %v", err)
	}
	if err := Toggle("missing")(&tr, cat); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("toggle: expected not found, got %v", err)
	}
	if err := SetField("missing", trip.FieldQty, "2")(&tr, cat); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("set: expected not found, got %v", err)
	}

	for name, edit := range map[string]func(*trip.Trip, *catalog.State) error{
		"remove":       RemoveItem("missing"),
		"move item":    MoveItem("missing", tr.Groups[0].ID),
		"move group":   Reorder("missing", 0, 0),
		"rename group": RenameGroup("missing", "Bag"),
		"remove group": RemoveGroup("missing"),
	} {
		if err := edit(&tr, cat); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("%s: expected not found, got %v", name, err)
		}
	}

	if err := AddItem("a", "")(&tr, cat); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := tr.Items[0].ID
	if err := SetField(id, trip.FieldQty, "-4")(&tr, cat); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tr.Items[0].Qty != 1 {
		t.Fatalf("expected qty coerced to 1, got %d", tr.Items[0].Qty)
	}
	if err := Toggle(id)(&tr, cat); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if tr.Status != trip.StatusCompleted {
		t.Fatalf("expected completed, got %s", tr.Status)
	}
}

func TestGroupEditsOnKnownGroup(t *testing.T) {
	tr, err := trip.New("u", "Berlin", "2024-06-01")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := AddGroup("Spare")(&tr, &catalog.State{}); err != nil {
		t.Fatalf("add group: %v", err)
	}
	spare := tr.Groups[1].ID
	if err := RenameGroup(spare, "Backup")(&tr, &catalog.State{}); err != nil {
		t.Fatalf("rename group: %v", err)
	}
	if g, _ := tr.Group(spare); g.Name != "Backup" {
		t.Fatalf("expected renamed group, got %+v", g)
	}
	if err := RemoveGroup(spare)(&tr, &catalog.State{}); err != nil {
		t.Fatalf("remove group: %v", err)
	}
	if len(tr.Groups) != 1 {
		t.Fatalf("expected one group left, got %+v", tr.Groups)
	}
}
