package trip

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
)

func fixedIDs(t *testing.T) {
	t.Helper()
	counter := 0
	oldID, oldNow := NewID, Now
	NewID = func() string {
		counter++
		return fmt.Sprintf("t-%d", counter)
	}
	Now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		NewID = oldID
		Now = oldNow
	})
}

func newTrip(t *testing.T) Trip {
	t.Helper()
	tr, err := New("u", "Expo", "2024-06-01")
	if err != nil {
		t.Fatalf("new trip: %v", err)
	}
	return tr
}

func TestNewTrip(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	if tr.Status != StatusPlanning {
		t.Fatalf("expected planning, got %q", tr.Status)
	}
	if len(tr.Groups) != 1 || len(tr.Items) != 0 {
		t.Fatalf("unexpected shape %+v", tr)
	}

	dated, _ := New("u", "x", "")
	if dated.Date != "2024-05-01" {
		t.Fatalf("expected today's date, got %q", dated.Date)
	}

	if _, err := New("u", "  ", ""); !errors.Is(err, apperr.ErrValidationNoop) {
		t.Fatalf("expected validation noop, got %v", err)
	}
}

func TestAddItemSnapshotsCatalog(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	inv := catalog.Item{ID: "inv", Name: "Cable", Category: "cables", DefaultVersion: "v1"}

	item, err := tr.AddItem(inv, "")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Qty != 1 || item.Checked || item.Version != "v1" || item.TripGroupID != tr.Groups[0].ID {
		t.Fatalf("unexpected snapshot %+v", item)
	}

	inv.Name = "Renamed"
	if got, _ := tr.Item(item.ID); got.Name != "Cable" {
		t.Fatal("trip item aliases catalog item")
	}

	if _, err := tr.AddItem(inv, "missing"); !errors.Is(err, apperr.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestToggleDerivesStatus(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	x, _ := tr.AddItem(catalog.Item{ID: "x", Name: "x"}, "")
	y, _ := tr.AddItem(catalog.Item{ID: "y", Name: "y"}, "")
	_ = tr.UpdateItem(x.ID, FieldQty, "2")

	if err := tr.Toggle(x.ID); err != nil {
		t.Fatal(err)
	}
	if tr.Status != StatusActive {
		t.Fatalf("expected active, got %q", tr.Status)
	}
	if err := tr.Toggle(y.ID); err != nil {
		t.Fatal(err)
	}
	if tr.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", tr.Status)
	}
	if err := tr.Toggle(y.ID); err != nil {
		t.Fatal(err)
	}
	if tr.Status != StatusActive {
		t.Fatalf("expected active after untoggle, got %q", tr.Status)
	}
}

func TestUpdateItemQtyCoercion(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	item, _ := tr.AddItem(catalog.Item{ID: "x", Name: "x"}, "")

	tests := map[string]int{
		"3":   3,
		"0":   1,
		"-4":  1,
		"abc": 1,
		"":    1,
		" 7 ": 7,
	}
	for in, want := range tests {
		if err := tr.UpdateItem(item.ID, FieldQty, in); err != nil {
			t.Fatalf("update qty %q: %v", in, err)
		}
		if got, _ := tr.Item(item.ID); got.Qty != want {
			t.Errorf("qty %q: expected %d, got %d", in, want, got.Qty)
		}
	}

	if err := tr.UpdateItem(item.ID, FieldName, " "); !errors.Is(err, apperr.ErrValidationNoop) {
		t.Fatalf("expected validation noop, got %v", err)
	}
	if err := tr.UpdateItem(item.ID, Field("colour"), "red"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestReorderWithinGroup(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	g1 := tr.Groups[0].ID
	g2, _ := tr.AddGroup("bag 2")
	for _, n := range []string{"a", "b"} {
		_, _ = tr.AddItem(catalog.Item{ID: n, Name: n}, g1)
	}
	_, _ = tr.AddItem(catalog.Item{ID: "z", Name: "z"}, g2.ID)
	_, _ = tr.AddItem(catalog.Item{ID: "c", Name: "c"}, g1)

	if err := tr.Reorder(g1, 2, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	var names []string
	for _, i := range tr.Items {
		names = append(names, i.Name)
	}
	if got := strings.Join(names, ","); got != "c,a,z,b" {
		t.Fatalf("unexpected storage order %s", got)
	}

	if err := tr.Reorder(g1, 0, 3); !errors.Is(err, apperr.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestMoveItem(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	g2, _ := tr.AddGroup("bag 2")
	a, _ := tr.AddItem(catalog.Item{ID: "a", Name: "a"}, "")
	_, _ = tr.AddItem(catalog.Item{ID: "z", Name: "z"}, g2.ID)
	_, _ = tr.AddItem(catalog.Item{ID: "b", Name: "b"}, "")

	if err := tr.MoveItem(a.ID, g2.ID); err != nil {
		t.Fatalf("move: %v", err)
	}
	in := tr.ItemsIn(g2.ID)
	if len(in) != 2 || in[1].ID != a.ID {
		t.Fatalf("expected a at end of bag 2, got %+v", in)
	}
}

func TestDeleteLastGroupRejected(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	_, _ = tr.AddItem(catalog.Item{ID: "a", Name: "a"}, "")
	before := tr.Clone()

	err := tr.DeleteGroup(tr.Groups[0].ID)
	if !errors.Is(err, apperr.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	if len(tr.Groups) != 1 || len(tr.Items) != len(before.Items) || tr.Status != before.Status {
		t.Fatal("trip changed after rejected delete")
	}
}

func TestDeleteGroupCascadesItems(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	g2, _ := tr.AddGroup("bag 2")
	_, _ = tr.AddItem(catalog.Item{ID: "a", Name: "a"}, "")
	_, _ = tr.AddItem(catalog.Item{ID: "z", Name: "z"}, g2.ID)

	if err := tr.DeleteGroup(g2.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if len(tr.Items) != 1 || tr.Items[0].Name != "a" {
		t.Fatalf("expected only a to remain, got %+v", tr.Items)
	}
}

func TestAddBundle(t *testing.T) {
	fixedIDs(t)
	cat := catalog.State{
		Items: []catalog.Item{{ID: "cable", Name: "Cable", Category: "cables", DefaultVersion: "usb-c"}},
		Bundles: []catalog.Bundle{{ID: "kit", Name: "kit", Items: []catalog.BundleLine{
			{InventoryID: "cable", Qty: 3},
			{InventoryID: "gone", Qty: 1},
		}}},
	}
	tr := newTrip(t)
	added, err := tr.AddBundle(&cat, "kit", "")
	if err != nil {
		t.Fatalf("add bundle: %v", err)
	}
	if len(added) != 1 || added[0].Qty != 3 || added[0].Version != "usb-c" {
		t.Fatalf("unexpected expansion %+v", added)
	}
	if _, err := tr.AddBundle(&cat, "nope", ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDuplicate(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	g2, _ := tr.AddGroup("bag 2")
	a, _ := tr.AddItem(catalog.Item{ID: "a", Name: "a"}, g2.ID)
	_ = tr.Toggle(a.ID)
	tr.SharedWith = []string{"friend"}

	dup := Duplicate(tr, "other")
	if dup.ID == tr.ID || dup.Status != StatusPlanning || dup.Date != "2024-05-01" {
		t.Fatalf("unexpected duplicate %+v", dup)
	}
	if dup.OwnerUserID != "other" || len(dup.SharedWith) != 0 {
		t.Fatalf("unexpected ownership %+v", dup)
	}
	if len(dup.Items) != 1 || dup.Items[0].Checked || dup.Items[0].ID == a.ID {
		t.Fatalf("unexpected items %+v", dup.Items)
	}
	if dup.Items[0].TripGroupID != dup.Groups[1].ID || dup.Groups[1].ID == g2.ID {
		t.Fatalf("group ids not remapped: %+v", dup)
	}
	if !tr.Items[0].Checked {
		t.Fatal("source trip modified")
	}
}

func TestProgress(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	if p := tr.Progress(); p != (Progress{}) {
		t.Fatalf("expected empty progress, got %+v", p)
	}
	for _, n := range []string{"a", "b", "c"} {
		_, _ = tr.AddItem(catalog.Item{ID: n, Name: n}, "")
	}
	_ = tr.Toggle(tr.Items[0].ID)
	if p := tr.Progress(); p != (Progress{Checked: 1, Total: 3, Percent: 33}) {
		t.Fatalf("unexpected progress %+v", p)
	}
	_ = tr.Toggle(tr.Items[1].ID)
	if p := tr.Progress(); p.Percent != 67 {
		t.Fatalf("expected 67, got %d", p.Percent)
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := map[string]struct {
		items []Item
		want  Status
	}{
		"empty": {nil, StatusPlanning},
		"none":  {[]Item{{Checked: false}}, StatusPlanning},
		"some":  {[]Item{{Checked: true}, {Checked: false}}, StatusActive},
		"all":   {[]Item{{Checked: true}, {Checked: true}}, StatusCompleted},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := DeriveStatus(Trip{Items: tc.items}); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tr := Trip{Items: []Item{
		{Name: "Cable", Category: "cables", Qty: 2, Version: "v1"},
		{Name: "Scope", Category: "tools", Qty: 1},
		{Name: "Cable", Category: "cables", Qty: 3, Version: ""},
	}}
	s := Summarize(tr)
	if len(s.Categories) != 2 || s.Categories[0].Category != "cables" {
		t.Fatalf("unexpected categories %+v", s.Categories)
	}
	line := s.Categories[0].Lines[0]
	if line.Name != "Cable" || line.TotalQty != 5 {
		t.Fatalf("unexpected line %+v", line)
	}
	want := []SummaryDetail{{Version: "v1", Qty: 2}, {Version: NoNote, Qty: 3}}
	if len(line.Details) != len(want) {
		t.Fatalf("expected %+v, got %+v", want, line.Details)
	}
	for i := range want {
		if line.Details[i] != want[i] {
			t.Fatalf("expected %+v, got %+v", want, line.Details)
		}
	}
}

func TestExportTextDeterministic(t *testing.T) {
	fixedIDs(t)
	tr := newTrip(t)
	a, _ := tr.AddItem(catalog.Item{ID: "a", Name: "Cable", Category: "cables", DefaultVersion: "v1"}, "")
	_, _ = tr.AddItem(catalog.Item{ID: "b", Name: "Scope", Category: "tools"}, "")
	_ = tr.Toggle(a.ID)

	label := func(id string) string { return strings.ToUpper(id) }
	first := ExportText(tr, label)
	if first != ExportText(tr.Clone(), label) {
		t.Fatal("export is not deterministic")
	}
	for _, want := range []string{
		"# Expo\n",
		"Progress: 1/2 (50%)\n",
		"## Main\n",
		"- [x] Cable x1 (v1)\n",
		"- [ ] Scope x1\n",
		"### CABLES\n",
		"- Cable: 1 [v1 x1]\n",
		"- Scope: 1 [(no note) x1]\n",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("export missing %q:\n%s", want, first)
		}
	}
}
