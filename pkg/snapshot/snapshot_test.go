package snapshot

import (
	"reflect"
	"testing"

	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/seed"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
)

func TestLoadEmptySeeds(t *testing.T) {
	s, err := LoadDefault(Raw{}, "u")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Version != CurrentVersion || s.UserID != "u" {
		t.Fatalf("unexpected header %+v", s)
	}
	if len(s.Catalog.Items) != len(seed.Items()) || len(s.Catalog.Categories) != len(seed.Categories()) {
		t.Fatalf("expected seeded catalog, got %d items", len(s.Catalog.Items))
	}
	if len(s.Trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(s.Trips))
	}
}

func TestLoadLegacyItemList(t *testing.T) {
	raw := Raw{
		store.NamespaceCatalog: []byte(`[
			{"id":"a","name":"ST-Link","category":"燒錄/工具 (Tools)"},
			{"id":"b","name":"Mystery","category":"Gadgets","folderId":"gone","groupId":"gone"}
		]`),
		store.NamespaceFolders: []byte(`[{"id":"folder_default","name":"Biz"},{"id":"f2","name":"Empty"}]`),
	}
	s, err := Load(raw, "u", catalog.State{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cat := s.Catalog

	a, _ := cat.Item("a")
	if a.FolderID != catalog.DefaultFolderID || a.GroupID != catalog.DefaultGroupID {
		t.Fatalf("expected default placement, got %+v", a)
	}
	if a.Category != seed.CategoryTools {
		t.Fatalf("expected legacy label mapped, got %q", a.Category)
	}
	if _, ok := cat.Category(seed.CategoryTools); !ok {
		t.Fatal("seeded category not restored for mapped label")
	}

	b, _ := cat.Item("b")
	if b.FolderID != catalog.DefaultFolderID || b.GroupID != catalog.DefaultGroupID {
		t.Fatalf("expected orphan item re-homed, got %+v", b)
	}
	if b.Category != "Gadgets" || cat.CategoryLabel(b.Category) != catalog.UnknownCategoryLabel {
		t.Fatalf("expected dangling category kept, got %q", b.Category)
	}

	f, _ := cat.Folder(catalog.DefaultFolderID)
	if !f.IsSystem {
		t.Fatal("default folder not flagged system")
	}
	groups := cat.GroupsIn("f2")
	if len(groups) != 1 || !groups[0].IsSystem {
		t.Fatalf("expected synthesised system group for f2, got %+v", groups)
	}
}

func TestLoadLegacyTrips(t *testing.T) {
	raw := Raw{
		store.NamespaceTrips: []byte(`[
			{"id":"t1","userId":"alice","name":"Old","date":"2023-01-01",
			 "items":[{"id":"i1","name":"Cable","qty":0,"checked":true},
			          {"id":"i2","name":"Hub","qty":"3","tripGroupId":"nope","checked":true}],
			 "sharedWith":["bob","alice","bob",""]},
			{"id":"t2","name":"NoOwner","status":"active",
			 "groups":[{"id":"g1","name":"bag"}],
			 "items":[{"id":"i3","name":"x","qty":2,"tripGroupId":"g1"}]}
		]`),
	}
	s, err := Load(raw, "u", seed.Catalog())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(s.Trips))
	}

	t1 := s.Trips[0]
	if t1.OwnerUserID != "alice" {
		t.Fatalf("expected legacy userId as owner, got %q", t1.OwnerUserID)
	}
	if len(t1.Groups) != 1 || t1.Groups[0].ID != trip.DefaultGroupID {
		t.Fatalf("expected default group, got %+v", t1.Groups)
	}
	for _, item := range t1.Items {
		if item.TripGroupID != trip.DefaultGroupID {
			t.Fatalf("item %s not assigned to default group", item.ID)
		}
	}
	if t1.Items[0].Qty != 1 || t1.Items[1].Qty != 3 {
		t.Fatalf("unexpected quantities %+v", t1.Items)
	}
	if t1.Status != trip.StatusCompleted {
		t.Fatalf("expected derived completed, got %q", t1.Status)
	}
	if len(t1.SharedWith) != 1 || t1.SharedWith[0] != "bob" {
		t.Fatalf("unexpected sharedWith %v", t1.SharedWith)
	}

	t2 := s.Trips[1]
	if t2.OwnerUserID != "u" || t2.Status != trip.StatusActive {
		t.Fatalf("unexpected trip %+v", t2)
	}
	if t2.Items[0].TripGroupID != "g1" || t2.Items[0].Qty != 2 {
		t.Fatalf("valid item changed: %+v", t2.Items[0])
	}
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	in, err := LoadDefault(Raw{}, "u")
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := trip.New("u", "Expo", "2024-06-01")
	_, _ = tr.AddItem(in.Catalog.Items[0], "")
	g, _ := tr.AddGroup("bag 2")
	_, _ = tr.AddItem(in.Catalog.Items[1], g.ID)
	_, _ = tr.AddItem(in.Catalog.Items[2], "")
	in.Trips = []trip.Trip{tr}
	in.Theme = "dark"

	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := LoadDefault(raw, "u")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Theme != "dark" {
		t.Fatalf("theme lost: %q", out.Theme)
	}
	if len(out.Catalog.Items) != len(in.Catalog.Items) || len(out.Catalog.Folders) != len(in.Catalog.Folders) {
		t.Fatal("catalog changed across round trip")
	}
	got := out.Trips[0]
	if got.ID != tr.ID || got.Status != tr.Status || len(got.Items) != 3 {
		t.Fatalf("trip changed across round trip: %+v", got)
	}
	for i := range tr.Items {
		if got.Items[i] != tr.Items[i] {
			t.Fatalf("item order or content changed at %d: %+v vs %+v", i, got.Items[i], tr.Items[i])
		}
	}
}

func TestLoadRejectsCorruptDocuments(t *testing.T) {
	for _, ns := range []store.Namespace{store.NamespaceCatalog, store.NamespaceTrips, store.NamespaceGroups} {
		raw := Raw{ns: []byte(`{not json`)}
		if _, err := LoadDefault(raw, "u"); err == nil {
			t.Errorf("%s: expected decode error", ns)
		}
	}
}

func TestLoadFillsMissingIDsStably(t *testing.T) {
	raw := Raw{
		store.NamespaceFolders: []byte(`[{"id":"folder_default","name":"Biz"},{"id":"f2","name":"Empty"}]`),
		store.NamespaceTrips: []byte(`[
			{"name":"Old","date":"2023-01-01","items":[{"name":"Cable"},{"name":"Cable"}]},
			{"name":"Old","date":"2023-01-01"}
		]`),
	}
	first, err := LoadDefault(raw, "u")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := LoadDefault(raw, "u")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same stored documents loaded differently:\n%+v\n%+v", first, second)
	}

	groups := first.Catalog.GroupsIn("f2")
	if len(groups) != 1 || groups[0].ID == "" {
		t.Fatalf("expected one synthesised group for f2, got %+v", groups)
	}
	t1, t2 := first.Trips[0], first.Trips[1]
	if t1.ID == "" || t1.ID == t2.ID {
		t.Fatalf("expected distinct trip ids, got %q and %q", t1.ID, t2.ID)
	}
	if len(t1.Items) != 2 || t1.Items[0].ID == "" || t1.Items[0].ID == t1.Items[1].ID {
		t.Fatalf("expected distinct item ids, got %+v", t1.Items)
	}
}
