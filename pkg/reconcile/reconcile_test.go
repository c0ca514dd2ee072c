package reconcile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/trip"
)

type memoryRemote struct {
	docs    map[string]catalog.State
	trips   map[string]trip.Trip
	order   []string
	failOn  string
	err     error
	block   chan struct{}
	entered chan struct{}
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{
		docs:  map[string]catalog.State{},
		trips: map[string]trip.Trip{},
	}
}

func (m *memoryRemote) fail(op string) error {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	if m.failOn == op {
		return m.err
	}
	return nil
}

func (m *memoryRemote) GetUserDocument(_ context.Context, userID string) (catalog.State, bool, error) {
	if err := m.fail("get"); err != nil {
		return catalog.State{}, false, err
	}
	doc, ok := m.docs[userID]
	return doc.Clone(), ok, nil
}

func (m *memoryRemote) PutUserDocument(_ context.Context, userID string, cat catalog.State) error {
	if err := m.fail("putdoc"); err != nil {
		return err
	}
	m.docs[userID] = cat.Clone()
	return nil
}

func (m *memoryRemote) QueryTripsByOwner(_ context.Context, userID string) ([]trip.Trip, error) {
	if err := m.fail("owned"); err != nil {
		return nil, err
	}
	var out []trip.Trip
	for _, id := range m.order {
		if t := m.trips[id]; t.OwnerUserID == userID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (m *memoryRemote) QueryTripsSharedWith(_ context.Context, userID string) ([]trip.Trip, error) {
	if err := m.fail("shared"); err != nil {
		return nil, err
	}
	var out []trip.Trip
	for _, id := range m.order {
		t := m.trips[id]
		for _, u := range t.SharedWith {
			if u == userID {
				out = append(out, t.Clone())
				break
			}
		}
	}
	return out, nil
}

func (m *memoryRemote) PutTrip(_ context.Context, t trip.Trip) error {
	if err := m.fail("puttrip"); err != nil {
		return err
	}
	if _, ok := m.trips[t.ID]; !ok {
		m.order = append(m.order, t.ID)
	}
	m.trips[t.ID] = t.Clone()
	return nil
}

func mkTrip(id, owner, name string, shared ...string) trip.Trip {
	return trip.Trip{
		ID:          id,
		OwnerUserID: owner,
		Name:        name,
		Status:      trip.StatusPlanning,
		Groups:      []trip.Group{{ID: "g", Name: "Main"}},
		Items:       []trip.Item{},
		SharedWith:  shared,
	}
}

func ids(trips []trip.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.ID)
	}
	return out
}

func catalogWith(items ...string) catalog.State {
	s := catalog.State{}
	for _, id := range items {
		s.Items = append(s.Items, catalog.Item{ID: id, Name: id})
	}
	return s
}

func TestDownloadMergesLocalAndRemote(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	_ = remote.PutTrip(ctx, mkTrip("T2", "u", "T2"))
	_ = remote.PutTrip(ctx, mkTrip("T3", "v", "T3", "u"))
	e := New(remote, nil)

	got, err := e.Download(ctx, "u", Local{Trips: []trip.Trip{mkTrip("T1", "u", "T1")}})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if want := []string{"T2", "T3", "T1"}; !reflect.DeepEqual(ids(got.Trips), want) {
		t.Fatalf("expected %v, got %v", want, ids(got.Trips))
	}
}

func TestDownloadCatalogReplacesLocal(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	remote.docs["u"] = catalogWith("remote")
	e := New(remote, nil)

	got, err := e.Download(ctx, "u", Local{Catalog: catalogWith("local-1", "local-2")})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(got.Catalog.Items) != 1 || got.Catalog.Items[0].ID != "remote" {
		t.Fatalf("expected remote catalog, got %+v", got.Catalog.Items)
	}

	got, err = e.Download(ctx, "other", Local{Catalog: catalogWith("local-1")})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(got.Catalog.Items) != 1 || got.Catalog.Items[0].ID != "local-1" {
		t.Fatalf("expected local catalog kept without remote document, got %+v", got.Catalog.Items)
	}
}

func TestMergeRemoteWinsPerTrip(t *testing.T) {
	remote := []trip.Trip{mkTrip("T1", "u", "remote name")}
	local := []trip.Trip{mkTrip("T1", "u", "local name"), mkTrip("T9", "u", "only local")}

	got := Merge(remote, nil, local, "u")
	if len(got) != 2 || got[0].Name != "remote name" || got[1].ID != "T9" {
		t.Fatalf("unexpected merge %+v", got)
	}
}

func TestMergeOwnedWinsOverShared(t *testing.T) {
	owned := []trip.Trip{mkTrip("T1", "u", "owned copy")}
	shared := []trip.Trip{mkTrip("T1", "u", "shared copy", "u"), mkTrip("T2", "v", "T2", "u")}

	got := Merge(owned, shared, nil, "u")
	if want := []string{"T1", "T2"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	if got[0].Name != "owned copy" {
		t.Fatalf("expected owned copy, got %q", got[0].Name)
	}
}

func TestMergeDropsForeignLocalTrips(t *testing.T) {
	local := []trip.Trip{mkTrip("X", "v", "foreign"), mkTrip("Y", "v", "foreign shared", "u")}
	if got := Merge(nil, nil, local, "u"); len(got) != 0 {
		t.Fatalf("expected foreign local trips dropped, got %v", ids(got))
	}
}

func TestMergeIdempotent(t *testing.T) {
	owned := []trip.Trip{mkTrip("T2", "u", "T2"), mkTrip("T4", "u", "T4")}
	shared := []trip.Trip{mkTrip("T3", "v", "T3", "u"), mkTrip("T2", "u", "dup", "u")}
	local := []trip.Trip{
		mkTrip("T1", "u", "T1"),
		mkTrip("T2", "u", "stale"),
		mkTrip("T5", "w", "foreign"),
		mkTrip("T6", "u", "T6"),
	}

	once := Merge(owned, shared, local, "u")
	twice := Merge(owned, shared, once, "u")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent:\n%v\n%v", ids(once), ids(twice))
	}
	if want := []string{"T2", "T4", "T3", "T1", "T6"}; !reflect.DeepEqual(ids(once), want) {
		t.Fatalf("expected %v, got %v", want, ids(once))
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	local := []trip.Trip{mkTrip("T1", "u", "T1")}
	got := Merge(nil, nil, local, "u")
	got[0].Groups[0].Name = "changed"
	if local[0].Groups[0].Name != "Main" {
		t.Fatal("merged trip aliases local trip")
	}
}

func TestUploadPushesVisibleTrips(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	e := New(remote, nil)

	local := Local{
		Catalog: catalogWith("a"),
		Trips: []trip.Trip{
			mkTrip("mine", "u", "mine"),
			mkTrip("collab", "v", "collab", "u"),
			mkTrip("foreign", "v", "foreign"),
		},
	}
	res, err := e.Upload(ctx, "u", local)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Trips != 2 || res.Skipped != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := remote.trips["foreign"]; ok {
		t.Fatal("foreign trip pushed")
	}
	if doc := remote.docs["u"]; len(doc.Items) != 1 {
		t.Fatalf("catalog not uploaded: %+v", doc)
	}
}

func TestUploadEmptyOverwriteRejected(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	remote.docs["u"] = catalogWith("a", "b")
	e := New(remote, nil)

	_, err := e.Upload(ctx, "u", Local{Trips: []trip.Trip{mkTrip("T1", "u", "T1")}})
	if !errors.Is(err, apperr.ErrEmptyOverwriteRejected) {
		t.Fatalf("expected empty overwrite rejected, got %v", err)
	}
	if errors.Is(err, apperr.ErrSyncFailure) {
		t.Fatal("guard must not be reported as a sync failure")
	}
	if len(remote.docs["u"].Items) != 2 || len(remote.trips) != 0 {
		t.Fatal("remote state changed by refused upload")
	}

	// No remote document yet: an empty catalog may be uploaded.
	if _, err := e.Upload(ctx, "fresh", Local{}); err != nil {
		t.Fatalf("upload to fresh user: %v", err)
	}
}

func TestSyncFailureKeepsCause(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection reset")
	for _, op := range []string{"get", "owned", "shared"} {
		remote := newMemoryRemote()
		remote.failOn, remote.err = op, cause
		e := New(remote, nil)

		local := Local{Catalog: catalogWith("a"), Trips: []trip.Trip{mkTrip("T1", "u", "T1")}}
		got, err := e.Download(ctx, "u", local)
		if !errors.Is(err, apperr.ErrSyncFailure) || !errors.Is(err, cause) {
			t.Fatalf("%s: expected sync failure wrapping cause, got %v", op, err)
		}
		if !reflect.DeepEqual(got, local) {
			t.Fatalf("%s: local changed on failure", op)
		}
		if e.Busy() {
			t.Fatalf("%s: busy flag left set", op)
		}
	}

	remote := newMemoryRemote()
	remote.failOn, remote.err = "puttrip", cause
	_, err := New(remote, nil).Upload(ctx, "u", Local{Catalog: catalogWith("a"), Trips: []trip.Trip{mkTrip("T1", "u", "T1")}})
	var syncErr *apperr.SyncError
	if !errors.As(err, &syncErr) || syncErr.Op != "upload" || !errors.Is(err, cause) {
		t.Fatalf("expected upload sync error, got %v", err)
	}
}

func TestSingleSyncInFlight(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	remote.block = make(chan struct{})
	remote.entered = make(chan struct{}, 8)
	e := New(remote, nil)

	done := make(chan error, 1)
	go func() {
		_, err := e.Download(ctx, "u", Local{})
		done <- err
	}()
	<-remote.entered

	if _, err := e.Upload(ctx, "u", Local{Catalog: catalogWith("a")}); !errors.Is(err, apperr.ErrSyncInProgress) {
		t.Fatalf("expected sync in progress, got %v", err)
	}
	if !e.Busy() {
		t.Fatal("expected busy while download runs")
	}

	close(remote.block)
	if err := <-done; err != nil {
		t.Fatalf("download: %v", err)
	}
	if e.Busy() {
		t.Fatal("busy flag not released")
	}
}
