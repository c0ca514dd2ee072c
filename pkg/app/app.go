package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/snapshot"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
)

// UserContext identifies whose snapshot an operation reads and writes.
type UserContext struct {
	UserID string
}

// Service provides high-level operations over one user's catalog and trips.
// It wraps persistence and the stores so the CLI and watchers share logic.
// Every mutation loads the snapshot, applies the change to a copy and saves
// it only when the change succeeded.
type Service struct {
	Persistence store.Persistence
	User        UserContext

	// Sync, Sharing and Directory are nil when no remote is configured.
	Sync      Syncer
	Sharing   Sharer
	Directory Directory

	mu sync.Mutex
}

var errNoPersistence = errors.New("app: no persistence configured")

// ErrNoRemote is returned by remote-backed operations when no remote store
// is configured.
var ErrNoRemote = errors.New("app: no remote configured")

func (s *Service) userID() string {
	if id := strings.TrimSpace(s.User.UserID); id != "" {
		return id
	}
	return "local"
}

// Snapshot loads the current user's snapshot, seeding defaults for anything
// not yet stored.
func (s *Service) Snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	if s.Persistence == nil {
		return snapshot.Snapshot{}, errNoPersistence
	}
	raw, err := s.loadRaw(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	return snapshot.LoadDefault(raw, s.userID())
}

func (s *Service) loadRaw(ctx context.Context) (snapshot.Raw, error) {
	raw := snapshot.Raw{}
	for _, ns := range store.AllNamespaces {
		data, err := s.Persistence.Load(ctx, s.userID(), ns)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("app: load %s: %w", ns, err)
		}
		raw[ns] = data
	}
	return raw, nil
}

// save writes every namespace of snap. When a write fails, the namespaces
// already written are put back to prev so catalog and trips never disagree.
func (s *Service) save(ctx context.Context, prev snapshot.Raw, snap snapshot.Snapshot) error {
	raw, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}
	written := make([]store.Namespace, 0, len(raw))
	for _, ns := range store.AllNamespaces {
		data, ok := raw[ns]
		if !ok {
			continue
		}
		if err := s.Persistence.Save(ctx, s.userID(), ns, data); err != nil {
			err = fmt.Errorf("app: save %s: %w", ns, err)
			return errors.Join(err, s.restore(ctx, prev, written))
		}
		written = append(written, ns)
	}
	return nil
}

func (s *Service) restore(ctx context.Context, prev snapshot.Raw, written []store.Namespace) error {
	var errs []error
	for _, ns := range written {
		var err error
		if data, ok := prev[ns]; ok {
			err = s.Persistence.Save(ctx, s.userID(), ns, data)
		} else {
			err = s.Persistence.Delete(ctx, s.userID(), ns)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("app: restore %s: %w", ns, err))
		}
	}
	return errors.Join(errs...)
}

// update runs fn against a copy of the snapshot and persists the copy when
// fn succeeds. On error the stored snapshot is left as it was.
func (s *Service) update(ctx context.Context, fn func(*snapshot.Snapshot) error) (snapshot.Snapshot, error) {
	if s.Persistence == nil {
		return snapshot.Snapshot{}, errNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.loadRaw(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	current, err := snapshot.LoadDefault(prev, s.userID())
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return current, err
	}
	if err := s.save(ctx, prev, next); err != nil {
		return current, err
	}
	return next, nil
}

// Catalog returns the current catalog.
func (s *Service) Catalog(ctx context.Context) (catalog.State, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return catalog.State{}, err
	}
	return snap.Catalog, nil
}

// EditCatalog applies fn to the catalog and saves the result.
func (s *Service) EditCatalog(ctx context.Context, fn func(*catalog.State) error) (catalog.State, error) {
	snap, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		return fn(&snap.Catalog)
	})
	return snap.Catalog, err
}

// Items lists catalog items matching f.
func (s *Service) Items(ctx context.Context, f catalog.Filter) ([]catalog.Item, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Filter(f), nil
}

// Trips returns every locally known trip, newest first.
func (s *Service) Trips(ctx context.Context) ([]trip.Trip, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Trips, nil
}

// Trip returns one trip by id.
func (s *Service) Trip(ctx context.Context, id string) (trip.Trip, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return trip.Trip{}, err
	}
	i := tripIndex(snap.Trips, id)
	if i < 0 {
		return trip.Trip{}, tripNotFound(id)
	}
	return snap.Trips[i], nil
}

// EditTrip applies fn to the trip with the given id and saves the result.
// fn also receives the catalog, read-only, for operations that copy from it.
func (s *Service) EditTrip(ctx context.Context, id string, fn func(t *trip.Trip, cat *catalog.State) error) (trip.Trip, error) {
	var out trip.Trip
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		i := tripIndex(snap.Trips, id)
		if i < 0 {
			return tripNotFound(id)
		}
		cat := snap.Catalog.Clone()
		if err := fn(&snap.Trips[i], &cat); err != nil {
			return err
		}
		out = snap.Trips[i]
		return nil
	})
	if err != nil {
		return trip.Trip{}, err
	}
	return out, nil
}

// NewTrip creates a trip owned by the current user at the top of the list.
func (s *Service) NewTrip(ctx context.Context, name, date string) (trip.Trip, error) {
	var out trip.Trip
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		t, err := trip.New(s.userID(), name, date)
		if err != nil {
			return err
		}
		snap.Trips = append([]trip.Trip{t}, snap.Trips...)
		out = t
		return nil
	})
	return out, err
}

// DuplicateTrip copies a trip for the current user at the top of the list.
func (s *Service) DuplicateTrip(ctx context.Context, id string) (trip.Trip, error) {
	var out trip.Trip
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		i := tripIndex(snap.Trips, id)
		if i < 0 {
			return tripNotFound(id)
		}
		out = trip.Duplicate(snap.Trips[i], s.userID())
		snap.Trips = append([]trip.Trip{out}, snap.Trips...)
		return nil
	})
	return out, err
}

// DeleteTrip removes a trip from the local list. Unknown ids are a no-op.
func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		i := tripIndex(snap.Trips, id)
		if i < 0 {
			return nil
		}
		snap.Trips = append(snap.Trips[:i], snap.Trips[i+1:]...)
		return nil
	})
	return err
}

// Theme returns the stored theme, empty when unset.
func (s *Service) Theme(ctx context.Context) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return snap.Theme, nil
}

// SetTheme stores the theme name verbatim.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return apperr.Blank("app: theme")
	}
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		snap.Theme = theme
		return nil
	})
	return err
}

// Watch subscribes to persistence change events for the current user.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	events, err := s.Persistence.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan store.Event)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventNamespaceChanged && ev.UserID != s.userID() {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func tripIndex(trips []trip.Trip, id string) int {
	for i, t := range trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func tripNotFound(id string) error {
	return fmt.Errorf("app: trip %q: %w", id, apperr.ErrNotFound)
}
