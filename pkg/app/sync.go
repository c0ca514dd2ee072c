package app

import (
	"context"

	"tableflip.dev/packlist/pkg/reconcile"
	"tableflip.dev/packlist/pkg/snapshot"
	"tableflip.dev/packlist/pkg/trip"
)

// Syncer moves the local catalog and trips to and from the remote store.
type Syncer interface {
	Upload(ctx context.Context, userID string, local reconcile.Local) (reconcile.UploadResult, error)
	Download(ctx context.Context, userID string, local reconcile.Local) (reconcile.Local, error)
}

// Sharer changes who may see a trip.
type Sharer interface {
	ShareTrip(ctx context.Context, t trip.Trip, username string) (trip.Trip, string, error)
	UnshareTrip(ctx context.Context, t trip.Trip, userID string) (trip.Trip, error)
}

// Directory registers usernames that others can share trips with.
type Directory interface {
	RegisterUser(ctx context.Context, id, username string) error
}

// Upload pushes the local snapshot to the remote store.
func (s *Service) Upload(ctx context.Context) (reconcile.UploadResult, error) {
	if s.Sync == nil {
		return reconcile.UploadResult{}, ErrNoRemote
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return reconcile.UploadResult{}, err
	}
	return s.Sync.Upload(ctx, s.userID(), reconcile.Local{Catalog: snap.Catalog, Trips: snap.Trips})
}

// Download merges the remote state into the local snapshot and saves it.
// Nothing is saved when the download fails.
func (s *Service) Download(ctx context.Context) (snapshot.Snapshot, error) {
	if s.Sync == nil {
		return snapshot.Snapshot{}, ErrNoRemote
	}
	return s.update(ctx, func(snap *snapshot.Snapshot) error {
		merged, err := s.Sync.Download(ctx, s.userID(), reconcile.Local{Catalog: snap.Catalog, Trips: snap.Trips})
		if err != nil {
			return err
		}
		snap.Catalog = merged.Catalog
		snap.Trips = merged.Trips
		return nil
	})
}

// Share grants username access to a trip. It returns the updated trip and
// the collaborator's user id.
func (s *Service) Share(ctx context.Context, tripID, username string) (trip.Trip, string, error) {
	if s.Sharing == nil {
		return trip.Trip{}, "", ErrNoRemote
	}
	var userID string
	t, err := s.replaceTrip(ctx, tripID, func(t trip.Trip) (trip.Trip, error) {
		out, id, err := s.Sharing.ShareTrip(ctx, t, username)
		userID = id
		return out, err
	})
	return t, userID, err
}

// Unshare revokes userID's access to a trip.
func (s *Service) Unshare(ctx context.Context, tripID, userID string) (trip.Trip, error) {
	if s.Sharing == nil {
		return trip.Trip{}, ErrNoRemote
	}
	return s.replaceTrip(ctx, tripID, func(t trip.Trip) (trip.Trip, error) {
		return s.Sharing.UnshareTrip(ctx, t, userID)
	})
}

// RegisterUser publishes username for the current user.
func (s *Service) RegisterUser(ctx context.Context, username string) error {
	if s.Directory == nil {
		return ErrNoRemote
	}
	return s.Directory.RegisterUser(ctx, s.userID(), username)
}

func (s *Service) replaceTrip(ctx context.Context, id string, fn func(trip.Trip) (trip.Trip, error)) (trip.Trip, error) {
	var out trip.Trip
	_, err := s.update(ctx, func(snap *snapshot.Snapshot) error {
		i := tripIndex(snap.Trips, id)
		if i < 0 {
			return tripNotFound(id)
		}
		t, err := fn(snap.Trips[i])
		if err != nil {
			return err
		}
		snap.Trips[i] = t
		out = t
		return nil
	})
	return out, err
}
