// Package reconcile pushes the local catalog and trips to the remote store
// and merges remote state back into the local snapshot.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/trip"
)

// Remote is the subset of the remote store sync needs.
type Remote interface {
	GetUserDocument(ctx context.Context, userID string) (catalog.State, bool, error)
	PutUserDocument(ctx context.Context, userID string, cat catalog.State) error
	QueryTripsByOwner(ctx context.Context, userID string) ([]trip.Trip, error)
	QueryTripsSharedWith(ctx context.Context, userID string) ([]trip.Trip, error)
	PutTrip(ctx context.Context, t trip.Trip) error
}

// Local is the part of a user's snapshot that takes part in sync.
type Local struct {
	Catalog catalog.State
	Trips   []trip.Trip
}

// UploadResult reports what an upload pushed.
type UploadResult struct {
	Trips   int `json:"trips"`
	Skipped int `json:"skipped"`
}

// Engine runs one sync at a time against a Remote.
type Engine struct {
	remote Remote
	log    *slog.Logger
	busy   atomic.Bool
}

// New returns an Engine. A nil logger discards diagnostics.
func New(remote Remote, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{remote: remote, log: log}
}

// Busy reports whether a sync is in flight.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

func (e *Engine) acquire() error {
	if !e.busy.CompareAndSwap(false, true) {
		return apperr.ErrSyncInProgress
	}
	return nil
}

func (e *Engine) release() {
	e.busy.Store(false)
}

// Upload overwrites the remote catalog document for userID and pushes every
// trip the user owns or collaborates on. It is refused before anything is
// written when the local catalog has no items but the remote one does.
func (e *Engine) Upload(ctx context.Context, userID string, local Local) (UploadResult, error) {
	if err := e.acquire(); err != nil {
		return UploadResult{}, err
	}
	defer e.release()

	var res UploadResult
	if len(local.Catalog.Items) == 0 {
		remoteCat, ok, err := e.remote.GetUserDocument(ctx, userID)
		if err != nil {
			return res, apperr.Sync("upload", err)
		}
		if ok && len(remoteCat.Items) > 0 {
			e.log.Debug("upload refused", "user", userID, "remoteItems", len(remoteCat.Items))
			return res, fmt.Errorf("reconcile: local catalog is empty, remote has %d items: %w",
				len(remoteCat.Items), apperr.ErrEmptyOverwriteRejected)
		}
	}

	if err := e.remote.PutUserDocument(ctx, userID, local.Catalog); err != nil {
		return res, apperr.Sync("upload", err)
	}
	e.log.Debug("catalog uploaded", "user", userID, "items", len(local.Catalog.Items))

	for _, t := range local.Trips {
		if !Visible(t, userID) {
			res.Skipped++
			continue
		}
		if err := e.remote.PutTrip(ctx, t); err != nil {
			return res, apperr.Sync("upload", err)
		}
		res.Trips++
	}
	e.log.Debug("trips uploaded", "user", userID, "pushed", res.Trips, "skipped", res.Skipped)
	return res, nil
}

// Download fetches the remote catalog and trips for userID and returns the
// new local state. A remote catalog replaces the local one outright; trips
// are merged with Merge. On failure local is returned unchanged.
func (e *Engine) Download(ctx context.Context, userID string, local Local) (Local, error) {
	if err := e.acquire(); err != nil {
		return local, err
	}
	defer e.release()

	remoteCat, ok, err := e.remote.GetUserDocument(ctx, userID)
	if err != nil {
		return local, apperr.Sync("download", err)
	}
	owned, err := e.remote.QueryTripsByOwner(ctx, userID)
	if err != nil {
		return local, apperr.Sync("download", err)
	}
	shared, err := e.remote.QueryTripsSharedWith(ctx, userID)
	if err != nil {
		return local, apperr.Sync("download", err)
	}

	out := Local{Catalog: local.Catalog.Clone()}
	if ok {
		out.Catalog = remoteCat
	}
	out.Trips = Merge(owned, shared, local.Trips, userID)
	e.log.Debug("downloaded",
		"user", userID,
		"catalogReplaced", ok,
		"owned", len(owned),
		"shared", len(shared),
		"merged", len(out.Trips))
	return out, nil
}

// Visible reports whether userID owns or collaborates on t.
func Visible(t trip.Trip, userID string) bool {
	if t.OwnerUserID == userID {
		return true
	}
	for _, id := range t.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// Merge builds the trip list after a download. The remote trips come first,
// owned before shared and de-duplicated by id with the owned copy winning.
// Local trips owned by userID whose id the remote does not know are
// appended in their local order. Anything else local is dropped.
func Merge(owned, shared, local []trip.Trip, userID string) []trip.Trip {
	out := make([]trip.Trip, 0, len(owned)+len(shared)+len(local))
	seen := make(map[string]struct{}, len(owned)+len(shared))
	for _, list := range [][]trip.Trip{owned, shared} {
		for _, t := range list {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t.Clone())
		}
	}
	for _, t := range local {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		if t.OwnerUserID != userID {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t.Clone())
	}
	return out
}
