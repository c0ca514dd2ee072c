// Package sharing grants and revokes collaborator access to trips.
package sharing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/trip"
)

// Identity resolves usernames to user ids.
type Identity interface {
	ResolveUserIDByUsername(ctx context.Context, username string) (string, error)
}

// Remote updates the collaborator list of a stored trip.
type Remote interface {
	UpdateTripSharedWith(ctx context.Context, tripID string, change trip.ShareChange) error
}

// Ledger keeps the remote and local collaborator lists of a trip in step.
// Each call is a single remote read-modify-write; concurrent changes to the
// same trip are last-writer-wins.
type Ledger struct {
	identity Identity
	remote   Remote
	log      *slog.Logger
}

// New returns a Ledger. A nil logger discards diagnostics.
func New(identity Identity, remote Remote, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ledger{identity: identity, remote: remote, log: log}
}

// ShareTrip resolves username and adds the user to t's collaborators,
// remotely and then on the returned copy. Sharing with someone who already
// has access changes nothing.
func (l *Ledger) ShareTrip(ctx context.Context, t trip.Trip, username string) (trip.Trip, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return t, "", apperr.Blank("sharing: username")
	}
	userID, err := l.identity.ResolveUserIDByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return t, "", fmt.Errorf("sharing: %q: %w", username, apperr.ErrUserNotFound)
		}
		return t, "", apperr.Sync("share", err)
	}

	change := trip.ShareChange{Add: userID}
	out := t.Clone()
	if err := change.Apply(&out); err != nil {
		return t, "", err
	}
	if err := l.remote.UpdateTripSharedWith(ctx, t.ID, change); err != nil {
		return t, "", remoteErr("share", err)
	}
	l.log.Debug("trip shared", "trip", t.ID, "user", userID, "username", username)
	return out, userID, nil
}

// UnshareTrip removes userID from t's collaborators. Removing someone
// without access changes nothing.
func (l *Ledger) UnshareTrip(ctx context.Context, t trip.Trip, userID string) (trip.Trip, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return t, apperr.Blank("sharing: user id")
	}
	change := trip.ShareChange{Remove: userID}
	out := t.Clone()
	if err := change.Apply(&out); err != nil {
		return t, err
	}
	if err := l.remote.UpdateTripSharedWith(ctx, t.ID, change); err != nil {
		return t, remoteErr("unshare", err)
	}
	l.log.Debug("trip unshared", "trip", t.ID, "user", userID)
	return out, nil
}

// remoteErr keeps domain errors from the remote as they are and reports
// everything else as a sync failure.
func remoteErr(op string, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrInvariantViolation):
		return fmt.Errorf("sharing: %s: %w", op, err)
	default:
		return apperr.Sync(op, err)
	}
}
