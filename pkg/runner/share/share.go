// Package share contains runners for sharing trips and registering
// usernames.
package share

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
)

// Share grants a user access to a trip by username.
type Share struct {
	TripID   string
	Username string
	JSON     bool
	Service  *app.Service
}

func (s *Share) Do(ctx context.Context) error {
	t, id, err := s.Service.Share(ctx, s.TripID, s.Username)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(t)
	}
	printers.Done("Shared %q with %s (%s)", t.Name, s.Username, id)
	return nil
}

// Unshare revokes a user's access to a trip.
type Unshare struct {
	TripID  string
	UserID  string
	JSON    bool
	Service *app.Service
}

func (u *Unshare) Do(ctx context.Context) error {
	t, err := u.Service.Unshare(ctx, u.TripID, u.UserID)
	if err != nil {
		return err
	}
	if u.JSON {
		return printers.JSON(t)
	}
	printers.Done("Unshared %q from %s", t.Name, u.UserID)
	return nil
}

// Register publishes a username for the current user.
type Register struct {
	Username string
	Service  *app.Service
}

func (r *Register) Do(ctx context.Context) error {
	if err := r.Service.RegisterUser(ctx, r.Username); err != nil {
		return err
	}
	printers.Done("Registered %s as %s", r.Service.User.UserID, r.Username)
	return nil
}
