// Package remote is the shared backing store used by sync and sharing: one
// catalog document per user, one record per trip, and the username
// directory used to resolve collaborators.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
)

// Store implements the remote document store over gorm.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("remote: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Open connects to the configured database.
func Open(cfg store.RemoteConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("remote: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(cfg.LogLevel)})
	if err != nil {
		return nil, fmt.Errorf("remote: open %s: %w", cfg.Driver, err)
	}
	return New(db)
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(log.New(os.Stderr, "remote: ", log.LstdFlags), logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RegisterUser records username for id, replacing an earlier username.
func (s *Store) RegisterUser(ctx context.Context, id, username string) error {
	id = strings.TrimSpace(id)
	username = strings.TrimSpace(username)
	if id == "" || username == "" {
		return apperr.Blank("remote: user id and username")
	}
	u := User{ID: id, Username: username}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username"}),
	}).Create(&u).Error
	if err != nil {
		return fmt.Errorf("remote: register %q: %w", username, err)
	}
	return nil
}

// ResolveUserIDByUsername looks up a collaborator.
func (s *Store) ResolveUserIDByUsername(ctx context.Context, username string) (string, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("remote: %q: %w", username, apperr.ErrUserNotFound)
		}
		return "", fmt.Errorf("remote: resolve %q: %w", username, err)
	}
	return u.ID, nil
}

// GetUserDocument returns the stored catalog for userID. The bool is false
// when nothing was ever uploaded.
func (s *Store) GetUserDocument(ctx context.Context, userID string) (catalog.State, bool, error) {
	var doc UserDocument
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.State{}, false, nil
		}
		return catalog.State{}, false, fmt.Errorf("remote: get document %s: %w", userID, err)
	}
	var cat catalog.State
	if err := json.Unmarshal(doc.Catalog, &cat); err != nil {
		return catalog.State{}, false, fmt.Errorf("remote: decode document %s: %w", userID, err)
	}
	return cat, true, nil
}

// PutUserDocument overwrites the catalog document for userID.
func (s *Store) PutUserDocument(ctx context.Context, userID string, cat catalog.State) error {
	body, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("remote: encode document %s: %w", userID, err)
	}
	doc := UserDocument{UserID: userID, Catalog: body}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"catalog", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("remote: put document %s: %w", userID, err)
	}
	return nil
}

// PutTrip writes a trip and replaces its collaborator list.
func (s *Store) PutTrip(ctx context.Context, t trip.Trip) error {
	shared := trip.CleanSharedWith(t.SharedWith, t.OwnerUserID)
	t = t.Clone()
	t.SharedWith = nil
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("remote: encode trip %s: %w", t.ID, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := TripRecord{ID: t.ID, OwnerUserID: t.OwnerUserID, Body: body}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_user_id", "body", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", t.ID).Delete(&TripShare{}).Error; err != nil {
			return err
		}
		for _, id := range shared {
			if err := tx.Create(&TripShare{TripID: t.ID, UserID: id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remote: put trip %s: %w", t.ID, err)
	}
	return nil
}

// GetTrip returns a single trip.
func (s *Store) GetTrip(ctx context.Context, tripID string) (trip.Trip, error) {
	var rec TripRecord
	err := s.db.WithContext(ctx).Where("id = ?", tripID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trip.Trip{}, fmt.Errorf("remote: trip %s: %w", tripID, apperr.ErrNotFound)
		}
		return trip.Trip{}, fmt.Errorf("remote: get trip %s: %w", tripID, err)
	}
	trips, err := s.hydrate(ctx, []TripRecord{rec})
	if err != nil {
		return trip.Trip{}, err
	}
	return trips[0], nil
}

// QueryTripsByOwner returns the trips owned by userID.
func (s *Store) QueryTripsByOwner(ctx context.Context, userID string) ([]trip.Trip, error) {
	var recs []TripRecord
	err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", userID).
		Order("created_at desc").Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("remote: trips owned by %s: %w", userID, err)
	}
	return s.hydrate(ctx, recs)
}

// QueryTripsSharedWith returns the trips whose collaborators include userID.
func (s *Store) QueryTripsSharedWith(ctx context.Context, userID string) ([]trip.Trip, error) {
	var recs []TripRecord
	err := s.db.WithContext(ctx).
		Joins("JOIN trip_shares ON trip_shares.trip_id = trips.id").
		Where("trip_shares.user_id = ?", userID).
		Order("trips.created_at desc").Order("trips.id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("remote: trips shared with %s: %w", userID, err)
	}
	return s.hydrate(ctx, recs)
}

// UpdateTripSharedWith applies change to one trip's collaborator list
// without touching the trip body. Adding the owner is refused; adding a
// present id or removing an absent one is a no-op.
func (s *Store) UpdateTripSharedWith(ctx context.Context, tripID string, change trip.ShareChange) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec TripRecord
		if err := tx.Select("id", "owner_user_id").Where("id = ?", tripID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("trip %s: %w", tripID, apperr.ErrNotFound)
			}
			return err
		}
		if add := strings.TrimSpace(change.Add); add != "" {
			if add == rec.OwnerUserID {
				return apperr.Invariant(fmt.Sprintf("trip %s: owner cannot be a collaborator", tripID))
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&TripShare{TripID: tripID, UserID: add}).Error; err != nil {
				return err
			}
		}
		if remove := strings.TrimSpace(change.Remove); remove != "" {
			if err := tx.Where("trip_id = ? AND user_id = ?", tripID, remove).Delete(&TripShare{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remote: update shares of %s: %w", tripID, err)
	}
	return nil
}

// hydrate decodes trip bodies and attaches their collaborator lists.
func (s *Store) hydrate(ctx context.Context, recs []TripRecord) ([]trip.Trip, error) {
	out := make([]trip.Trip, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	var shares []TripShare
	if err := s.db.WithContext(ctx).Where("trip_id IN ?", ids).Order("user_id").Find(&shares).Error; err != nil {
		return nil, fmt.Errorf("remote: load shares: %w", err)
	}
	byTrip := make(map[string][]string, len(recs))
	for _, sh := range shares {
		byTrip[sh.TripID] = append(byTrip[sh.TripID], sh.UserID)
	}

	for _, r := range recs {
		var t trip.Trip
		if err := json.Unmarshal(r.Body, &t); err != nil {
			return nil, fmt.Errorf("remote: decode trip %s: %w", r.ID, err)
		}
		t.ID = r.ID
		t.OwnerUserID = r.OwnerUserID
		t.SharedWith = byTrip[r.ID]
		if t.SharedWith == nil {
			t.SharedWith = []string{}
		}
		out = append(out, t)
	}
	return out, nil
}
