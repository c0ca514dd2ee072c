package remote

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	s, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testTrip(id, owner string, shared ...string) trip.Trip {
	return trip.Trip{
		ID:          id,
		OwnerUserID: owner,
		Name:        "trip " + id,
		Date:        "2024-06-01",
		Status:      trip.StatusPlanning,
		Groups:      []trip.Group{{ID: "g", Name: "Main"}},
		Items:       []trip.Item{{ID: id + "-i", TripGroupID: "g", Name: "Cable", Qty: 2}},
		SharedWith:  shared,
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(store.RemoteConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestUserDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, ok, err := s.GetUserDocument(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)

	cat := catalog.State{
		Folders: []catalog.Folder{{ID: catalog.DefaultFolderID, Name: "Biz", IsSystem: true}},
		Items:   []catalog.Item{{ID: "a", Name: "A", FolderID: catalog.DefaultFolderID}},
	}
	require.NoError(t, s.PutUserDocument(ctx, "u", cat))

	cat.Items = append(cat.Items, catalog.Item{ID: "b", Name: "B"})
	require.NoError(t, s.PutUserDocument(ctx, "u", cat))

	got, ok, err := s.GetUserDocument(ctx, "u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, "Biz", got.Folders[0].Name)
}

func TestTripQueries(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.PutTrip(ctx, testTrip("t1", "alice")))
	require.NoError(t, s.PutTrip(ctx, testTrip("t2", "bob", "alice", "bob", "carol")))
	require.NoError(t, s.PutTrip(ctx, testTrip("t3", "carol")))

	owned, err := s.QueryTripsByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "t1", owned[0].ID)
	assert.Equal(t, 2, owned[0].Items[0].Qty)

	shared, err := s.QueryTripsSharedWith(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "t2", shared[0].ID)
	assert.Equal(t, []string{"alice", "carol"}, shared[0].SharedWith)

	none, err := s.QueryTripsSharedWith(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPutTripReplacesShares(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.PutTrip(ctx, testTrip("t1", "alice", "bob")))
	updated := testTrip("t1", "alice", "carol")
	updated.Name = "renamed"
	require.NoError(t, s.PutTrip(ctx, updated))

	got, err := s.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, []string{"carol"}, got.SharedWith)
}

func TestUpdateTripSharedWith(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.PutTrip(ctx, testTrip("t1", "alice")))

	require.NoError(t, s.UpdateTripSharedWith(ctx, "t1", trip.ShareChange{Add: "bob"}))
	require.NoError(t, s.UpdateTripSharedWith(ctx, "t1", trip.ShareChange{Add: "bob"}))
	got, err := s.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got.SharedWith)

	require.NoError(t, s.UpdateTripSharedWith(ctx, "t1", trip.ShareChange{Remove: "bob"}))
	require.NoError(t, s.UpdateTripSharedWith(ctx, "t1", trip.ShareChange{Remove: "bob"}))
	got, err = s.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, got.SharedWith)

	err = s.UpdateTripSharedWith(ctx, "t1", trip.ShareChange{Add: "alice"})
	assert.ErrorIs(t, err, apperr.ErrInvariantViolation)

	err = s.UpdateTripSharedWith(ctx, "missing", trip.ShareChange{Add: "bob"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolveUserIDByUsername(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.RegisterUser(ctx, "u-1", "alice"))
	id, err := s.ResolveUserIDByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	require.NoError(t, s.RegisterUser(ctx, "u-1", "alice2"))
	_, err = s.ResolveUserIDByUsername(ctx, "alice")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	err = s.RegisterUser(ctx, "", "x")
	assert.ErrorIs(t, err, apperr.ErrValidationNoop)
}
