package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"tableflip.dev/packlist/pkg/seed"
	"tableflip.dev/packlist/pkg/trip"
)

// storedTrip accepts every trip shape written so far. UserID is the owner
// field of the first release.
type storedTrip struct {
	ID          string       `json:"id"`
	OwnerUserID string       `json:"ownerUserId"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Date        string       `json:"date"`
	Status      trip.Status  `json:"status"`
	Groups      []trip.Group `json:"groups"`
	Items       []storedItem `json:"items"`
	SharedWith  []string     `json:"sharedWith"`
}

type storedItem struct {
	ID          string  `json:"id"`
	InventoryID string  `json:"inventoryId"`
	TripGroupID string  `json:"tripGroupId"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Qty         flexQty `json:"qty"`
	Version     string  `json:"version"`
	Checked     bool    `json:"checked"`
}

// flexQty decodes a quantity stored as a number or a numeric string.
type flexQty int

func (q *flexQty) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*q = 0
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*q = flexQty(trip.CoerceQty(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("qty %s: %w", b, err)
	}
	*q = flexQty(int(f))
	return nil
}

func decodeTrips(data []byte) ([]storedTrip, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var out []storedTrip
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("snapshot: decode trips: %w", err)
	}
	return out, nil
}

// migrateTrips upgrades stored trips:
//   - trips without groups get the default group
//   - items without a group, or with a group the trip lacks, move to the
//     first group
//   - the legacy userId fills ownerUserId; an empty owner becomes userID
//   - qty below 1 becomes 1 and legacy category labels become ids
//   - a missing or unknown status is derived from the items
//   - sharedWith is de-duplicated and never contains the owner
func migrateTrips(stored []storedTrip, userID string) []trip.Trip {
	out := make([]trip.Trip, 0, len(stored))
	for i, st := range stored {
		out = append(out, migrateTrip(st, i, userID))
	}
	return out
}

func migrateTrip(st storedTrip, pos int, userID string) trip.Trip {
	t := trip.Trip{
		ID:          st.ID,
		OwnerUserID: st.OwnerUserID,
		Name:        st.Name,
		Date:        st.Date,
		Status:      st.Status,
		Groups:      append([]trip.Group(nil), st.Groups...),
	}
	if t.ID == "" {
		t.ID = legacyID("trip", strconv.Itoa(pos), st.Name, st.Date)
	}
	if t.OwnerUserID == "" {
		t.OwnerUserID = st.UserID
	}
	if t.OwnerUserID == "" {
		t.OwnerUserID = userID
	}
	if len(t.Groups) == 0 {
		t.Groups = []trip.Group{{ID: trip.DefaultGroupID, Name: trip.DefaultGroupName}}
	}

	first := t.Groups[0].ID
	t.Items = make([]trip.Item, 0, len(st.Items))
	for i, si := range st.Items {
		item := trip.Item{
			ID:          si.ID,
			InventoryID: si.InventoryID,
			TripGroupID: si.TripGroupID,
			Name:        si.Name,
			Category:    si.Category,
			Qty:         int(si.Qty),
			Version:     si.Version,
			Checked:     si.Checked,
		}
		if item.ID == "" {
			item.ID = legacyID("trip", t.ID, "item", strconv.Itoa(i), si.Name)
		}
		if _, ok := t.Group(item.TripGroupID); !ok {
			item.TripGroupID = first
		}
		if item.Qty < 1 {
			item.Qty = 1
		}
		if id, ok := seed.LegacyCategories[item.Category]; ok {
			item.Category = id
		}
		t.Items = append(t.Items, item)
	}

	if !t.Status.Valid() {
		t.Status = trip.DeriveStatus(t)
	}
	t.SharedWith = trip.CleanSharedWith(st.SharedWith, t.OwnerUserID)
	return t
}

// LegacyTrips counts the trips in a stored trips document that Load would
// upgrade.
func LegacyTrips(data []byte) (int, error) {
	stored, err := decodeTrips(data)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, st := range stored {
		if needsUpgrade(st) {
			n++
		}
	}
	return n, nil
}

func needsUpgrade(st storedTrip) bool {
	if st.ID == "" || st.UserID != "" || st.OwnerUserID == "" || len(st.Groups) == 0 || !st.Status.Valid() {
		return true
	}
	if len(trip.CleanSharedWith(st.SharedWith, st.OwnerUserID)) != len(st.SharedWith) {
		return true
	}
	groups := make(map[string]struct{}, len(st.Groups))
	for _, g := range st.Groups {
		groups[g.ID] = struct{}{}
	}
	for _, item := range st.Items {
		if _, ok := groups[item.TripGroupID]; !ok || item.ID == "" || item.Qty < 1 {
			return true
		}
		if _, ok := seed.LegacyCategories[item.Category]; ok {
			return true
		}
	}
	return false
}
