// Package trip owns per-trip checklists: trips, their groups and the item
// snapshots copied from the catalog.
package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/packlist/pkg/apperr"
)

// Status is derived from the checked state of a trip's items.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

const (
	// DefaultGroupID is the id given to the group synthesised for trips
	// stored before groups existed.
	DefaultGroupID = "trip_group_default"
	// DefaultGroupName names the group every new trip starts with.
	DefaultGroupName = "Main"

	dateLayout = "2006-01-02"
)

var (
	// NewID generates ids for trips, groups and items.
	NewID = uuid.NewString
	// Now is the clock used for default and reset dates.
	Now = time.Now
)

// Group is a sub-list of one trip.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a snapshot of a catalog item taken when it was added. It never
// refers back to the catalog; InventoryID is provenance only.
type Item struct {
	ID          string `json:"id"`
	InventoryID string `json:"inventoryId"`
	TripGroupID string `json:"tripGroupId"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Qty         int    `json:"qty"`
	Version     string `json:"version"`
	Checked     bool   `json:"checked"`
}

// Trip is one checklist. Items are stored in display order.
type Trip struct {
	ID          string   `json:"id"`
	OwnerUserID string   `json:"ownerUserId"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Status      Status   `json:"status"`
	Groups      []Group  `json:"groups"`
	Items       []Item   `json:"items"`
	SharedWith  []string `json:"sharedWith"`
}

// Clone returns a deep copy of the trip.
func (t Trip) Clone() Trip {
	t.Groups = append([]Group(nil), t.Groups...)
	t.Items = append([]Item(nil), t.Items...)
	t.SharedWith = append([]string(nil), t.SharedWith...)
	return t
}

// CloneAll deep-copies a trip list.
func CloneAll(trips []Trip) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.Clone())
	}
	return out
}

// Today formats the current date the way trips store it.
func Today() string {
	return Now().Format(dateLayout)
}

// CleanSharedWith drops blanks, duplicates and the owner, keeping first
// occurrence order.
func CleanSharedWith(ids []string, owner string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == owner {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ShareChange adds and/or removes one collaborator.
type ShareChange struct {
	Add    string
	Remove string
}

// Apply updates t.SharedWith. Adding the owner is refused; adding a present
// id or removing an absent one changes nothing.
func (c ShareChange) Apply(t *Trip) error {
	add := strings.TrimSpace(c.Add)
	if add != "" && add == t.OwnerUserID {
		return apperr.Invariant(fmt.Sprintf("trip %s: owner cannot be a collaborator", t.ID))
	}
	ids := append([]string(nil), t.SharedWith...)
	if add != "" {
		ids = append(ids, add)
	}
	if remove := strings.TrimSpace(c.Remove); remove != "" {
		kept := ids[:0]
		for _, id := range ids {
			if id != remove {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	t.SharedWith = CleanSharedWith(ids, t.OwnerUserID)
	return nil
}
