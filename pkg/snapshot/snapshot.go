// Package snapshot converts between stored namespace documents and the
// in-memory catalog and trip list, upgrading older records on the way in.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/seed"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
)

// CurrentVersion is written by Encode. Version 1 covers every record that
// predates the combined catalog document.
const CurrentVersion = 2

// Snapshot is everything stored for one user.
type Snapshot struct {
	Version int           `json:"version"`
	UserID  string        `json:"userId"`
	Catalog catalog.State `json:"catalog"`
	Trips   []trip.Trip   `json:"trips"`
	Theme   string        `json:"theme,omitempty"`
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	s.Catalog = s.Catalog.Clone()
	s.Trips = trip.CloneAll(s.Trips)
	return s
}

// legacyNamespace seeds the ids given to upgraded records that were stored
// without one. The same stored document always loads with the same ids.
var legacyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://tableflip.dev/packlist/legacy"))

func legacyID(parts ...string) string {
	return uuid.NewSHA1(legacyNamespace, []byte(strings.Join(parts, "/"))).String()
}

// Raw is the set of stored documents for one user, keyed by namespace.
type Raw map[store.Namespace][]byte

type catalogDoc struct {
	Version    int                `json:"version"`
	Folders    []catalog.Folder   `json:"folders"`
	Groups     []catalog.Group    `json:"groups"`
	Categories []catalog.Category `json:"categories"`
	Items      []catalog.Item     `json:"items"`
	Bundles    []catalog.Bundle   `json:"bundles"`
}

// Encode renders the snapshot as namespace documents at CurrentVersion.
func Encode(s Snapshot) (Raw, error) {
	doc := catalogDoc{
		Version:    CurrentVersion,
		Folders:    nonNil(s.Catalog.Folders),
		Groups:     nonNil(s.Catalog.Groups),
		Categories: nonNil(s.Catalog.Categories),
		Items:      nonNil(s.Catalog.Items),
		Bundles:    nonNil(s.Catalog.Bundles),
	}
	cat, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode catalog: %w", err)
	}
	trips, err := json.Marshal(nonNil(s.Trips))
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode trips: %w", err)
	}
	raw := Raw{
		store.NamespaceCatalog: cat,
		store.NamespaceTrips:   trips,
	}
	if s.Theme != "" {
		raw[store.NamespaceTheme] = []byte(s.Theme)
	}
	return raw, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Load builds a snapshot for userID from stored documents. Anything absent
// falls back to defaults: base for the catalog, an empty trip list. Records
// written by older releases are upgraded in place; see migrateCatalog and
// migrateTrips for the rules.
func Load(raw Raw, userID string, base catalog.State) (Snapshot, error) {
	s := Snapshot{Version: CurrentVersion, UserID: userID}

	cat, err := decodeCatalog(raw, base)
	if err != nil {
		return Snapshot{}, err
	}
	s.Catalog = migrateCatalog(cat)

	trips, err := decodeTrips(raw[store.NamespaceTrips])
	if err != nil {
		return Snapshot{}, err
	}
	s.Trips = migrateTrips(trips, userID)

	if theme, ok := raw[store.NamespaceTheme]; ok {
		s.Theme = strings.Trim(strings.TrimSpace(string(theme)), `"`)
	}
	return s, nil
}

// LoadDefault is Load with the seeded catalog as the base.
func LoadDefault(raw Raw, userID string) (Snapshot, error) {
	return Load(raw, userID, seed.Catalog())
}

func decodeCatalog(raw Raw, base catalog.State) (catalog.State, error) {
	base = base.Clone()
	out := catalog.State{}
	var doc catalogDoc
	if data, ok := raw[store.NamespaceCatalog]; ok {
		data = bytes.TrimSpace(data)
		switch {
		case len(data) == 0:
		case data[0] == '[':
			// Older releases stored the bare item list here.
			if err := json.Unmarshal(data, &doc.Items); err != nil {
				return out, fmt.Errorf("snapshot: decode legacy items: %w", err)
			}
		default:
			if err := json.Unmarshal(data, &doc); err != nil {
				return out, fmt.Errorf("snapshot: decode catalog: %w", err)
			}
		}
	}

	if err := decodeLegacy(raw, store.NamespaceFolders, doc.Folders == nil, &doc.Folders); err != nil {
		return out, err
	}
	if err := decodeLegacy(raw, store.NamespaceGroups, doc.Groups == nil, &doc.Groups); err != nil {
		return out, err
	}
	if err := decodeLegacy(raw, store.NamespaceCategories, doc.Categories == nil, &doc.Categories); err != nil {
		return out, err
	}
	if err := decodeLegacy(raw, store.NamespaceBundles, doc.Bundles == nil, &doc.Bundles); err != nil {
		return out, err
	}

	out.Folders = pick(doc.Folders, base.Folders)
	out.Groups = pick(doc.Groups, base.Groups)
	out.Categories = pick(doc.Categories, base.Categories)
	out.Items = pick(doc.Items, base.Items)
	out.Bundles = pick(doc.Bundles, base.Bundles)
	return out, nil
}

func decodeLegacy[T any](raw Raw, ns store.Namespace, missing bool, into *[]T) error {
	if !missing {
		return nil
	}
	data, ok := raw[ns]
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", ns, err)
	}
	return nil
}

func pick[T any](stored, fallback []T) []T {
	if stored != nil {
		return stored
	}
	return nonNil(fallback)
}

// migrateCatalog repairs references so every item and group points at an
// existing folder and group:
//   - the system folder and its system group are restored if missing
//   - a folder without groups gets a system group
//   - groups of a missing folder move to the system folder
//   - items without a folder go to the system folder, items without a
//     valid group go to their folder's fallback group
//   - legacy category labels map to the seeded category ids, restoring
//     the seeded category when it is missing
func migrateCatalog(s catalog.State) catalog.State {
	if _, ok := s.Folder(catalog.DefaultFolderID); !ok {
		s.Folders = append([]catalog.Folder{{
			ID: catalog.DefaultFolderID, Name: seed.Folders()[0].Name, IsSystem: true,
		}}, s.Folders...)
	}
	for i := range s.Folders {
		if s.Folders[i].ID == catalog.DefaultFolderID {
			s.Folders[i].IsSystem = true
		}
	}
	if _, ok := s.Group(catalog.DefaultGroupID); !ok {
		s.Groups = append([]catalog.Group{{
			ID: catalog.DefaultGroupID, FolderID: catalog.DefaultFolderID, Name: catalog.GeneralGroupName, IsSystem: true,
		}}, s.Groups...)
	}

	for i := range s.Groups {
		if _, ok := s.Folder(s.Groups[i].FolderID); !ok {
			s.Groups[i].FolderID = catalog.DefaultFolderID
		}
	}
	for _, f := range s.Folders {
		if len(s.GroupsIn(f.ID)) == 0 {
			s.Groups = append(s.Groups, catalog.Group{
				ID: legacyID("folder", f.ID, "general"), FolderID: f.ID, Name: catalog.GeneralGroupName, IsSystem: true,
			})
		}
	}

	for i := range s.Items {
		item := s.Items[i]
		if _, ok := s.Folder(item.FolderID); !ok {
			item.FolderID = catalog.DefaultFolderID
		}
		if g, ok := s.Group(item.GroupID); !ok || g.FolderID != item.FolderID {
			item.GroupID = s.FallbackGroup(item.FolderID)
		}
		if id, ok := seed.LegacyCategories[item.Category]; ok {
			item.Category = id
			if _, ok := s.Category(id); !ok {
				s.Categories = append(s.Categories, seedCategory(id))
			}
		}
		s.Items[i] = item
	}

	for i := range s.Categories {
		s.Categories[i].ColorToken = catalog.NormalizeColor(s.Categories[i].ColorToken)
	}
	for i := range s.Bundles {
		lines := make([]catalog.BundleLine, 0, len(s.Bundles[i].Items))
		for _, l := range s.Bundles[i].Items {
			if strings.TrimSpace(l.InventoryID) == "" {
				continue
			}
			if l.Qty < 1 {
				l.Qty = 1
			}
			lines = append(lines, l)
		}
		s.Bundles[i].Items = lines
	}
	return s
}

func seedCategory(id string) catalog.Category {
	for _, c := range seed.Categories() {
		if c.ID == id {
			return c
		}
	}
	return catalog.Category{ID: id, Name: id}
}
