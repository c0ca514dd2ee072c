// Package catalog owns the reusable packing catalog: folders, the groups
// that partition them, categories, inventory items and bundles.
//
// A State is plain data. Every operation is a method on *State that either
// applies completely or leaves the state untouched and returns an error.
package catalog

import "github.com/google/uuid"

const (
	// DefaultFolderID is the id of the seeded system folder and the sentinel
	// used when no system folder can be found.
	DefaultFolderID = "folder_default"
	// DefaultGroupID is the id of the default folder's system group and the
	// sentinel fallback when a folder has no groups left.
	DefaultGroupID = "group_default"

	// GeneralGroupName names the system group created with every folder.
	GeneralGroupName = "General"

	// UnknownCategoryLabel is rendered for items whose category was deleted.
	UnknownCategoryLabel = "unknown category"
)

// NewID generates ids for new catalog entities.
var NewID = uuid.NewString

// Folder is a top-level partition of the catalog.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

// Group partitions the items of one folder.
type Group struct {
	ID       string `json:"id"`
	FolderID string `json:"folderId"`
	Name     string `json:"name"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

// Category is a descriptive label referenced by id from items. References
// are weak: an item may point at a category that no longer exists.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ColorToken string `json:"colorToken,omitempty"`
}

// Item is a reusable catalog entry.
type Item struct {
	ID             string `json:"id"`
	FolderID       string `json:"folderId"`
	GroupID        string `json:"groupId"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	DefaultVersion string `json:"defaultVersion,omitempty"`
}

// BundleLine is one saved selection in a bundle.
type BundleLine struct {
	InventoryID string `json:"inventoryId"`
	Qty         int    `json:"qty"`
}

// Bundle is a named selection of catalog items with default quantities.
type Bundle struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []BundleLine `json:"items"`
}

// State is the whole catalog of one user.
type State struct {
	Folders    []Folder   `json:"folders"`
	Groups     []Group    `json:"groups"`
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
	Bundles    []Bundle   `json:"bundles"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Folders:    append([]Folder(nil), s.Folders...),
		Groups:     append([]Group(nil), s.Groups...),
		Categories: append([]Category(nil), s.Categories...),
		Items:      append([]Item(nil), s.Items...),
		Bundles:    make([]Bundle, 0, len(s.Bundles)),
	}
	for _, b := range s.Bundles {
		b.Items = append([]BundleLine(nil), b.Items...)
		out.Bundles = append(out.Bundles, b)
	}
	return out
}
