package catalog

import (
	"fmt"
	"strings"

	"tableflip.dev/packlist/pkg/apperr"
)

// Folder returns the folder with the given id.
func (s *State) Folder(id string) (Folder, bool) {
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// Group returns the group with the given id.
func (s *State) Group(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Item returns the item with the given id.
func (s *State) Item(id string) (Item, bool) {
	for _, i := range s.Items {
		if i.ID == id {
			return i, true
		}
	}
	return Item{}, false
}

// GroupsIn lists the groups of a folder in stored order.
func (s *State) GroupsIn(folderID string) []Group {
	groups := make([]Group, 0)
	for _, g := range s.Groups {
		if g.FolderID == folderID {
			groups = append(groups, g)
		}
	}
	return groups
}

// DefaultFolder resolves the system folder id, falling back to the
// DefaultFolderID sentinel.
func (s *State) DefaultFolder() string {
	for _, f := range s.Folders {
		if f.IsSystem {
			return f.ID
		}
	}
	return DefaultFolderID
}

// DefaultGroup resolves the fallback group of the default folder.
func (s *State) DefaultGroup() string {
	return s.fallbackGroup(s.DefaultFolder(), "")
}

// FallbackGroup resolves the group that receives items of folderID when
// they have no group: the folder's system group, else its first group,
// else the DefaultGroupID sentinel.
func (s *State) FallbackGroup(folderID string) string {
	return s.fallbackGroup(folderID, "")
}

func (s *State) fallbackGroup(folderID, excluding string) string {
	first := ""
	for _, g := range s.Groups {
		if g.FolderID != folderID || g.ID == excluding {
			continue
		}
		if g.IsSystem {
			return g.ID
		}
		if first == "" {
			first = g.ID
		}
	}
	if first != "" {
		return first
	}
	return DefaultGroupID
}

// CreateFolder adds a folder together with its system group.
func (s *State) CreateFolder(name string) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, apperr.Blank("catalog: folder name")
	}
	f := Folder{ID: NewID(), Name: name}
	g := Group{ID: NewID(), FolderID: f.ID, Name: GeneralGroupName, IsSystem: true}
	s.Folders = append(s.Folders, f)
	s.Groups = append(s.Groups, g)
	return f, nil
}

// RenameFolder changes a folder's display name.
func (s *State) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Blank("catalog: folder name")
	}
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			s.Folders[i].Name = name
			return nil
		}
	}
	return nil
}

// DeleteFolder removes a non-system folder. Its items are re-pointed to the
// default folder's default group first, then its groups are removed, then
// the folder itself.
func (s *State) DeleteFolder(id string) error {
	folder, ok := s.Folder(id)
	if !ok {
		return nil
	}
	if folder.IsSystem {
		return apperr.Invariant(fmt.Sprintf("catalog: folder %q is the system folder", folder.Name))
	}

	targetFolder := s.DefaultFolder()
	targetGroup := s.DefaultGroup()

	items := append([]Item(nil), s.Items...)
	for i := range items {
		if items[i].FolderID == id {
			items[i].FolderID = targetFolder
			items[i].GroupID = targetGroup
		}
	}

	groups := make([]Group, 0, len(s.Groups))
	for _, g := range s.Groups {
		if g.FolderID != id {
			groups = append(groups, g)
		}
	}

	folders := make([]Folder, 0, len(s.Folders))
	for _, f := range s.Folders {
		if f.ID != id {
			folders = append(folders, f)
		}
	}

	s.Items = items
	s.Groups = groups
	s.Folders = folders
	return nil
}

// CreateGroup adds a non-system group to an existing folder.
func (s *State) CreateGroup(folderID, name string) (Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, apperr.Blank("catalog: group name")
	}
	if _, ok := s.Folder(folderID); !ok {
		return Group{}, apperr.Invariant(fmt.Sprintf("catalog: folder %q does not exist", folderID))
	}
	g := Group{ID: NewID(), FolderID: folderID, Name: name}
	s.Groups = append(s.Groups, g)
	return g, nil
}

// RenameGroup changes a group's display name.
func (s *State) RenameGroup(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Blank("catalog: group name")
	}
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			s.Groups[i].Name = name
			return nil
		}
	}
	return nil
}

// DeleteGroup removes a non-system group after moving its items to the
// folder's fallback group.
func (s *State) DeleteGroup(id string) error {
	group, ok := s.Group(id)
	if !ok {
		return nil
	}
	if group.IsSystem {
		return apperr.Invariant(fmt.Sprintf("catalog: group %q is a system group", group.Name))
	}

	target := s.fallbackGroup(group.FolderID, id)

	items := append([]Item(nil), s.Items...)
	for i := range items {
		if items[i].GroupID == id {
			items[i].GroupID = target
		}
	}

	groups := make([]Group, 0, len(s.Groups))
	for _, g := range s.Groups {
		if g.ID != id {
			groups = append(groups, g)
		}
	}

	s.Items = items
	s.Groups = groups
	return nil
}

// CreateItem adds an inventory item. An empty folderID selects the default
// folder and an empty groupID selects the folder's fallback group.
func (s *State) CreateItem(folderID, groupID, name, category, defaultVersion string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, apperr.Blank("catalog: item name")
	}
	folderID, groupID, err := s.placement(folderID, groupID)
	if err != nil {
		return Item{}, err
	}
	item := Item{
		ID:             NewID(),
		FolderID:       folderID,
		GroupID:        groupID,
		Name:           name,
		Category:       strings.TrimSpace(category),
		DefaultVersion: defaultVersion,
	}
	s.Items = append(s.Items, item)
	return item, nil
}

// ItemPatch lists the fields to change on an item. Nil fields are kept.
type ItemPatch struct {
	Name           *string
	Category       *string
	DefaultVersion *string
	FolderID       *string
	GroupID        *string
}

// UpdateItem applies patch to the item with the given id.
func (s *State) UpdateItem(id string, patch ItemPatch) error {
	idx := -1
	for i := range s.Items {
		if s.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	item := s.Items[idx]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return apperr.Blank("catalog: item name")
		}
		item.Name = name
	}
	if patch.Category != nil {
		item.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.DefaultVersion != nil {
		item.DefaultVersion = *patch.DefaultVersion
	}
	if patch.FolderID != nil || patch.GroupID != nil {
		folderID, groupID := item.FolderID, ""
		if patch.FolderID != nil {
			folderID = *patch.FolderID
		}
		if patch.GroupID != nil {
			groupID = *patch.GroupID
		} else if patch.FolderID == nil {
			groupID = item.GroupID
		}
		var err error
		item.FolderID, item.GroupID, err = s.placement(folderID, groupID)
		if err != nil {
			return err
		}
	}
	s.Items[idx] = item
	return nil
}

// placement validates and completes a folder/group pair for an item.
func (s *State) placement(folderID, groupID string) (string, string, error) {
	if folderID == "" {
		if groupID != "" {
			if g, ok := s.Group(groupID); ok {
				return g.FolderID, g.ID, nil
			}
		}
		folderID = s.DefaultFolder()
	} else if _, ok := s.Folder(folderID); !ok {
		return "", "", apperr.Invariant(fmt.Sprintf("catalog: folder %q does not exist", folderID))
	}
	if groupID == "" {
		return folderID, s.FallbackGroup(folderID), nil
	}
	g, ok := s.Group(groupID)
	if !ok {
		return "", "", apperr.Invariant(fmt.Sprintf("catalog: group %q does not exist", groupID))
	}
	if g.FolderID != folderID {
		return "", "", apperr.Invariant(fmt.Sprintf("catalog: group %q is not in folder %q", groupID, folderID))
	}
	return folderID, groupID, nil
}

// DeleteItem removes an item. Trips keep their own copies.
func (s *State) DeleteItem(id string) error {
	items := make([]Item, 0, len(s.Items))
	for _, i := range s.Items {
		if i.ID != id {
			items = append(items, i)
		}
	}
	s.Items = items
	return nil
}
