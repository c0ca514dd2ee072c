package trip

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
)

// Field names an editable trip item field.
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldQty      Field = "qty"
	FieldVersion  Field = "version"
)

// New creates a planning trip owned by owner with a single default group.
// An empty date means today.
func New(owner, name, date string) (Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Trip{}, apperr.Blank("trip: name")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = Today()
	}
	return Trip{
		ID:          NewID(),
		OwnerUserID: owner,
		Name:        name,
		Date:        date,
		Status:      StatusPlanning,
		Groups:      []Group{{ID: NewID(), Name: DefaultGroupName}},
		Items:       []Item{},
		SharedWith:  []string{},
	}, nil
}

// Group returns the group with the given id.
func (t *Trip) Group(id string) (Group, bool) {
	for _, g := range t.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Item returns the item with the given id.
func (t *Trip) Item(id string) (Item, bool) {
	for _, i := range t.Items {
		if i.ID == id {
			return i, true
		}
	}
	return Item{}, false
}

// ItemsIn lists the items of a group in display order.
func (t *Trip) ItemsIn(groupID string) []Item {
	out := make([]Item, 0)
	for _, i := range t.Items {
		if i.TripGroupID == groupID {
			out = append(out, i)
		}
	}
	return out
}

func (t *Trip) itemIndex(id string) int {
	for i := range t.Items {
		if t.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// resolveGroup maps an empty group id to the first group and checks that
// any other id belongs to the trip.
func (t *Trip) resolveGroup(groupID string) (string, error) {
	if groupID == "" {
		if len(t.Groups) == 0 {
			return "", apperr.Invariant("trip: trip has no groups")
		}
		return t.Groups[0].ID, nil
	}
	if _, ok := t.Group(groupID); !ok {
		return "", apperr.Invariant(fmt.Sprintf("trip: group %q is not part of trip %q", groupID, t.ID))
	}
	return groupID, nil
}

// AddItem appends a snapshot of inv to the target group.
func (t *Trip) AddItem(inv catalog.Item, groupID string) (Item, error) {
	groupID, err := t.resolveGroup(groupID)
	if err != nil {
		return Item{}, err
	}
	item := snapshotOf(inv, groupID, 1)
	t.Items = append(t.Items, item)
	t.touch()
	return item, nil
}

// AddBundle expands a catalog bundle into the target group. Lines whose
// catalog item no longer exists are skipped.
func (t *Trip) AddBundle(cat *catalog.State, bundleID, groupID string) ([]Item, error) {
	groupID, err := t.resolveGroup(groupID)
	if err != nil {
		return nil, err
	}
	resolved, ok := cat.ResolveBundle(bundleID)
	if !ok {
		return nil, fmt.Errorf("trip: bundle %q: %w", bundleID, apperr.ErrNotFound)
	}
	added := make([]Item, 0, len(resolved))
	for _, r := range resolved {
		added = append(added, snapshotOf(r.Item, groupID, r.Qty))
	}
	t.Items = append(t.Items, added...)
	t.touch()
	return added, nil
}

func snapshotOf(inv catalog.Item, groupID string, qty int) Item {
	if qty < 1 {
		qty = 1
	}
	return Item{
		ID:          NewID(),
		InventoryID: inv.ID,
		TripGroupID: groupID,
		Name:        inv.Name,
		Category:    inv.Category,
		Qty:         qty,
		Version:     inv.DefaultVersion,
		Checked:     false,
	}
}

// CoerceQty parses a quantity, falling back to 1 for anything that is not
// an integer of at least 1.
func CoerceQty(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// UpdateItem sets one field of an item in place.
func (t *Trip) UpdateItem(itemID string, field Field, value string) error {
	idx := t.itemIndex(itemID)
	if idx < 0 {
		return nil
	}
	item := t.Items[idx]
	switch field {
	case FieldName:
		name := strings.TrimSpace(value)
		if name == "" {
			return apperr.Blank("trip: item name")
		}
		item.Name = name
	case FieldCategory:
		item.Category = strings.TrimSpace(value)
	case FieldQty:
		item.Qty = CoerceQty(value)
	case FieldVersion:
		item.Version = value
	default:
		return fmt.Errorf("trip: unknown item field %q", field)
	}
	t.Items[idx] = item
	t.touch()
	return nil
}

// RemoveItem deletes an item.
func (t *Trip) RemoveItem(itemID string) error {
	idx := t.itemIndex(itemID)
	if idx < 0 {
		return nil
	}
	t.Items = append(append([]Item(nil), t.Items[:idx]...), t.Items[idx+1:]...)
	t.touch()
	return nil
}

// Clear removes every item but keeps the groups.
func (t *Trip) Clear() {
	t.Items = []Item{}
	t.touch()
}

// Reorder moves the item at position from to position to, both counted
// within the group. Items of other groups keep their storage positions.
func (t *Trip) Reorder(groupID string, from, to int) error {
	if _, ok := t.Group(groupID); !ok {
		return apperr.Invariant(fmt.Sprintf("trip: group %q is not part of trip %q", groupID, t.ID))
	}
	positions := make([]int, 0)
	for i, item := range t.Items {
		if item.TripGroupID == groupID {
			positions = append(positions, i)
		}
	}
	if from < 0 || from >= len(positions) || to < 0 || to >= len(positions) {
		return apperr.Invariant(fmt.Sprintf("trip: reorder %d -> %d out of range for %d items", from, to, len(positions)))
	}
	if from == to {
		return nil
	}

	sub := make([]Item, 0, len(positions))
	for _, p := range positions {
		sub = append(sub, t.Items[p])
	}
	moved := sub[from]
	sub = append(sub[:from], sub[from+1:]...)
	sub = append(sub[:to], append([]Item{moved}, sub[to:]...)...)

	items := append([]Item(nil), t.Items...)
	for i, p := range positions {
		items[p] = sub[i]
	}
	t.Items = items
	t.touch()
	return nil
}

// MoveItem reassigns an item to another group of the same trip, placing it
// after that group's last item.
func (t *Trip) MoveItem(itemID, groupID string) error {
	idx := t.itemIndex(itemID)
	if idx < 0 {
		return nil
	}
	if _, ok := t.Group(groupID); !ok {
		return apperr.Invariant(fmt.Sprintf("trip: group %q is not part of trip %q", groupID, t.ID))
	}
	item := t.Items[idx]
	if item.TripGroupID == groupID {
		return nil
	}
	item.TripGroupID = groupID
	rest := append(append([]Item(nil), t.Items[:idx]...), t.Items[idx+1:]...)
	insert := len(rest)
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i].TripGroupID == groupID {
			insert = i + 1
			break
		}
	}
	t.Items = append(rest[:insert], append([]Item{item}, rest[insert:]...)...)
	t.touch()
	return nil
}

// Toggle flips the checked flag of an item and re-derives the status.
func (t *Trip) Toggle(itemID string) error {
	idx := t.itemIndex(itemID)
	if idx < 0 {
		return nil
	}
	t.Items[idx].Checked = !t.Items[idx].Checked
	t.touch()
	return nil
}

// AddGroup appends a new group.
func (t *Trip) AddGroup(name string) (Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, apperr.Blank("trip: group name")
	}
	g := Group{ID: NewID(), Name: name}
	t.Groups = append(t.Groups, g)
	t.touch()
	return g, nil
}

// RenameGroup changes the name of a group.
func (t *Trip) RenameGroup(groupID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Blank("trip: group name")
	}
	for i := range t.Groups {
		if t.Groups[i].ID == groupID {
			t.Groups[i].Name = name
			t.touch()
			return nil
		}
	}
	return nil
}

// DeleteGroup removes a group and every item in it. The last group of a
// trip cannot be deleted.
func (t *Trip) DeleteGroup(groupID string) error {
	if _, ok := t.Group(groupID); !ok {
		return nil
	}
	if len(t.Groups) <= 1 {
		return apperr.Invariant("trip: cannot delete the last group")
	}
	groups := make([]Group, 0, len(t.Groups)-1)
	for _, g := range t.Groups {
		if g.ID != groupID {
			groups = append(groups, g)
		}
	}
	items := make([]Item, 0, len(t.Items))
	for _, i := range t.Items {
		if i.TripGroupID != groupID {
			items = append(items, i)
		}
	}
	t.Groups = groups
	t.Items = items
	t.touch()
	return nil
}

// UpdateDetails renames the trip and sets its date. An empty date keeps
// the current one.
func (t *Trip) UpdateDetails(name, date string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Blank("trip: name")
	}
	t.Name = name
	if date = strings.TrimSpace(date); date != "" {
		t.Date = date
	}
	t.touch()
	return nil
}

// Duplicate copies a trip for a new owner: fresh ids throughout, every item
// unchecked, planning status, today's date and no collaborators.
func Duplicate(src Trip, owner string) Trip {
	mapping := make(map[string]string, len(src.Groups))
	groups := make([]Group, 0, len(src.Groups))
	for _, g := range src.Groups {
		id := NewID()
		mapping[g.ID] = id
		groups = append(groups, Group{ID: id, Name: g.Name})
	}
	items := make([]Item, 0, len(src.Items))
	for _, i := range src.Items {
		i.ID = NewID()
		i.TripGroupID = mapping[i.TripGroupID]
		i.Checked = false
		items = append(items, i)
	}
	return Trip{
		ID:          NewID(),
		OwnerUserID: owner,
		Name:        src.Name,
		Date:        Today(),
		Status:      StatusPlanning,
		Groups:      groups,
		Items:       items,
		SharedWith:  []string{},
	}
}
