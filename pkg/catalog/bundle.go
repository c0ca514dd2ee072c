package catalog

import (
	"strings"

	"tableflip.dev/packlist/pkg/apperr"
)

// Bundle returns the bundle with the given id.
func (s *State) Bundle(id string) (Bundle, bool) {
	for _, b := range s.Bundles {
		if b.ID == id {
			b.Items = append([]BundleLine(nil), b.Items...)
			return b, true
		}
	}
	return Bundle{}, false
}

// CreateBundle saves a named selection of items.
func (s *State) CreateBundle(name string, lines []BundleLine) (Bundle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Bundle{}, apperr.Blank("catalog: bundle name")
	}
	b := Bundle{ID: NewID(), Name: name, Items: normalizeLines(lines)}
	s.Bundles = append(s.Bundles, b)
	return b, nil
}

// BundlePatch lists the bundle fields to change. A nil Items keeps the
// current lines; an empty non-nil slice clears them.
type BundlePatch struct {
	Name  *string
	Items []BundleLine
}

// UpdateBundle applies patch to the bundle with the given id.
func (s *State) UpdateBundle(id string, patch BundlePatch) error {
	for i := range s.Bundles {
		if s.Bundles[i].ID != id {
			continue
		}
		b := s.Bundles[i]
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return apperr.Blank("catalog: bundle name")
			}
			b.Name = name
		}
		if patch.Items != nil {
			b.Items = normalizeLines(patch.Items)
		}
		s.Bundles[i] = b
		return nil
	}
	return nil
}

// DeleteBundle removes a bundle.
func (s *State) DeleteBundle(id string) error {
	out := make([]Bundle, 0, len(s.Bundles))
	for _, b := range s.Bundles {
		if b.ID != id {
			out = append(out, b)
		}
	}
	s.Bundles = out
	return nil
}

// Resolved is a bundle line resolved against the current catalog.
type Resolved struct {
	Item Item
	Qty  int
}

// ResolveBundle resolves each line of the bundle against the current
// items, skipping lines whose item no longer exists. The returned items are
// copies taken at resolution time.
func (s *State) ResolveBundle(id string) ([]Resolved, bool) {
	b, ok := s.Bundle(id)
	if !ok {
		return nil, false
	}
	out := make([]Resolved, 0, len(b.Items))
	for _, line := range b.Items {
		item, ok := s.Item(line.InventoryID)
		if !ok {
			continue
		}
		out = append(out, Resolved{Item: item, Qty: line.Qty})
	}
	return out, true
}

func normalizeLines(lines []BundleLine) []BundleLine {
	out := make([]BundleLine, 0, len(lines))
	for _, l := range lines {
		l.InventoryID = strings.TrimSpace(l.InventoryID)
		if l.InventoryID == "" {
			continue
		}
		if l.Qty < 1 {
			l.Qty = 1
		}
		out = append(out, l)
	}
	return out
}
