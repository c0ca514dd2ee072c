package catalog

import "strings"

// Filter narrows the item list. Empty fields match everything.
type Filter struct {
	Query      string
	CategoryID string
	FolderID   string
	GroupID    string
}

// Match reports whether item passes the filter. Query is a case-insensitive
// substring match on the item name.
func (f Filter) Match(item Item) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(item.Name), strings.ToLower(q)) {
			return false
		}
	}
	if f.CategoryID != "" && item.Category != f.CategoryID {
		return false
	}
	if f.FolderID != "" && item.FolderID != f.FolderID {
		return false
	}
	if f.GroupID != "" && item.GroupID != f.GroupID {
		return false
	}
	return true
}

// Filter returns the items matching f in stored order.
func (s *State) Filter(f Filter) []Item {
	out := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
