package catalog

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/packlist/pkg/apperr"
)

// NormalizeColor canonicalises hex colour tokens ("#ABC", "aabbcc") to
// lower-case "#rrggbb". Anything that is not a hex colour is returned
// trimmed and otherwise untouched; tokens are opaque to the catalog.
func NormalizeColor(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	candidate := token
	if !strings.HasPrefix(candidate, "#") {
		candidate = "#" + candidate
	}
	if len(candidate) == 4 {
		candidate = "#" + strings.Repeat(candidate[1:2], 2) + strings.Repeat(candidate[2:3], 2) + strings.Repeat(candidate[3:4], 2)
	}
	c, err := colorful.Hex(candidate)
	if err != nil {
		return token
	}
	return c.Hex()
}

// Category returns the category with the given id.
func (s *State) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabel resolves a category id to its name, or UnknownCategoryLabel
// when the category no longer exists.
func (s *State) CategoryLabel(id string) string {
	if c, ok := s.Category(id); ok {
		return c.Name
	}
	return UnknownCategoryLabel
}

// CreateCategory adds a category.
func (s *State) CreateCategory(name, colorToken string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, apperr.Blank("catalog: category name")
	}
	c := Category{ID: NewID(), Name: name, ColorToken: NormalizeColor(colorToken)}
	s.Categories = append(s.Categories, c)
	return c, nil
}

// CategoryPatch lists the category fields to change. Nil fields are kept.
type CategoryPatch struct {
	Name       *string
	ColorToken *string
}

// UpdateCategory applies patch to the category with the given id.
func (s *State) UpdateCategory(id string, patch CategoryPatch) error {
	for i := range s.Categories {
		if s.Categories[i].ID != id {
			continue
		}
		c := s.Categories[i]
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return apperr.Blank("catalog: category name")
			}
			c.Name = name
		}
		if patch.ColorToken != nil {
			c.ColorToken = NormalizeColor(*patch.ColorToken)
		}
		s.Categories[i] = c
		return nil
	}
	return nil
}

// DeleteCategory removes a category. Items referencing it are left alone
// and resolve to UnknownCategoryLabel.
func (s *State) DeleteCategory(id string) error {
	out := make([]Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.Categories = out
	return nil
}
