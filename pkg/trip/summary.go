package trip

import "strings"

// NoNote labels quantities with a blank version.
const NoNote = "(no note)"

// SummaryDetail is the quantity packed for one version note.
type SummaryDetail struct {
	Version string `json:"version"`
	Qty     int    `json:"qty"`
}

// SummaryLine totals one item name within a category.
type SummaryLine struct {
	Name     string          `json:"name"`
	TotalQty int             `json:"totalQty"`
	Details  []SummaryDetail `json:"details"`
}

// SummaryCategory groups summary lines by category id.
type SummaryCategory struct {
	Category string        `json:"category"`
	Lines    []SummaryLine `json:"lines"`
}

// Summary is the whole-trip rollup across groups.
type Summary struct {
	Categories []SummaryCategory `json:"categories"`
}

// Summarize rolls up quantities by category, then by item name, then by
// version note. All orderings follow first appearance in the trip.
func Summarize(t Trip) Summary {
	var out Summary
	catIdx := map[string]int{}
	lineIdx := map[string]map[string]int{}
	for _, item := range t.Items {
		ci, ok := catIdx[item.Category]
		if !ok {
			ci = len(out.Categories)
			catIdx[item.Category] = ci
			lineIdx[item.Category] = map[string]int{}
			out.Categories = append(out.Categories, SummaryCategory{Category: item.Category})
		}
		cat := &out.Categories[ci]

		li, ok := lineIdx[item.Category][item.Name]
		if !ok {
			li = len(cat.Lines)
			lineIdx[item.Category][item.Name] = li
			cat.Lines = append(cat.Lines, SummaryLine{Name: item.Name})
		}
		line := &cat.Lines[li]
		line.TotalQty += item.Qty

		version := strings.TrimSpace(item.Version)
		if version == "" {
			version = NoNote
		}
		found := false
		for d := range line.Details {
			if line.Details[d].Version == version {
				line.Details[d].Qty += item.Qty
				found = true
				break
			}
		}
		if !found {
			line.Details = append(line.Details, SummaryDetail{Version: version, Qty: item.Qty})
		}
	}
	return out
}
