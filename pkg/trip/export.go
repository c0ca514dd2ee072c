package trip

import (
	"fmt"
	"strings"
)

// ExportText renders the trip as a plain text checklist followed by its
// summary. label maps category ids to display names; nil prints ids.
func ExportText(t Trip, label func(string) string) string {
	if label == nil {
		label = func(id string) string { return id }
	}
	var b strings.Builder
	p := t.Progress()
	fmt.Fprintf(&b, "# %s\n", t.Name)
	fmt.Fprintf(&b, "Date: %s\n", t.Date)
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintf(&b, "Progress: %d/%d (%d%%)\n", p.Checked, p.Total, p.Percent)

	for _, g := range t.Groups {
		fmt.Fprintf(&b, "\n## %s\n", g.Name)
		for _, item := range t.ItemsIn(g.ID) {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s x%d", mark, item.Name, item.Qty)
			if v := strings.TrimSpace(item.Version); v != "" {
				fmt.Fprintf(&b, " (%s)", v)
			}
			b.WriteString("\n")
		}
	}

	summary := Summarize(t)
	if len(summary.Categories) > 0 {
		b.WriteString("\n## Summary\n")
		for _, c := range summary.Categories {
			fmt.Fprintf(&b, "\n### %s\n", label(c.Category))
			for _, l := range c.Lines {
				parts := make([]string, 0, len(l.Details))
				for _, d := range l.Details {
					parts = append(parts, fmt.Sprintf("%s x%d", d.Version, d.Qty))
				}
				fmt.Fprintf(&b, "- %s: %d [%s]\n", l.Name, l.TotalQty, strings.Join(parts, ", "))
			}
		}
	}
	return b.String()
}
