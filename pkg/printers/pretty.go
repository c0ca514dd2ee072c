package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/trip"
)

// PrettyPrint renders catalog and trip state for the terminal.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Profile defaults to the stdout colour profile, or plain text when
	// stdout is not a terminal.
	Profile *termenv.Profile
}

const noteWidth = 40

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) profile() termenv.Profile {
	if pp.Profile != nil {
		return *pp.Profile
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints a title followed by a faint "- n noun(s)".
func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(id)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Category renders a category name in its colour token, when it has one.
func (pp *PrettyPrint) Category(cat *catalog.State, id string) string {
	label := cat.CategoryLabel(id)
	c, ok := cat.Category(id)
	if !ok {
		return color.New(color.Faint, color.Italic).Sprint(label)
	}
	if c.ColorToken == "" || !strings.HasPrefix(c.ColorToken, "#") {
		return label
	}
	p := pp.profile()
	return termenv.String(label).Foreground(p.Color(c.ColorToken)).String()
}

func (pp *PrettyPrint) Folders(cat *catalog.State) {
	pp.TitleWithCount("Folders", len(cat.Folders), "folder")
	if len(cat.Folders) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, f := range cat.Folders {
		name := f.Name
		if f.IsSystem {
			name += color.New(color.Faint).Sprint(" (system)")
		}
		row := []interface{}{name, fmt.Sprintf("%d groups", len(cat.GroupsIn(f.ID)))}
		if pp.ShowID {
			row = append([]interface{}{pp.id(f.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Groups lists catalog groups, limited to one folder when folderID is set.
func (pp *PrettyPrint) Groups(cat *catalog.State, folderID string) {
	groups := cat.Groups
	if folderID != "" {
		groups = cat.GroupsIn(folderID)
	}
	pp.TitleWithCount("Groups", len(groups), "group")
	if len(groups) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, g := range groups {
		folder := g.FolderID
		if f, ok := cat.Folder(g.FolderID); ok {
			folder = f.Name
		}
		name := g.Name
		if g.IsSystem {
			name += color.New(color.Faint).Sprint(" (system)")
		}
		row := []interface{}{folder, name}
		if pp.ShowID {
			row = append([]interface{}{pp.id(g.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Categories(cat *catalog.State) {
	pp.TitleWithCount("Categories", len(cat.Categories), "category")
	if len(cat.Categories) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, c := range cat.Categories {
		row := []interface{}{pp.Category(cat, c.ID), c.ColorToken}
		if pp.ShowID {
			row = append([]interface{}{pp.id(c.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Items lists catalog items with their folder, group and category.
func (pp *PrettyPrint) Items(cat *catalog.State, items []catalog.Item) {
	pp.TitleWithCount("Items", len(items), "item")
	if len(items) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, it := range items {
		place := it.FolderID
		if f, ok := cat.Folder(it.FolderID); ok {
			place = f.Name
		}
		if g, ok := cat.Group(it.GroupID); ok {
			place += " / " + g.Name
		}
		row := []interface{}{it.Name, pp.Category(cat, it.Category), place, wordwrap.String(it.DefaultVersion, noteWidth)}
		if pp.ShowID {
			row = append([]interface{}{pp.id(it.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Bundles(cat *catalog.State) {
	pp.TitleWithCount("Bundles", len(cat.Bundles), "bundle")
	if len(cat.Bundles) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	for _, b := range cat.Bundles {
		lines := make([]string, 0, len(b.Items))
		for _, l := range b.Items {
			name := l.InventoryID
			if it, ok := cat.Item(l.InventoryID); ok {
				name = it.Name
			} else {
				name = color.New(color.Faint, color.CrossedOut).Sprint(name)
			}
			lines = append(lines, fmt.Sprintf("%s x%d", name, l.Qty))
		}
		row := []interface{}{b.Name, wordwrap.String(strings.Join(lines, ", "), noteWidth)}
		if pp.ShowID {
			row = append([]interface{}{pp.id(b.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Trip renders one trip: header, progress and each group's items in order.
func (pp *PrettyPrint) Trip(t trip.Trip, cat *catalog.State) {
	pp.Title(t.Name)
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.out(), "%s · %s · owner %s\n", t.Date, t.Status, t.OwnerUserID)
	if len(t.SharedWith) > 0 {
		_, _ = faint.Fprintf(pp.out(), "shared with %s\n", strings.Join(t.SharedWith, ", "))
	}
	_, _ = fmt.Fprintln(pp.out(), pp.ProgressBar(t.Progress(), progressWidth))
	pp.NewLine()

	checked := color.New(color.FgGreen)
	for _, g := range t.Groups {
		items := t.ItemsIn(g.ID)
		header := color.New(color.Bold)
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), pp.id(g.ID)+" ")
		}
		_, _ = header.Fprintf(pp.out(), "%s", g.Name)
		_, _ = faint.Fprintf(pp.out(), " (%d)\n", len(items))
		if len(items) == 0 {
			pp.none()
			continue
		}
		tbl := pp.table()
		for i, it := range items {
			mark := "[ ]"
			name := it.Name
			if it.Checked {
				mark = checked.Sprint("[x]")
				name = faint.Sprint(name)
			}
			row := []interface{}{fmt.Sprintf("%d", i), mark, name, fmt.Sprintf("x%d", it.Qty), pp.Category(cat, it.Category), wordwrap.String(it.Version, noteWidth)}
			if pp.ShowID {
				row = append([]interface{}{pp.id(it.ID)}, row...)
			}
			tbl.AddRow(row...)
		}
		tbl.RightAlign(0)
		pp.flush(tbl)
	}
}

// Summary renders the category rollup of a trip.
func (pp *PrettyPrint) Summary(s trip.Summary, cat *catalog.State) {
	pp.Title("Summary")
	if len(s.Categories) == 0 {
		pp.none()
		return
	}
	for _, c := range s.Categories {
		_, _ = fmt.Fprintln(pp.out(), color.New(color.Bold).Sprint(pp.Category(cat, c.Category)))
		tbl := pp.table()
		for _, l := range c.Lines {
			details := make([]string, 0, len(l.Details))
			for _, d := range l.Details {
				details = append(details, fmt.Sprintf("%s x%d", d.Version, d.Qty))
			}
			tbl.AddRow("  "+l.Name, l.TotalQty, wordwrap.String(strings.Join(details, ", "), noteWidth))
		}
		tbl.RightAlign(1)
		pp.flush(tbl)
	}
}
