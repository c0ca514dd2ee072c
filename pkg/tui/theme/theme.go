package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the packing view.
type Theme struct {
	Header  HeaderTheme
	List    ListTheme
	Footer  FooterTheme
	Palette Palette
}

// HeaderTheme styles the trip title block.
type HeaderTheme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bar      lipgloss.Style
	BarEmpty lipgloss.Style
	Percent  lipgloss.Style
}

// ListTheme styles group headings and checklist rows.
type ListTheme struct {
	Group    lipgloss.Style
	Item     lipgloss.Style
	Checked  lipgloss.Style
	Selected lipgloss.Style
	Qty      lipgloss.Style
	Version  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Palette holds the raw colours a theme is built from.
type Palette struct {
	Text   string
	Muted  string
	Accent string
	Done   string
	Warn   string
	Track  string
}

var (
	light = Palette{Text: "235", Muted: "245", Accent: "27", Done: "34", Warn: "166", Track: "252"}
	dark  = Palette{Text: "252", Muted: "243", Accent: "75", Done: "78", Warn: "214", Track: "238"}
)

// For returns the theme for a stored theme name. Unknown names fall back
// to the light theme.
func For(name string) Theme {
	if name == "dark" {
		return build(dark)
	}
	return build(light)
}

// Default returns the built-in light theme.
func Default() Theme {
	return For("light")
}

func build(p Palette) Theme {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))

	return Theme{
		Palette: p,
		Header: HeaderTheme{
			Title:    text.Bold(true),
			Subtitle: muted,
			Bar:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Done)),
			BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Track)),
			Percent:  text.Bold(true),
		},
		List: ListTheme{
			Group: lipgloss.NewStyle().
				Foreground(lipgloss.Color(p.Accent)).
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color(p.Accent)).
				PaddingLeft(1),
			Item:     text,
			Checked:  muted.Strikethrough(true),
			Selected: lipgloss.NewStyle().Reverse(true),
			Qty:      text.Bold(true),
			Version:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
		},
		Footer: FooterTheme{
			Help:   muted,
			Status: muted.Italic(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)).Bold(true),
		},
	}
}
