// Package pack is the interactive checklist used while packing a trip.
package pack

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/store"
	"tableflip.dev/packlist/pkg/trip"
	"tableflip.dev/packlist/pkg/tui/theme"
)

// Source is the slice of app.Service the checklist needs.
type Source interface {
	Trip(ctx context.Context, id string) (trip.Trip, error)
	EditTrip(ctx context.Context, id string, fn func(t *trip.Trip, cat *catalog.State) error) (trip.Trip, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
}

const (
	headerLines = 4
	footerLines = 2
	barWidth    = 30
)

type row struct {
	group  string
	itemID string
}

func (r row) isItem() bool { return r.itemID != "" }

type toggledMsg struct {
	trip trip.Trip
	err  error
}

type reloadedMsg struct {
	trip trip.Trip
	err  error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Model renders one trip as a checklist grouped by trip group. Empty groups
// are hidden. Toggling an item writes through the Source.
type Model struct {
	ctx    context.Context
	source Source
	theme  theme.Theme

	trip   trip.Trip
	rows   []row
	cursor int

	status string
	failed bool

	viewport viewport.Model
	offset   int
	width    int
	height   int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs a checklist for t. ctx bounds every store call the model
// makes.
func New(ctx context.Context, source Source, t trip.Trip, th theme.Theme) *Model {
	m := &Model{
		ctx:    ctx,
		source: source,
		theme:  th,
		viewport: viewport.New(
			viewport.WithWidth(80),
			viewport.WithHeight(20),
		),
		width:  80,
		height: 20 + headerLines + footerLines,
	}
	m.setTrip(t)
	m.cursor = m.next(-1, 1)
	m.refresh()
	return m
}

// Run launches the Bubble Tea program and returns once the user quits.
func Run(ctx context.Context, source Source, t trip.Trip, th theme.Theme) (trip.Trip, error) {
	m := New(ctx, source, t, th)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.stopWatch()
	return m.trip, err
}

// Trip returns the latest state of the trip being packed.
func (m *Model) Trip() trip.Trip {
	return m.trip
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.source)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(max(m.width, 1))
		m.viewport.SetHeight(max(m.height-headerLines-footerLines, 1))
		m.refresh()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case toggledMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			break
		}
		m.setTrip(msg.trip)
		if it, ok := m.selected(); ok {
			verb := "unpacked"
			if it.Checked {
				verb = "packed"
			}
			m.setStatus(fmt.Sprintf("%s %s", verb, it.Name), false)
		}
		m.refresh()
	case reloadedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			break
		}
		m.setTrip(msg.trip)
		m.refresh()
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("watch unavailable: "+msg.err.Error(), true)
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		return m, tea.Batch(m.reload(), m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.stopWatch()
		return tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "home", "g":
		m.cursor = m.next(-1, 1)
		m.refresh()
	case "end", "G":
		m.cursor = m.next(len(m.rows), -1)
		m.refresh()
	case "space", " ", "enter", "x":
		return m.toggle()
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	th := m.theme.Header
	p := m.trip.Progress()
	filled := 0
	if p.Total > 0 {
		filled = p.Checked * barWidth / p.Total
	}
	bar := th.Bar.Render(strings.Repeat("█", filled)) + th.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
	lines := []string{
		th.Title.Render(m.trip.Name),
		th.Subtitle.Render(fmt.Sprintf("%s · %s", m.trip.Date, m.trip.Status)),
		bar + " " + th.Percent.Render(fmt.Sprintf("%d%%", p.Percent)) + th.Subtitle.Render(fmt.Sprintf("  %d/%d", p.Checked, p.Total)),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m *Model) footer() string {
	th := m.theme.Footer
	help := th.Help.Render("↑/↓ move · space toggle · q quit")
	if m.status == "" {
		return "\n" + help
	}
	style := th.Status
	if m.failed {
		style = th.Error
	}
	return style.Render(m.status) + "\n" + help
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// setTrip replaces the trip and rebuilds rows, keeping the cursor on the
// same item when it still exists.
func (m *Model) setTrip(t trip.Trip) {
	current := ""
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		current = m.rows[m.cursor].itemID
	}
	m.trip = t
	m.rows = m.rows[:0]
	for _, g := range t.Groups {
		items := t.ItemsIn(g.ID)
		if len(items) == 0 {
			continue
		}
		m.rows = append(m.rows, row{group: g.Name})
		for _, it := range items {
			m.rows = append(m.rows, row{group: g.Name, itemID: it.ID})
		}
	}
	m.cursor = -1
	for i, r := range m.rows {
		if current != "" && r.itemID == current {
			m.cursor = i
			break
		}
	}
	if m.cursor < 0 {
		m.cursor = m.next(-1, 1)
	}
}

// next returns the first item row after from in direction dir, or from
// itself clamped to a valid item when there is none.
func (m *Model) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].isItem() {
			return i
		}
	}
	if from >= 0 && from < len(m.rows) && m.rows[from].isItem() {
		return from
	}
	return -1
}

func (m *Model) move(dir int) {
	if n := m.next(m.cursor, dir); n >= 0 {
		m.cursor = n
	}
	m.refresh()
}

func (m *Model) selected() (trip.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return trip.Item{}, false
	}
	return m.trip.Item(m.rows[m.cursor].itemID)
}

func (m *Model) toggle() tea.Cmd {
	it, ok := m.selected()
	if !ok || m.source == nil {
		return nil
	}
	ctx, source, tripID := m.ctx, m.source, m.trip.ID
	return func() tea.Msg {
		t, err := source.EditTrip(ctx, tripID, func(t *trip.Trip, _ *catalog.State) error {
			return t.Toggle(it.ID)
		})
		return toggledMsg{trip: t, err: err}
	}
}

func (m *Model) reload() tea.Cmd {
	ctx, source, tripID := m.ctx, m.source, m.trip.ID
	return func() tea.Msg {
		t, err := source.Trip(ctx, tripID)
		return reloadedMsg{trip: t, err: err}
	}
}

// refresh renders the rows into the viewport and scrolls the cursor into
// view.
func (m *Model) refresh() {
	th := m.theme.List
	lines := make([]string, 0, len(m.rows)+1)
	for i, r := range m.rows {
		if !r.isItem() {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, th.Group.Render(r.group))
			continue
		}
		it, _ := m.trip.Item(r.itemID)
		mark, name := "[ ]", th.Item.Render(it.Name)
		if it.Checked {
			mark, name = "[x]", th.Checked.Render(it.Name)
		}
		line := fmt.Sprintf("  %s %s %s", mark, name, th.Qty.Render(fmt.Sprintf("x%d", it.Qty)))
		if it.Version != "" {
			line += " " + th.Version.Render(strings.ReplaceAll(it.Version, "\n", " "))
		}
		if i == m.cursor {
			line = th.Selected.Render(lipgloss.NewStyle().Width(max(m.width, 1)).Render(line))
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, m.theme.Footer.Status.Render("No items on this trip. Add some with `packlist trip add`."))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	cursorLine := m.cursorLine()
	height := max(m.height-headerLines-footerLines, 1)
	if cursorLine < m.offset {
		m.offset = cursorLine
	}
	if cursorLine >= m.offset+height {
		m.offset = cursorLine - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	m.viewport.SetYOffset(m.offset)
}

// cursorLine maps the cursor row to its rendered line, accounting for the
// blank separator before every group after the first.
func (m *Model) cursorLine() int {
	line := 0
	for i := 0; i < m.cursor && i < len(m.rows); i++ {
		if !m.rows[i].isItem() && i > 0 {
			line++
		}
		line++
	}
	if m.cursor > 0 && m.cursor < len(m.rows) && !m.rows[m.cursor].isItem() {
		line++
	}
	return line
}

func startWatchCmd(parent context.Context, source Source) tea.Cmd {
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := source.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}
