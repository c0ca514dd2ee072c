// Package trips contains runners for trip commands.
package trips

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
	"tableflip.dev/packlist/pkg/trip"
)

// List prints every trip grouped by status, or a month calendar of trip
// dates when Month is set.
type List struct {
	Month   *time.Time
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (l *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	if l.Month != nil {
		all, err := l.Service.Trips(ctx)
		if err != nil {
			return err
		}
		if l.JSON {
			return printers.JSON(all)
		}
		pp.Calendar(*l.Month, all...)
		return nil
	}
	report, err := l.Service.Report(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(report)
	}
	pp.Dashboard(report)
	return nil
}

// New creates a trip.
type New struct {
	Name    string
	Date    string
	JSON    bool
	Service *app.Service
}

func (n *New) Do(ctx context.Context) error {
	t, err := n.Service.NewTrip(ctx, n.Name, n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(t)
	}
	printers.Done("Created trip %q (%s)", t.Name, t.ID)
	return nil
}

// Duplicate copies a trip with every item unchecked.
type Duplicate struct {
	ID      string
	JSON    bool
	Service *app.Service
}

func (d *Duplicate) Do(ctx context.Context) error {
	t, err := d.Service.DuplicateTrip(ctx, d.ID)
	if err != nil {
		return err
	}
	if d.JSON {
		return printers.JSON(t)
	}
	printers.Done("Duplicated trip as %q (%s)", t.Name, t.ID)
	return nil
}

type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	if err := r.Service.DeleteTrip(ctx, r.ID); err != nil {
		return err
	}
	printers.Done("Removed trip %s", r.ID)
	return nil
}

// Show prints a trip with its groups, items and summary.
type Show struct {
	ID      string
	Summary bool
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (s *Show) Do(ctx context.Context) error {
	snap, err := s.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	t, err := s.Service.Trip(ctx, s.ID)
	if err != nil {
		return err
	}
	summary := trip.Summarize(t)
	if s.JSON {
		if s.Summary {
			return printers.JSON(summary)
		}
		return printers.JSON(t)
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID}
	if !s.Summary {
		pp.Trip(t, &snap.Catalog)
	}
	pp.Summary(summary, &snap.Catalog)
	return nil
}

// Export prints the plain-text rendering of a trip. With Render set the
// text is formatted as markdown in the stored theme.
type Export struct {
	ID      string
	Render  bool
	Width   int
	Service *app.Service
}

func (e *Export) Do(ctx context.Context) error {
	snap, err := e.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	t, err := e.Service.Trip(ctx, e.ID)
	if err != nil {
		return err
	}
	text := trip.ExportText(t, snap.Catalog.CategoryLabel)
	if e.Render {
		return printers.Markdown(text, snap.Theme, e.Width)
	}
	_, _ = fmt.Fprint(color.Output, text)
	return nil
}

// Edit applies one change to a trip and reports the result.
type Edit struct {
	ID      string
	Apply   func(t *trip.Trip, cat *catalog.State) error
	Message string
	JSON    bool
	Service *app.Service
}

func (e *Edit) Do(ctx context.Context) error {
	t, err := e.Service.EditTrip(ctx, e.ID, e.Apply)
	if err != nil {
		return err
	}
	if e.JSON {
		return printers.JSON(t)
	}
	if e.Message != "" {
		printers.Done("%s", e.Message)
	}
	p := t.Progress()
	_, _ = color.New(color.Faint).Fprintf(color.Output, "%s · %s · %d/%d packed\n", t.Name, t.Status, p.Checked, p.Total)
	return nil
}
