package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/trip"
)

const (
	progressWidth = 20
	dateLayout    = "2006-01-02"
)

const width = len("11 12 13 14 15 16 17") // an example week

// ProgressBar renders "[#####.....] 3/6 50%".
func (pp *PrettyPrint) ProgressBar(p trip.Progress, width int) string {
	filled := 0
	if p.Total > 0 {
		filled = p.Checked * width / p.Total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	label := fmt.Sprintf("%d/%d %d%%", p.Checked, p.Total, p.Percent)

	prof := pp.profile()
	switch {
	case p.Total > 0 && p.Checked == p.Total:
		bar = termenv.String(bar).Foreground(prof.Color("#22c55e")).String()
	case p.Checked > 0:
		bar = termenv.String(bar).Foreground(prof.Color("#eab308")).String()
	}
	return fmt.Sprintf("[%s] %s", bar, label)
}

// Dashboard lists trips grouped by status with their progress.
func (pp *PrettyPrint) Dashboard(r app.ReportResult) {
	pp.TitleWithCount("Trips", r.Total, "trip")
	if r.Total == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)
	for _, section := range r.Sections {
		_, _ = color.New(color.Bold).Fprintf(pp.out(), "%s\n", section.Status)
		tbl := pp.table()
		for _, item := range section.Trips {
			name := item.Trip.Name
			if item.Shared {
				name += faint.Sprintf(" (shared by %s)", item.Trip.OwnerUserID)
			}
			row := []interface{}{item.Trip.Date, name, pp.ProgressBar(item.Progress, progressWidth)}
			if pp.ShowID {
				row = append([]interface{}{pp.id(item.Trip.ID)}, row...)
			}
			tbl.AddRow(row...)
		}
		pp.flush(tbl)
	}
	_, _ = faint.Fprintf(pp.out(), "%d of %d items packed\n\n", r.Checked, r.Items)
}

// Calendar prints the month of then with trip days in bold.
func (pp *PrettyPrint) Calendar(then time.Time, trips ...trip.Trip) {
	then = time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.Local)
	count := make([]int, DaysIn(then))
	var listed []trip.Trip
	for _, t := range trips {
		on, err := time.ParseInLocation(dateLayout, t.Date, time.Local)
		if err != nil || on.Year() != then.Year() || on.Month() != then.Month() {
			continue
		}
		count[on.Day()-1]++
		listed = append(listed, t)
	}
	pp.PrintMonthCount(then, count)

	for _, t := range listed {
		_, _ = fmt.Fprintf(pp.out(), "%s  %s\n", t.Date, t.Name)
	}
	if len(listed) > 0 {
		pp.NewLine()
	}
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)
	w := pp.out()

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < DaysIn(then); i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
