package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutMonth      = "2006-1"
	layoutMonthShort = "1"
)

// MonthOptions
type MonthOptions struct {
	Calendar bool
	OnString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Show a month calendar of trip dates.")
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Month for --calendar, example: --on="2024-6" or --on="6".`)
}

// GetMonth returns the month to show, or nil when no calendar was asked for.
func (o *MonthOptions) GetMonth() (*time.Time, error) {
	if !o.Calendar && o.OnString == "" {
		return nil, nil
	}
	now := time.Now()
	if o.OnString == "" {
		return &now, nil
	}
	t, err := time.Parse(layoutMonth, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutMonthShort, o.OnString)
		if err != nil {
			return nil, err
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return &t, nil
}
