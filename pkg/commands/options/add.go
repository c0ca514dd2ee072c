package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-01-02"
)

// DateOptions
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.DateString, "date", "",
		`Specify the trip date, example: --date="2024-02-28". Defaults to today.`)
}

// GetDate returns the date in the stored layout, empty when unset.
func (o *DateOptions) GetDate() (string, error) {
	s := strings.TrimSpace(o.DateString)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", s)
	}
	return t.Format(layoutISO), nil
}
