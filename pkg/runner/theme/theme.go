// Package theme contains the runner for the theme command.
package theme

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
)

// Theme prints the stored theme, or stores Value when set.
type Theme struct {
	Value   string
	Service *app.Service
}

func (t *Theme) Do(ctx context.Context) error {
	if t.Value != "" {
		if err := t.Service.SetTheme(ctx, t.Value); err != nil {
			return err
		}
		printers.Done("Theme set to %s", t.Value)
		return nil
	}
	current, err := t.Service.Theme(ctx)
	if err != nil {
		return err
	}
	if current == "" {
		current = "light"
	}
	_, _ = fmt.Fprintln(color.Output, current)
	return nil
}
