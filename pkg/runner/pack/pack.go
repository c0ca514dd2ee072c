// Package pack contains the runner for the interactive packing checklist.
package pack

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
	packui "tableflip.dev/packlist/pkg/tui/pack"
	"tableflip.dev/packlist/pkg/tui/theme"
)

// Pack opens the checklist for one trip in the stored theme.
type Pack struct {
	ID      string
	Service *app.Service
}

func (p *Pack) Do(ctx context.Context) error {
	t, err := p.Service.Trip(ctx, p.ID)
	if err != nil {
		return err
	}
	name, err := p.Service.Theme(ctx)
	if err != nil {
		return err
	}
	final, err := packui.Run(ctx, p.Service, t, theme.For(name))
	if err != nil {
		return err
	}
	pr := final.Progress()
	printers.Done("%s: %d/%d packed (%s)", final.Name, pr.Checked, pr.Total, final.Status)
	return nil
}
