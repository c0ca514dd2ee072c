// Package migrate contains the runner that upgrades stored records.
package migrate

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
)

// Migrate reports on stored records and, unless DryRun, rewrites them at
// the current version.
type Migrate struct {
	DryRun  bool
	JSON    bool
	Service *app.Service
}

func (m *Migrate) Do(ctx context.Context) error {
	status, err := m.Service.MigrationStatus(ctx)
	if err != nil {
		return err
	}
	if !m.DryRun && status.Pending() {
		if status, err = m.Service.Migrate(ctx); err != nil {
			return err
		}
	}
	if m.JSON {
		return printers.JSON(status)
	}
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(color.Output, "stored: %v\n", status.Stored)
	if !status.Pending() {
		_, _ = fmt.Fprintln(color.Output, "Nothing to migrate.")
		return nil
	}
	if m.DryRun {
		_, _ = fmt.Fprintf(color.Output, "Would rewrite catalog v%d, upgrade %d trips and remove %v\n", status.CatalogVersion, status.LegacyTrips, status.Legacy)
		return nil
	}
	printers.Done("Rewrote catalog v%d, upgraded %d trips and removed %v", status.CatalogVersion, status.LegacyTrips, status.Legacy)
	return nil
}
