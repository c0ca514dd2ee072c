// Package remotesync contains runners for the upload and download commands.
package remotesync

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
)

// Upload pushes the local catalog and visible trips to the remote store.
type Upload struct {
	JSON    bool
	Service *app.Service
}

func (u *Upload) Do(ctx context.Context) error {
	res, err := u.Service.Upload(ctx)
	if err != nil {
		return err
	}
	if u.JSON {
		return printers.JSON(res)
	}
	printers.Done("Uploaded catalog and %d trips (%d skipped)", res.Trips, res.Skipped)
	return nil
}

// Download replaces the local catalog with the remote one and merges trips.
type Download struct {
	JSON    bool
	Service *app.Service
}

func (d *Download) Do(ctx context.Context) error {
	snap, err := d.Service.Download(ctx)
	if err != nil {
		return err
	}
	if d.JSON {
		return printers.JSON(snap)
	}
	printers.Done("Downloaded %d catalog items and %d trips", len(snap.Catalog.Items), len(snap.Trips))
	return nil
}
