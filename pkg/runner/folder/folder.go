// Package folder contains runners for catalog folder commands.
package folder

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
)

// List prints every folder.
type List struct {
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (l *List) Do(ctx context.Context) error {
	cat, err := l.Service.Catalog(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(cat.Folders)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.Folders(&cat)
	return nil
}

// Add creates a folder together with its system group.
type Add struct {
	Name    string
	JSON    bool
	Service *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	var f catalog.Folder
	_, err := a.Service.EditCatalog(ctx, func(c *catalog.State) error {
		var err error
		f, err = c.CreateFolder(a.Name)
		return err
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(f)
	}
	printers.Done("Added folder %q (%s)", f.Name, f.ID)
	return nil
}

// Rename changes a folder's name.
type Rename struct {
	ID      string
	Name    string
	Service *app.Service
}

func (r *Rename) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.RenameFolder(r.ID, r.Name)
	})
	if err != nil {
		return err
	}
	printers.Done("Renamed folder %s", r.ID)
	return nil
}

// Remove deletes a folder, moving its items to the default folder.
type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.DeleteFolder(r.ID)
	})
	if err != nil {
		return err
	}
	printers.Done("Removed folder %s", r.ID)
	return nil
}
