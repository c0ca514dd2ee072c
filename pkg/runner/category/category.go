// Package category contains runners for category commands.
package category

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
)

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
		return printers.JSON(cat.Categories)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.Categories(&cat)
	return nil
}

type Add struct {
	Name    string
	Color   string
	JSON    bool
	Service *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	var created catalog.Category
	_, err := a.Service.EditCatalog(ctx, func(c *catalog.State) error {
		var err error
		created, err = c.CreateCategory(a.Name, a.Color)
		return err
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(created)
	}
	printers.Done("Added category %q (%s)", created.Name, created.ID)
	return nil
}

// Edit changes the fields that were set on the command line.
type Edit struct {
	ID      string
	Patch   catalog.CategoryPatch
	Service *app.Service
}

func (e *Edit) Do(ctx context.Context) error {
	_, err := e.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.UpdateCategory(e.ID, e.Patch)
	})
	if err != nil {
		return err
	}
	printers.Done("Updated category %s", e.ID)
	return nil
}

// Remove deletes a category. Items keep the dangling reference.
type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.DeleteCategory(r.ID)
	})
	if err != nil {
		return err
	}
	printers.Done("Removed category %s", r.ID)
	return nil
}
