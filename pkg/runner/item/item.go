// Package item contains runners for catalog item commands.
package item

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
)

// List prints the catalog items that pass Filter.
type List struct {
	Filter  catalog.Filter
	ShowID  bool
	JSON    bool
	Service *app.Service
}

func (l *List) Do(ctx context.Context) error {
	cat, err := l.Service.Catalog(ctx)
	if err != nil {
		return err
	}
	items := cat.Filter(l.Filter)
	if l.JSON {
		return printers.JSON(items)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.Items(&cat, items)
	return nil
}

// Add creates a catalog item. Empty folder and group resolve to defaults.
type Add struct {
	Name           string
	FolderID       string
	GroupID        string
	Category       string
	DefaultVersion string
	JSON           bool
	Service        *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	var created catalog.Item
	_, err := a.Service.EditCatalog(ctx, func(c *catalog.State) error {
		var err error
		created, err = c.CreateItem(a.FolderID, a.GroupID, a.Name, a.Category, a.DefaultVersion)
		return err
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(created)
	}
	printers.Done("Added item %q (%s)", created.Name, created.ID)
	return nil
}

type Edit struct {
	ID      string
	Patch   catalog.ItemPatch
	Service *app.Service
}

func (e *Edit) Do(ctx context.Context) error {
	_, err := e.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.UpdateItem(e.ID, e.Patch)
	})
	if err != nil {
		return err
	}
	printers.Done("Updated item %s", e.ID)
	return nil
}

type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.DeleteItem(r.ID)
	})
	if err != nil {
		return err
	}
	printers.Done("Removed item %s", r.ID)
	return nil
}
