// Package group contains runners for catalog group commands.
package group

import (
	"context"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
)

// List prints the groups, optionally of one folder.
type List struct {
	FolderID string
	ShowID   bool
	JSON     bool
	Service  *app.Service
}

func (l *List) Do(ctx context.Context) error {
	cat, err := l.Service.Catalog(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		groups := cat.Groups
		if l.FolderID != "" {
			groups = cat.GroupsIn(l.FolderID)
		}
		return printers.JSON(groups)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.Groups(&cat, l.FolderID)
	return nil
}

// Add creates a group in a folder.
type Add struct {
	FolderID string
	Name     string
	JSON     bool
	Service  *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	var g catalog.Group
	_, err := a.Service.EditCatalog(ctx, func(c *catalog.State) error {
		var err error
		g, err = c.CreateGroup(a.FolderID, a.Name)
		return err
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(g)
	}
	printers.Done("Added group %q (%s)", g.Name, g.ID)
	return nil
}

type Rename struct {
	ID      string
	Name    string
	Service *app.Service
}

func (r *Rename) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.RenameGroup(r.ID, r.Name)
	})
	if err != nil {
		return err
	}
	printers.Done("Renamed group %s", r.ID)
	return nil
}

// Remove deletes a group, moving its items to the folder's fallback group.
type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.DeleteGroup(r.ID)
	})
	if err != nil {
		return err
	}
	printers.Done("Removed group %s", r.ID)
	return nil
}
