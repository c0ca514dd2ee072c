// Package bundle contains runners for bundle commands.
package bundle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/printers"
)

// ParseLines reads "id" or "id:qty" arguments. A missing or invalid qty is 1.
func ParseLines(raw []string) ([]catalog.BundleLine, error) {
	lines := make([]catalog.BundleLine, 0, len(raw))
	for _, r := range raw {
		id, qtyText, hasQty := strings.Cut(strings.TrimSpace(r), ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("bundle: empty item id in %q", r)
		}
		qty := 1
		if hasQty {
			if n, err := strconv.Atoi(strings.TrimSpace(qtyText)); err == nil && n > 0 {
				qty = n
			}
		}
		lines = append(lines, catalog.BundleLine{InventoryID: id, Qty: qty})
	}
	return lines, nil
}

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
		return printers.JSON(cat.Bundles)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.Bundles(&cat)
	return nil
}

type Add struct {
	Name    string
	Lines   []catalog.BundleLine
	JSON    bool
	Service *app.Service
}

func (a *Add) Do(ctx context.Context) error {
	var created catalog.Bundle
	_, err := a.Service.EditCatalog(ctx, func(c *catalog.State) error {
		var err error
		created, err = c.CreateBundle(a.Name, a.Lines)
		return err
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(created)
	}
	printers.Done("Added bundle %q with %d items (%s)", created.Name, len(created.Items), created.ID)
	return nil
}

type Edit struct {
	ID      string
	Patch   catalog.BundlePatch
	Service *app.Service
}

func (e *Edit) Do(ctx context.Context) error {
	_, err := e.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.UpdateBundle(e.ID, e.Patch)
	})
	if err != nil {
		return err
	}
	printers.Done("Updated bundle %s", e.ID)
	return nil
}

type Remove struct {
	ID      string
	Service *app.Service
}

func (r *Remove) Do(ctx context.Context) error {
	_, err := r.Service.EditCatalog(ctx, func(c *catalog.State) error {
		return c.DeleteBundle(r.ID)
	})
	if err != nil {
		return err
	}
	printers.Done("Removed bundle %s", r.ID)
	return nil
}
