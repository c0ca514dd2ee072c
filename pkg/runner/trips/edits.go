package trips

import (
	"fmt"

	"tableflip.dev/packlist/pkg/apperr"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/trip"
)

// The functions below build Edit.Apply for each trip subcommand.

func requireItem(t *trip.Trip, itemID string) error {
	if _, ok := t.Item(itemID); !ok {
		return fmt.Errorf("trips: item %q: %w", itemID, apperr.ErrNotFound)
	}
	return nil
}

func requireGroup(t *trip.Trip, groupID string) error {
	if _, ok := t.Group(groupID); !ok {
		return fmt.Errorf("trips: group %q: %w", groupID, apperr.ErrNotFound)
	}
	return nil
}

func AddItem(itemID, groupID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, cat *catalog.State) error {
		inv, ok := cat.Item(itemID)
		if !ok {
			return fmt.Errorf("trips: catalog item %q: %w", itemID, apperr.ErrNotFound)
		}
		_, err := t.AddItem(inv, groupID)
		return err
	}
}

func AddBundle(bundleID, groupID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, cat *catalog.State) error {
		_, err := t.AddBundle(cat, bundleID, groupID)
		return err
	}
}

func SetField(itemID string, field trip.Field, value string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireItem(t, itemID); err != nil {
			return err
		}
		return t.UpdateItem(itemID, field, value)
	}
}

func RemoveItem(itemID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireItem(t, itemID); err != nil {
			return err
		}
		return t.RemoveItem(itemID)
	}
}

func Reorder(groupID string, from, to int) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireGroup(t, groupID); err != nil {
			return err
		}
		return t.Reorder(groupID, from, to)
	}
}

func MoveItem(itemID, groupID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireItem(t, itemID); err != nil {
			return err
		}
		if err := requireGroup(t, groupID); err != nil {
			return err
		}
		return t.MoveItem(itemID, groupID)
	}
}

func Toggle(itemID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireItem(t, itemID); err != nil {
			return err
		}
		return t.Toggle(itemID)
	}
}

func Clear() func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		t.Clear()
		return nil
	}
}

func Rename(name, date string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		return t.UpdateDetails(name, date)
	}
}

func AddGroup(name string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		_, err := t.AddGroup(name)
		return err
	}
}

func RenameGroup(groupID, name string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireGroup(t, groupID); err != nil {
			return err
		}
		return t.RenameGroup(groupID, name)
	}
}

func RemoveGroup(groupID string) func(*trip.Trip, *catalog.State) error {
	return func(t *trip.Trip, _ *catalog.State) error {
		if err := requireGroup(t, groupID); err != nil {
			return err
		}
		return t.DeleteGroup(groupID)
	}
}
