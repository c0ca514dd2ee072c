package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Namespace names one per-user document kind.
type Namespace string

const (
	NamespaceCatalog    Namespace = "catalog"
	NamespaceTrips      Namespace = "trips"
	NamespaceFolders    Namespace = "folders"
	NamespaceGroups     Namespace = "groups"
	NamespaceCategories Namespace = "categories"
	NamespaceBundles    Namespace = "bundles"
	NamespaceTheme      Namespace = "theme"
)

// AllNamespaces lists every namespace the loader understands.
var AllNamespaces = []Namespace{
	NamespaceCatalog,
	NamespaceTrips,
	NamespaceFolders,
	NamespaceGroups,
	NamespaceCategories,
	NamespaceBundles,
	NamespaceTheme,
}

// Valid reports whether ns is a known namespace.
func (ns Namespace) Valid() bool {
	for _, n := range AllNamespaces {
		if n == ns {
			return true
		}
	}
	return false
}

// ErrNotFound is returned by Load when nothing is stored for the key.
var ErrNotFound = errors.New("store: not found")

// Persistence defines the per-user document store. Every Save is a full
// overwrite of one namespace.
type Persistence interface {
	Load(ctx context.Context, userID string, ns Namespace) ([]byte, error)
	Save(ctx context.Context, userID string, ns Namespace, data []byte) error
	Delete(ctx context.Context, userID string, ns Namespace) error
	Namespaces(ctx context.Context, userID string) ([]Namespace, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

const (
	DriverDiskv  = "diskv"
	DriverBadger = "badger"
)

// Load opens the Persistence selected by cfg, reading the config from the
// environment when cfg is nil.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	switch cfg.Driver() {
	case "", DriverDiskv:
		return openDiskv(cfg.BasePath())
	case DriverBadger:
		return openBadger(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}

func checkKey(userID string, ns Namespace) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("store: user id required")
	}
	if !ns.Valid() {
		return fmt.Errorf("store: unknown namespace %q", ns)
	}
	return nil
}
