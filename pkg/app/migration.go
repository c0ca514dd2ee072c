package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/packlist/pkg/snapshot"
	"tableflip.dev/packlist/pkg/store"
)

// legacyNamespaces were written separately before the catalog document
// held every catalog entity.
var legacyNamespaces = []store.Namespace{
	store.NamespaceFolders,
	store.NamespaceGroups,
	store.NamespaceCategories,
	store.NamespaceBundles,
}

// MigrationStatus describes what is stored for the current user and whether
// it predates the current snapshot version.
type MigrationStatus struct {
	Stored         []store.Namespace
	Legacy         []store.Namespace
	CatalogVersion int
	// LegacyTrips counts stored trips written before owner and group ids
	// were required.
	LegacyTrips int
}

// Pending reports whether Migrate would rewrite anything.
func (m MigrationStatus) Pending() bool {
	if len(m.Legacy) > 0 || m.LegacyTrips > 0 {
		return true
	}
	return m.CatalogVersion != 0 && m.CatalogVersion < snapshot.CurrentVersion
}

// MigrationStatus inspects the stored namespaces without changing them.
func (s *Service) MigrationStatus(ctx context.Context) (MigrationStatus, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return MigrationStatus{}, err
		}
	}
	if s.Persistence == nil {
		return MigrationStatus{}, errNoPersistence
	}
	stored, err := s.Persistence.Namespaces(ctx, s.userID())
	if err != nil {
		return MigrationStatus{}, err
	}
	status := MigrationStatus{Stored: stored}
	for _, ns := range stored {
		if isLegacyNamespace(ns) {
			status.Legacy = append(status.Legacy, ns)
		}
		if ns != store.NamespaceCatalog && ns != store.NamespaceTrips {
			continue
		}
		data, err := s.Persistence.Load(ctx, s.userID(), ns)
		if err != nil {
			return MigrationStatus{}, fmt.Errorf("app: load %s: %w", ns, err)
		}
		if ns == store.NamespaceCatalog {
			status.CatalogVersion = catalogVersion(data)
			continue
		}
		if status.LegacyTrips, err = snapshot.LegacyTrips(data); err != nil {
			return MigrationStatus{}, fmt.Errorf("app: inspect %s: %w", ns, err)
		}
	}
	return status, nil
}

// Migrate rewrites the stored snapshot at the current version and removes
// the legacy namespaces it was assembled from.
func (s *Service) Migrate(ctx context.Context) (MigrationStatus, error) {
	before, err := s.MigrationStatus(ctx)
	if err != nil {
		return MigrationStatus{}, err
	}
	if !before.Pending() {
		return before, nil
	}
	if _, err := s.update(ctx, func(*snapshot.Snapshot) error { return nil }); err != nil {
		return before, err
	}
	for _, ns := range before.Legacy {
		if err := s.Persistence.Delete(ctx, s.userID(), ns); err != nil && !errors.Is(err, store.ErrNotFound) {
			return before, fmt.Errorf("app: delete %s: %w", ns, err)
		}
	}
	return before, nil
}

func isLegacyNamespace(ns store.Namespace) bool {
	for _, l := range legacyNamespaces {
		if l == ns {
			return true
		}
	}
	return false
}

// catalogVersion reads the version of a stored catalog document. A bare item
// array or a document without a version is version 1.
func catalogVersion(data []byte) int {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 1
	}
	var doc struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil || doc.Version == 0 {
		return 1
	}
	return doc.Version
}
