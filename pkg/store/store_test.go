package store

import (
	"context"
	"errors"
	"testing"
)

func drivers() []string {
	return []string{DriverDiskv, DriverBadger}
}

func TestPersistenceRoundTrip(t *testing.T) {
	for _, driver := range drivers() {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			p, err := Load(testConfig{path: t.TempDir(), driver: driver})
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			defer p.Close()

			if _, err := p.Load(ctx, "alice", NamespaceCatalog); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}

			if err := p.Save(ctx, "alice", NamespaceCatalog, []byte(`{"items":[]}`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := p.Save(ctx, "alice", NamespaceCatalog, []byte(`{"items":[1]}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if err := p.Save(ctx, "alice", NamespaceTheme, []byte(`dark`)); err != nil {
				t.Fatalf("save theme: %v", err)
			}
			if err := p.Save(ctx, "bob", NamespaceTrips, []byte(`[]`)); err != nil {
				t.Fatalf("save bob: %v", err)
			}

			got, err := p.Load(ctx, "alice", NamespaceCatalog)
			if err != nil {
				t.Fatalf("load catalog: %v", err)
			}
			if string(got) != `{"items":[1]}` {
				t.Fatalf("unexpected data %s", got)
			}

			list, err := p.Namespaces(ctx, "alice")
			if err != nil {
				t.Fatalf("namespaces: %v", err)
			}
			if len(list) != 2 || list[0] != NamespaceCatalog || list[1] != NamespaceTheme {
				t.Fatalf("unexpected namespaces %v", list)
			}

			if err := p.Delete(ctx, "alice", NamespaceTheme); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := p.Delete(ctx, "alice", NamespaceTheme); err != nil {
				t.Fatalf("delete twice: %v", err)
			}
			if _, err := p.Load(ctx, "alice", NamespaceTheme); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found after delete, got %v", err)
			}
		})
	}
}

func TestPersistenceRejectsBadKeys(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	if err := p.Save(ctx, " ", NamespaceCatalog, nil); err == nil {
		t.Fatal("expected error for blank user")
	}
	if err := p.Save(ctx, "alice", Namespace("secrets"), nil); err == nil {
		t.Fatal("expected error for unknown namespace")
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := Load(testConfig{path: t.TempDir(), driver: "bolt"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestUserDirEncoding(t *testing.T) {
	for _, id := range []string{"local", "a/b", "user@example.com", "ユーザー"} {
		key := toKey(id, NamespaceTrips)
		user, ns, ok := fromKey(key)
		if !ok || user != id || ns != NamespaceTrips {
			t.Errorf("round trip %q: got %q %q %v", id, user, ns, ok)
		}
	}
}
