package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	homedir.DisableCache = true
	t.Cleanup(func() {
		_ = os.Chdir(old)
		homedir.DisableCache = false
		homedir.Reset()
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PACKLIST_CONFIG_PATH", dir)
	t.Setenv("HOME", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.User != "local" || cfg.Driver() != DriverDiskv || cfg.Remote.Enabled() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.BasePath() != filepath.Join(dir, ".packlist.db") {
		t.Fatalf("expected expanded path, got %q", cfg.BasePath())
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PACKLIST_CONFIG_PATH", dir)
	t.Setenv("PACKLIST_USER", "alice")
	yaml := "driver: badger\npath: " + filepath.Join(dir, "db") + "\nremote:\n  driver: sqlite\n  dsn: remote.db\n"
	if err := os.WriteFile(filepath.Join(dir, ".packlist.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Driver() != DriverBadger || cfg.User != "alice" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Remote.Enabled() || cfg.Remote.DSN != "remote.db" || cfg.Remote.LogLevel != "warn" {
		t.Fatalf("unexpected remote %+v", cfg.Remote)
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		cfg     FileConfig
		wantErr bool
	}{
		"ok": {
			cfg: FileConfig{Path: "/tmp/x", DriverName: DriverDiskv, User: "u", Remote: RemoteConfig{Driver: "none", LogLevel: "warn"}},
		},
		"bad driver": {
			cfg:     FileConfig{Path: "/tmp/x", DriverName: "bolt", User: "u", Remote: RemoteConfig{Driver: "none", LogLevel: "warn"}},
			wantErr: true,
		},
		"missing dsn": {
			cfg:     FileConfig{Path: "/tmp/x", DriverName: DriverDiskv, User: "u", Remote: RemoteConfig{Driver: "postgres", LogLevel: "warn"}},
			wantErr: true,
		},
		"blank user": {
			cfg:     FileConfig{Path: "/tmp/x", DriverName: DriverDiskv, Remote: RemoteConfig{Driver: "none", LogLevel: "warn"}},
			wantErr: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := tc.cfg
			err := Validate(&cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr %v, got %v", tc.wantErr, err)
			}
		})
	}
}
