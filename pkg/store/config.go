package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config locates the local store.
type Config interface {
	BasePath() string
	Driver() string
}

// RemoteConfig selects the shared backing store used by sync.
type RemoteConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=none sqlite postgres"`
	DSN      string `mapstructure:"dsn" validate:"required_unless=Driver none"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=silent error warn info"`
}

// Enabled reports whether a remote store is configured.
func (r RemoteConfig) Enabled() bool {
	return r.Driver != "" && r.Driver != "none"
}

// FileConfig is the resolved configuration of the packlist CLI.
type FileConfig struct {
	Path       string       `mapstructure:"path" validate:"required"`
	DriverName string       `mapstructure:"driver" validate:"oneof=diskv badger"`
	User       string       `mapstructure:"user" validate:"required"`
	Remote     RemoteConfig `mapstructure:"remote"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Driver() string {
	return f.DriverName
}

// LoadConfig reads `.packlist.yaml` from $PACKLIST_CONFIG_PATH, the working
// directory or the home directory, with PACKLIST_* env overrides. A .env
// file in the working directory is loaded first.
func LoadConfig() (*FileConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "store: .env: %v\n", err)
	}

	v := viper.New()
	v.SetDefault("path", "~/.packlist.db")
	v.SetDefault("driver", DriverDiskv)
	v.SetDefault("user", "local")
	v.SetDefault("remote.driver", "none")
	v.SetDefault("remote.dsn", "")
	v.SetDefault("remote.log_level", "warn")
	v.SetConfigName(".packlist") // .yaml is implicit
	v.SetEnvPrefix("PACKLIST")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if override := os.Getenv("PACKLIST_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*FileConfig, error) {
	cfg := &FileConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("store: decode config: %w", err)
	}
	path, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", cfg.Path, err)
	}
	cfg.Path = path
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config field constraints.
func Validate(cfg *FileConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("store: invalid config: %w", err)
	}
	return nil
}
