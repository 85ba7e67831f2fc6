package client

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kochabx/auth/config"
	"github.com/kochabx/auth/core/validator"
	"github.com/kochabx/auth/errors"
	"github.com/kochabx/auth/store"
	storeetcd "github.com/kochabx/auth/store/etcd"
	storeredis "github.com/kochabx/auth/store/redis"
)

// FileConfig drives client construction from a configuration file.
// AutoRefresh and AutoLogin are inverted in the file (disableXxx) so
// that an absent key keeps the default-on behavior.
type FileConfig struct {
	Backend struct {
		URL     string        `mapstructure:"url" validate:"required,url"`
		Timeout time.Duration `mapstructure:"timeout" default:"10s"`
	} `mapstructure:"backend"`

	DisableAutoRefresh bool          `mapstructure:"disableAutoRefresh"`
	DisableAutoLogin   bool          `mapstructure:"disableAutoLogin"`
	RefreshInterval    time.Duration `mapstructure:"refreshInterval"`
	StorageKey         string        `mapstructure:"storageKey" default:"refreshToken"`

	Storage StorageConfig `mapstructure:"storage"`
}

// StorageConfig selects the refresh token store backend.
type StorageConfig struct {
	Kind string `mapstructure:"kind" default:"memory" validate:"oneof=memory file noop redis etcd"`

	// Path is the token file location, file kind only.
	Path string `mapstructure:"path"`

	Redis *storeredis.Config `mapstructure:"redis"`
	Etcd  *storeetcd.Config  `mapstructure:"etcd"`
}

// buildStorage instantiates the configured store.
func (sc StorageConfig) buildStorage() (store.Storage, error) {
	switch sc.Kind {
	case "", "memory":
		return store.NewMemory(), nil
	case "noop":
		return store.Noop{}, nil
	case "file":
		if sc.Path == "" {
			return nil, errors.BadRequest("storage.path is required for the file store")
		}
		return store.NewFile(sc.Path)
	case "redis":
		cfg := sc.Redis
		if cfg == nil {
			cfg = &storeredis.Config{}
		}
		return storeredis.New(cfg)
	case "etcd":
		cfg := sc.Etcd
		if cfg == nil {
			cfg = &storeetcd.Config{}
		}
		return storeetcd.New(cfg)
	default:
		return nil, errors.BadRequest("unknown storage kind %q", sc.Kind)
	}
}

// NewFromFile loads a FileConfig from path and builds the client from
// it. Extra options are applied after the file, so they win.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	name := base[:len(base)-len(filepath.Ext(base))]

	fc := &FileConfig{}
	v := viper.New()
	loader := config.NewFileLoader(name, []string{dir}, v, validator.Validate)
	if err := config.New(fc, config.WithViper(v), config.WithLoader(loader)).Load(); err != nil {
		return nil, err
	}

	storage, err := fc.Storage.buildStorage()
	if err != nil {
		return nil, err
	}

	fileOpts := []Option{
		WithTimeout(fc.Backend.Timeout),
		WithAutoRefresh(!fc.DisableAutoRefresh),
		WithAutoLogin(!fc.DisableAutoLogin),
		WithStorage(storage),
		WithStorageKey(fc.StorageKey),
		WithRefreshInterval(fc.RefreshInterval),
	}

	return New(fc.Backend.URL, append(fileOpts, opts...)...), nil
}
