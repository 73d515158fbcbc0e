package config

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/quasilyte/gdata/v2"
)

const (
	storeObject   = "config"
	storeProperty = "game"
)

// Store keeps a config in the per-user data directory. A Store without a
// manager only hands out defaults and ignores saves.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens the data directory of appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("config: open store %q: %w", appName, err)
	}
	return NewStore(m), nil
}

// NewStore wraps an open manager. m may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Exists reports whether a config has been saved.
func (s *Store) Exists() bool {
	return s.manager != nil && s.manager.ObjectPropExists(storeObject, storeProperty)
}

// Load returns the saved config, or the defaults when nothing was saved.
func (s *Store) Load() (*Config, error) {
	if !s.Exists() {
		return Default(), nil
	}

	data, err := s.manager.LoadObjectProp(storeObject, storeProperty)
	if err != nil {
		return nil, fmt.Errorf("config: load stored config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: stored config: %w", err)
	}

	glog.V(1).Infof("config: loaded stored config")
	return cfg, nil
}

// Save validates cfg and stores it.
func (s *Store) Save(cfg *Config) error {
	if s.manager == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(storeObject, storeProperty, data); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}

	glog.Infof("config: saved to the user data directory")
	return nil
}
