package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/irsalhamdi/realty-training/client"
	"github.com/irsalhamdi/realty-training/validate"
	"github.com/sirupsen/logrus"
)

type Gate interface {
	RequireAdmin() error
}

// Store holds the branding settings. They are public: the login screen
// shows them before anyone signs in.
type Store struct {
	backend client.Backend
	gate    Gate
	log     logrus.FieldLogger

	mu       sync.RWMutex
	settings Settings
}

func NewStore(backend client.Backend, gate Gate, log logrus.FieldLogger) *Store {
	return &Store{
		backend:  backend,
		gate:     gate,
		log:      log,
		settings: Defaults(),
	}
}

// Load fetches the settings. On failure the current values (defaults
// until a load succeeds) are kept.
func (s *Store) Load(ctx context.Context) error {
	var st Settings
	if err := s.backend.Get(ctx, "/settings", &st); err != nil {
		s.log.WithField("message", err).Warn("settings load failed, keeping current values")
		return fmt.Errorf("loading settings: %w", err)
	}

	s.mu.Lock()
	s.settings = st.WithDefaults()
	s.mu.Unlock()
	return nil
}

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save writes the provided fields and reloads.
func (s *Store) Save(ctx context.Context, up SettingsUp) error {
	if err := s.gate.RequireAdmin(); err != nil {
		return err
	}

	up, err := up.trimmed()
	if err != nil {
		return err
	}
	if err := validate.Check(up); err != nil {
		return err
	}

	if err := s.backend.Put(ctx, "/settings", up, nil); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("saving settings: written but resync failed: %w", err)
	}
	return nil
}
