// Package host provides an in-memory host platform that records entity
// registrations per compilation.
package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// Ensure interface compliance
var (
	_ ports.HostRegistrarFactory = (*ManifestStore)(nil)
	_ ports.HostRegistrar        = (*Registrar)(nil)
)

// Manifest is the ordered list of entities registered by one compilation.
type Manifest struct {
	CompilationID values.CompilationID

	mu      sync.RWMutex
	entries []entities.RegisteredHandle
	configs map[values.Identifier]*entities.EntityConfig
}

// Entries returns a copy of the registered handles in registration order.
func (m *Manifest) Entries() []entities.RegisteredHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entities.RegisteredHandle, len(m.entries))
	copy(out, m.entries)
	return out
}

// Config returns the registration payload recorded for id.
func (m *Manifest) Config(id values.Identifier) (*entities.EntityConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.configs[id]
	return cfg, ok
}

// ManifestStore keeps one manifest per compilation.
// Useful for testing and ephemeral storage.
type ManifestStore struct {
	manifests map[values.CompilationID]*Manifest
	mu        sync.RWMutex
}

// NewManifestStore creates an empty store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{
		manifests: make(map[values.CompilationID]*Manifest),
	}
}

// NewRegistrar starts a fresh manifest for id. Compiling the same
// configuration again replaces its previous manifest.
func (s *ManifestStore) NewRegistrar(id values.CompilationID) ports.HostRegistrar {
	m := &Manifest{
		CompilationID: id,
		configs:       make(map[values.Identifier]*entities.EntityConfig),
	}

	s.mu.Lock()
	s.manifests[id] = m
	s.mu.Unlock()

	return &Registrar{manifest: m}
}

// FindByID retrieves the manifest of a compilation.
func (s *ManifestStore) FindByID(id values.CompilationID) (*Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.manifests[id]
	if !ok {
		return nil, fmt.Errorf("manifest not found: %s", id)
	}
	return m, nil
}

// Registrar registers entities into one manifest.
type Registrar struct {
	manifest *Manifest
}

// Register records cfg and returns its handle. Registering the same
// identifier twice is an error.
func (r *Registrar) Register(ctx context.Context, cfg *entities.EntityConfig) (entities.RegisteredHandle, error) {
	if err := ctx.Err(); err != nil {
		return entities.RegisteredHandle{}, err
	}
	if cfg == nil {
		return entities.RegisteredHandle{}, fmt.Errorf("cannot register nil entity")
	}

	m := r.manifest
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.configs[cfg.ID]; dup {
		return entities.RegisteredHandle{}, fmt.Errorf("entity %s is already registered", cfg.ID)
	}

	stored := *cfg
	m.configs[cfg.ID] = &stored
	handle := entities.RegisteredHandle{ID: cfg.ID, Kind: cfg.Kind, Order: len(m.entries) + 1}
	m.entries = append(m.entries, handle)
	return handle, nil
}
