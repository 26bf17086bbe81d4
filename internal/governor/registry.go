package governor

import (
	"fmt"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// Registry holds all selectable governor profiles in display order.
// It is fixed at construction; there is no runtime registration.
type Registry struct {
	profiles map[domain.GovernorID]Profile
	order    []domain.GovernorID
}

// NewRegistry creates a registry with the default auto-cpufreq modes.
func NewRegistry() *Registry {
	return NewRegistryWithProfiles(
		NewBalancedProfile(),
		NewPowersaveProfile(),
		NewPerformanceProfile(),
	)
}

// NewRegistryWithProfiles creates a registry with custom profiles (for testing).
// Duplicate IDs panic: the table is compiled in, so a duplicate is a programming error.
func NewRegistryWithProfiles(profiles ...Profile) *Registry {
	r := &Registry{
		profiles: make(map[domain.GovernorID]Profile, len(profiles)),
		order:    make([]domain.GovernorID, 0, len(profiles)),
	}
	for _, p := range profiles {
		r.register(p)
	}
	return r
}

func (r *Registry) register(p Profile) {
	if _, dup := r.profiles[p.ID()]; dup {
		panic(fmt.Sprintf("governor: duplicate profile %q", p.ID()))
	}
	r.profiles[p.ID()] = p
	r.order = append(r.order, p.ID())
}

// Get returns a profile by ID.
func (r *Registry) Get(id domain.GovernorID) (Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// GetAll returns all registered profiles in display order.
func (r *Registry) GetAll() []Profile {
	result := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.profiles[id])
	}
	return result
}

// List returns all profile IDs in display order.
func (r *Registry) List() []domain.GovernorID {
	ids := make([]domain.GovernorID, len(r.order))
	copy(ids, r.order)
	return ids
}

// ParseGovernorID resolves user input to a registered governor.
// Matching is case-insensitive and accepts the tool's aliases for balanced.
func (r *Registry) ParseGovernorID(name string) (domain.GovernorID, error) {
	id := domain.NormalizeGovernorID(name)
	if _, ok := r.profiles[id]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownGovernor, name)
	}
	return id, nil
}

// RegistryGovernorStore adapts Registry to implement domain.GovernorStore interface.
type RegistryGovernorStore struct {
	registry *Registry
}

// NewGovernorStore creates a GovernorStore backed by the default Registry.
func NewGovernorStore() domain.GovernorStore {
	return &RegistryGovernorStore{registry: NewRegistry()}
}

// NewGovernorStoreWithRegistry wraps an existing registry.
func NewGovernorStoreWithRegistry(r *Registry) domain.GovernorStore {
	return &RegistryGovernorStore{registry: r}
}

func (s *RegistryGovernorStore) GetAll() []domain.GovernorDescriptor {
	profiles := s.registry.GetAll()
	result := make([]domain.GovernorDescriptor, len(profiles))
	for i, p := range profiles {
		result[i] = ToDescriptor(p)
	}
	return result
}

func (s *RegistryGovernorStore) GetByID(id domain.GovernorID) (*domain.GovernorDescriptor, error) {
	p, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGovernor, id)
	}
	d := ToDescriptor(p)
	return &d, nil
}

func (s *RegistryGovernorStore) List() []domain.GovernorID {
	return s.registry.List()
}

// Ensure RegistryGovernorStore implements domain.GovernorStore.
var _ domain.GovernorStore = (*RegistryGovernorStore)(nil)
