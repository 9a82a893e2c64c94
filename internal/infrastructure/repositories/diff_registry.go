package repositories

import (
	"fmt"
	"slices"

	"github.com/rios0rios0/bumpchain/internal/domain/entities"
	domainRepos "github.com/rios0rios0/bumpchain/internal/domain/repositories"
)

// DiffRegistry holds the available diff providers keyed by name.
type DiffRegistry struct {
	providers map[string]domainRepos.DiffRepository
}

// NewDiffRegistry creates an empty diff registry.
func NewDiffRegistry() *DiffRegistry {
	return &DiffRegistry{
		providers: make(map[string]domainRepos.DiffRepository),
	}
}

// Register adds a provider under its name.
func (r *DiffRegistry) Register(provider domainRepos.DiffRepository) {
	r.providers[provider.Name()] = provider
}

// Get returns the provider with the given name.
func (r *DiffRegistry) Get(name string) (domainRepos.DiffRepository, error) {
	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", entities.ErrUnknownDiffProvider, name, r.Names())
	}
	return provider, nil
}

// Names returns the registered provider names, sorted.
func (r *DiffRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
