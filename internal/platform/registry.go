package platform

import (
	"sync"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when registering a
	// platform whose name is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when registering a platform
	// with a name the paths package does not recognize.
	ErrInvalidPlatformName = errors.New("invalid platform name")
)

// Registry maps platform names to adapters. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	platforms map[string]Platform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[string]Platform),
	}
}

// Register adds an adapter to the registry. Returns an error if the
// adapter's name is invalid per paths.ValidPlatform or already taken.
func (r *Registry) Register(p Platform) error {
	name := p.Name()
	if !paths.ValidPlatform(name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.platforms[name]; exists {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", name)
	}

	r.platforms[name] = p
	return nil
}

// Get returns the adapter registered under name, or ErrUnknownPlatform.
func (r *Registry) Get(name string) (Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.platforms[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownPlatform, "%q", name)
	}
	return p, nil
}

// All returns registered adapters in the deterministic order defined by
// paths.Platforms().
func (r *Registry) All() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Platform, 0, len(r.platforms))
	for _, name := range paths.Platforms() {
		if p, ok := r.platforms[name]; ok {
			results = append(results, p)
		}
	}
	return results
}

// Available returns registered adapters whose host is installed on this
// machine, in deterministic order.
func (r *Registry) Available() []Platform {
	var results []Platform
	for _, p := range r.All() {
		d := DetectPlatform(p.Name())
		if d != nil && d.Status == StatusInstalled {
			results = append(results, p)
		}
	}
	return results
}
