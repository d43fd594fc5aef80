package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Registration errors are programmer-error class failures and are meant to
// fail loudly at composition time, unlike the runtime errors elsewhere in
// the core which are converted into results.
var (
	// ErrDisposed is returned by every method after Dispose.
	ErrDisposed = errors.New("container is disposed")
	// ErrNotRegistered is returned when resolving an unknown service name.
	ErrNotRegistered = errors.New("service not registered")
	// ErrAlreadyRegistered is returned on a duplicate registration.
	ErrAlreadyRegistered = errors.New("service already registered")
	// ErrCircularDependency is returned when resolution re-enters a service
	// that is currently being resolved.
	ErrCircularDependency = errors.New("circular dependency detected")
)

// Factory builds a service from its resolved dependencies, keyed by name.
type Factory func(deps map[string]any) (any, error)

// Disposer is an optional capability: instances implementing it are torn
// down during Container.Dispose.
type Disposer interface {
	Dispose()
}

type registrationKind int

const (
	kindInstance registrationKind = iota
	kindFactory
	kindSingleton
)

type registration struct {
	kind     registrationKind
	value    any
	factory  Factory
	deps     []string
	instance any
	built    bool
}

// Container is a named-service registry with three registration kinds:
// instances (stored as-is), factories (re-invoked on every Get) and
// singletons (built lazily on first Get, cached thereafter). Dependency
// resolution is name-based and recursive with cycle detection.
type Container struct {
	mu        sync.Mutex
	services  map[string]*registration
	resolving map[string]bool
	disposed  bool
	logger    *slog.Logger
}

// NewContainer creates an empty container.
func NewContainer(logger *slog.Logger) *Container {
	return &Container{
		services:  make(map[string]*registration),
		resolving: make(map[string]bool),
		logger:    logger.With("component", "registry"),
	}
}

// RegisterInstance stores a pre-built value under a name.
func (c *Container) RegisterInstance(name string, value any) error {
	return c.register(name, &registration{kind: kindInstance, value: value})
}

// RegisterFactory registers a constructor invoked on every Get. The named
// dependencies are resolved first and passed to the factory.
func (c *Container) RegisterFactory(name string, deps []string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("register %q: factory is required", name)
	}
	return c.register(name, &registration{kind: kindFactory, factory: factory, deps: deps})
}

// RegisterSingleton registers a constructor invoked at most once; the built
// instance is cached and returned on subsequent Gets.
func (c *Container) RegisterSingleton(name string, deps []string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("register %q: factory is required", name)
	}
	return c.register(name, &registration{kind: kindSingleton, factory: factory, deps: deps})
}

func (c *Container) register(name string, reg *registration) error {
	if name == "" {
		return fmt.Errorf("service name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if _, exists := c.services[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrAlreadyRegistered)
	}

	c.services[name] = reg
	return nil
}

// Has reports whether a service name is registered.
func (c *Container) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.services[name]
	return ok
}

// Names returns all registered service names, sorted.
func (c *Container) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.services))
	for name := range c.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a service by name, building it (and its dependencies,
// recursively) as needed. Requesting a service that is currently being
// resolved fails fast with ErrCircularDependency naming the chain.
func (c *Container) Get(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil, ErrDisposed
	}
	return c.resolveLocked(name, nil)
}

func (c *Container) resolveLocked(name string, chain []string) (any, error) {
	reg, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrNotRegistered)
	}

	if c.resolving[name] {
		cycle := append(chain, name)
		return nil, fmt.Errorf("get %q: %w (chain: %s)", name, ErrCircularDependency, strings.Join(cycle, " -> "))
	}

	switch reg.kind {
	case kindInstance:
		return reg.value, nil

	case kindSingleton:
		if reg.built {
			return reg.instance, nil
		}
		instance, err := c.buildLocked(name, reg, chain)
		if err != nil {
			return nil, err
		}
		reg.instance = instance
		reg.built = true
		return instance, nil

	default: // kindFactory
		return c.buildLocked(name, reg, chain)
	}
}

func (c *Container) buildLocked(name string, reg *registration, chain []string) (any, error) {
	c.resolving[name] = true
	defer delete(c.resolving, name)

	deps := make(map[string]any, len(reg.deps))
	for _, dep := range reg.deps {
		resolved, err := c.resolveLocked(dep, append(chain, name))
		if err != nil {
			return nil, fmt.Errorf("get %q: resolving dependency %q: %w", name, dep, err)
		}
		deps[dep] = resolved
	}

	instance, err := reg.factory(deps)
	if err != nil {
		return nil, fmt.Errorf("get %q: factory failed: %w", name, err)
	}
	return instance, nil
}

// Dispose tears down every instantiated instance and singleton that
// implements Disposer, swallowing individual disposal panics, then clears
// all registrations. The container is unusable afterwards.
func (c *Container) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}

	for name, reg := range c.services {
		var instance any
		switch {
		case reg.kind == kindInstance:
			instance = reg.value
		case reg.kind == kindSingleton && reg.built:
			instance = reg.instance
		}

		if d, ok := instance.(Disposer); ok {
			c.disposeOne(name, d)
		}
	}

	c.services = make(map[string]*registration)
	c.resolving = make(map[string]bool)
	c.disposed = true
}

func (c *Container) disposeOne(name string, d Disposer) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("dispose failed", "service", name, "panic", fmt.Sprint(r))
		}
	}()
	d.Dispose()
}
