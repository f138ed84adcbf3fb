// Package omnifs multiplexes uniform file operations across many named,
// URL-configured storage backends. The Registry owns the name to backend
// mapping, per-backend health flags and the default backend selection;
// byte-level storage is delegated to drivers built by an injected Factory.
package omnifs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// RegisterOptions controls how Register treats a new backend.
type RegisterOptions struct {
	// SetDefault makes the backend the registry default. The first backend
	// ever registered becomes default regardless of this flag.
	SetDefault bool
	// ValidateConnection probes the backend with a root listing before the
	// entry is admitted; a failed probe fails the registration.
	ValidateConnection bool
}

// Summary is one row of List output.
type Summary struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	ReadOnly    bool   `json:"readonly"`
	Default     bool   `json:"isDefault"`
	Healthy     bool   `json:"healthStatus"`
}

// Stats aggregates the current registry state.
type Stats struct {
	TotalBackends    int      `json:"totalBackends"`
	DefaultBackend   string   `json:"defaultBackend,omitempty"`
	HealthyBackends  int      `json:"healthyBackends"`
	ReadonlyBackends int      `json:"readonlyBackends"`
	Schemes          []string `json:"schemesInUse"`
}

// Backend is a resolved registry entry snapshot handed to operation routing.
type Backend struct {
	Name   string
	Config Config
	Driver Driver
}

type entry struct {
	config  Config
	driver  Driver
	healthy bool
}

// Registry maps backend names to driver instances with health and default
// selection state. All mutations run under a single mutex; reads observe a
// consistent snapshot of the mapping and the default pointer. A Registry is
// created empty, serves until Close and never persists its state.
type Registry struct {
	factory Factory

	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	current string
}

// New creates an empty registry backed by the given driver factory.
func New(factory Factory) *Registry {
	return &Registry{
		factory: factory,
		entries: map[string]*entry{},
	}
}

// Register validates the config, builds a driver for it and adds the backend
// to the registry. Re-registration under an existing name replaces the entry
// in place (keeping its position) and closes the displaced driver. When
// ValidateConnection is set a failed probe aborts the registration without
// leaving any entry behind.
func (r *Registry) Register(ctx context.Context, config Config, options RegisterOptions) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if r.factory == nil {
		return fmt.Errorf("%w: registry has no driver factory", ErrInvalidConfig)
	}
	log.Printf("registering backend %q url=%v", config.Name, config.URL)
	driver, err := r.factory(&config)
	if err != nil {
		return fmt.Errorf("create driver for backend %q: %w", config.Name, err)
	}
	if options.ValidateConnection {
		if _, err := driver.List(ctx, "/"); err != nil {
			_ = driver.Close()
			return fmt.Errorf("%w: %q: %v", ErrConnection, config.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if previous, ok := r.entries[config.Name]; ok {
		log.Printf("backend %q already exists, replacing", config.Name)
		if previous.driver != nil {
			_ = previous.driver.Close()
		}
	} else {
		r.order = append(r.order, config.Name)
	}
	r.entries[config.Name] = &entry{config: config, driver: driver, healthy: true}
	if options.SetDefault || r.current == "" {
		r.current = config.Name
		log.Printf("set %q as default backend", config.Name)
	}
	return nil
}

// Resolve returns a snapshot of the backend registered under name; an empty
// name resolves to the current default.
func (r *Registry) Resolve(name string) (*Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		if r.current == "" {
			return nil, ErrNoDefault
		}
		name = r.current
	}
	e, ok := r.entries[name]
	if !ok {
		return nil, r.notFound(name)
	}
	return &Backend{Name: name, Config: e.config, Driver: e.driver}, nil
}

// Get resolves a backend name (empty means default) to its driver.
func (r *Registry) Get(name string) (Driver, error) {
	backend, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return backend.Driver, nil
}

// LookupConfig returns the configuration registered under name.
func (r *Registry) LookupConfig(name string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	return e.config, nil
}

// List returns backend summaries in registration order.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summaries := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		summaries = append(summaries, Summary{
			Name:        name,
			URL:         e.config.URL,
			Description: e.config.Description,
			ReadOnly:    e.config.ReadOnly,
			Default:     name == r.current,
			Healthy:     e.healthy,
		})
	}
	return summaries
}

// SetDefault makes name the registry default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return r.notFound(name)
	}
	r.current = name
	log.Printf("set %q as default backend", name)
	return nil
}

// Remove deletes a backend and closes its driver. Removing the current
// default requires force; the default then moves to the oldest remaining
// backend, or clears when none remain.
func (r *Registry) Remove(name string, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return r.notFound(name)
	}
	if name == r.current && !force {
		return fmt.Errorf("%w: %q, use force to remove it anyway", ErrDefaultInUse, name)
	}
	delete(r.entries, name)
	for i, candidate := range r.order {
		if candidate == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if e.driver != nil {
		_ = e.driver.Close()
	}
	if name == r.current {
		r.current = ""
		if len(r.order) > 0 {
			r.current = r.order[0]
			log.Printf("default backend reassigned to %q", r.current)
		}
	}
	log.Printf("removed backend %q", name)
	return nil
}

// CheckHealth probes the named backend, or every registered backend when
// name is empty, with a root listing. Outcomes update the cached health
// flags and are returned per backend; an unknown name reports false.
// CheckHealth never fails.
func (r *Registry) CheckHealth(ctx context.Context, name string) map[string]bool {
	r.mu.RLock()
	targets := make([]string, 0, len(r.order))
	drivers := map[string]Driver{}
	if name != "" {
		if e, ok := r.entries[name]; ok {
			targets = append(targets, name)
			drivers[name] = e.driver
		}
	} else {
		for _, candidate := range r.order {
			targets = append(targets, candidate)
			drivers[candidate] = r.entries[candidate].driver
		}
	}
	r.mu.RUnlock()

	if name != "" && len(targets) == 0 {
		return map[string]bool{name: false}
	}

	// Probes run outside the lock so a slow backend cannot stall the registry.
	result := make(map[string]bool, len(targets))
	for _, target := range targets {
		_, err := drivers[target].List(ctx, "/")
		if err != nil {
			log.Printf("health check failed for backend %q: %v", target, err)
		}
		result[target] = err == nil
	}

	r.mu.Lock()
	for target, healthy := range result {
		if e, ok := r.entries[target]; ok {
			e.healthy = healthy
		}
	}
	r.mu.Unlock()
	return result
}

// Stats computes aggregate counts over the current registry state. Schemes
// are deduplicated in registration order.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := Stats{
		TotalBackends:  len(r.order),
		DefaultBackend: r.current,
		Schemes:        []string{},
	}
	seen := map[string]bool{}
	for _, name := range r.order {
		e := r.entries[name]
		if e.healthy {
			stats.HealthyBackends++
		}
		if e.config.ReadOnly {
			stats.ReadonlyBackends++
		}
		if scheme := e.config.Scheme(); !seen[scheme] {
			seen[scheme] = true
			stats.Schemes = append(stats.Schemes, scheme)
		}
	}
	return stats
}

// Close disposes every driver and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, name := range r.order {
		e := r.entries[name]
		if e.driver == nil {
			continue
		}
		if err := e.driver.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close backend %q: %w", name, err)
		}
	}
	r.entries = map[string]*entry{}
	r.order = nil
	r.current = ""
	return firstErr
}

// notFound builds a lookup error enumerating the registered names; callers
// hold at least the read lock.
func (r *Registry) notFound(name string) error {
	available := "none"
	if len(r.order) > 0 {
		available = strings.Join(r.order, ", ")
	}
	return fmt.Errorf("%w: %q, available backends: %v", ErrBackendNotFound, name, available)
}
