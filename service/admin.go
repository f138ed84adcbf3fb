package service

import (
	"context"

	"github.com/viant/omnifs"
)

// RegisterBackend validates, constructs and registers a backend.
func (s *Service) RegisterBackend(ctx context.Context, config omnifs.Config, options omnifs.RegisterOptions) error {
	return s.registry.Register(ctx, config, options)
}

// ListBackends returns a summary of every backend in registration order.
func (s *Service) ListBackends() []omnifs.Summary {
	return s.registry.List()
}

// GetBackendConfig returns the configuration of a named backend.
func (s *Service) GetBackendConfig(name string) (omnifs.Config, error) {
	return s.registry.LookupConfig(name)
}

// SetDefaultBackend marks an existing backend as the default.
func (s *Service) SetDefaultBackend(name string) error {
	return s.registry.SetDefault(name)
}

// RemoveBackend unregisters a backend and disposes its driver.
func (s *Service) RemoveBackend(name string, force bool) error {
	return s.registry.Remove(name, force)
}

// CheckHealth probes one backend, or all of them when name is empty.
func (s *Service) CheckHealth(ctx context.Context, name string) map[string]bool {
	return s.registry.CheckHealth(ctx, name)
}

// Stats reports aggregate registry statistics.
func (s *Service) Stats() omnifs.Stats {
	return s.registry.Stats()
}
