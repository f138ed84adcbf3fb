package service

import (
	"context"
	"log"

	"github.com/viant/omnifs"
	"github.com/viant/omnifs/dal"
)

// Service routes gateway operations to the backends held in its registry.
// It is constructed once, injected into every request-handling entry point
// and disposed with Close.
type Service struct {
	factory    omnifs.Factory
	registry   *omnifs.Registry
	config     *Config
	configPath string
	backendURL string
}

// Option customizes a Service.
type Option func(*Service)

// WithFactory overrides the storage driver factory; dal.New is the default.
func WithFactory(factory omnifs.Factory) Option {
	return func(s *Service) {
		s.factory = factory
	}
}

// WithConfig supplies an in-memory startup configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithConfigFile loads the startup configuration from a JSON or YAML file.
func WithConfigFile(path string) Option {
	return func(s *Service) {
		s.configPath = path
	}
}

// WithBackendURL enables single-backend compatibility mode: the URL is
// registered under the name "default" and becomes the default backend. It
// is ignored when a configuration file is supplied.
func WithBackendURL(rawURL string) Option {
	return func(s *Service) {
		s.backendURL = rawURL
	}
}

// New builds a Service and registers its configured backends. Failures of
// individual configuration elements are logged and skipped; a failure of the
// compatibility URL backend is fatal.
func New(ctx context.Context, options ...Option) (*Service, error) {
	s := &Service{factory: dal.New}
	for _, option := range options {
		option(s)
	}
	s.registry = omnifs.New(s.factory)

	if s.configPath != "" {
		config, err := LoadConfig(ctx, s.configPath)
		if err != nil {
			return nil, err
		}
		s.config = config
	}
	if s.config != nil {
		s.applyConfig(ctx, s.config)
	} else if s.backendURL != "" {
		log.Printf("single backend mode url=%v", s.backendURL)
		config := omnifs.Config{
			Name:        "default",
			URL:         s.backendURL,
			Description: "Legacy single backend",
		}
		err := s.registry.Register(ctx, config, omnifs.RegisterOptions{SetDefault: true, ValidateConnection: true})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// applyConfig registers every configured backend, skipping failed elements.
func (s *Service) applyConfig(ctx context.Context, config *Config) {
	loaded := 0
	for _, backend := range config.Backends {
		if err := s.registerConfigured(ctx, backend); err != nil {
			log.Printf("skipping backend %q from config: %v", backend.Name, err)
			continue
		}
		log.Printf("loaded backend %q from config", backend.Name)
		loaded++
	}
	log.Printf("loaded %d of %d backend(s) from config", loaded, len(config.Backends))
}

func (s *Service) registerConfigured(ctx context.Context, backend Backend) error {
	rawURL := backend.URL
	if backend.URLSecret != "" {
		expanded, err := ExpandURLWithSecret(ctx, rawURL, backend.URLSecret)
		if err != nil {
			return err
		}
		rawURL = expanded
	}
	config := omnifs.Config{
		Name:          backend.Name,
		URL:           rawURL,
		Description:   backend.Description,
		ReadOnly:      backend.ReadOnly,
		Timeout:       backend.Timeout,
		RetryAttempts: backend.RetryAttempts,
	}
	return s.registry.Register(ctx, config, omnifs.RegisterOptions{
		SetDefault:         backend.Default,
		ValidateConnection: backend.validateConnection(),
	})
}

// Registry exposes the underlying registry.
func (s *Service) Registry() *omnifs.Registry {
	return s.registry
}

// Close disposes every registered backend driver.
func (s *Service) Close() error {
	return s.registry.Close()
}
