package omnifs

import (
	"context"
	"io"
	"time"
)

// Item describes one object returned by listing or stat. Path is relative to
// the backend root; the remaining fields ride along from the driver.
type Item struct {
	Path     string    `json:"path"`
	Name     string    `json:"name,omitempty"`
	URL      string    `json:"url,omitempty"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Dir      bool      `json:"dir"`
}

// Driver performs file operations for one configured backend. Instances are
// produced by a Factory and owned by the registry, which calls Close when an
// entry is replaced, removed or the registry shuts down. Paths are relative
// to the backend root; every method may fail with a driver-specific error
// the registry treats as opaque.
type Driver interface {
	List(ctx context.Context, path string) ([]Item, error)
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, reader io.Reader) error
	Stat(ctx context.Context, path string) (*Item, error)
	Copy(ctx context.Context, src, dst string) error
	Move(ctx context.Context, src, dst string) error
	CreateDir(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	Close() error
}

// Factory builds a Driver from a validated backend configuration. The
// configuration exposes the parsed scheme and option bag; their
// interpretation belongs to the factory, not the registry.
type Factory func(config *Config) (Driver, error)
