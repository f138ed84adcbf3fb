package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/omnifs"
)

// resolve returns the named backend, or the default one when name is empty.
func (s *Service) resolve(name string) (*omnifs.Backend, error) {
	return s.registry.Resolve(name)
}

// resolveWritable resolves a backend and rejects read-only ones before any
// driver call is made.
func (s *Service) resolveWritable(name string) (*omnifs.Backend, error) {
	backend, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if backend.Config.ReadOnly {
		return nil, fmt.Errorf("%w: %q is configured as read-only", omnifs.ErrReadOnly, backend.Name)
	}
	return backend, nil
}

func opErr(op string, backend, path string, err error) error {
	if err == nil {
		return nil
	}
	return &omnifs.OpError{Op: op, Backend: backend, Path: path, Err: err}
}

// List enumerates items under path; an empty path lists the backend root.
func (s *Service) List(ctx context.Context, path, backendName string) ([]omnifs.Item, error) {
	backend, err := s.resolve(backendName)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = "/"
	}
	items, err := backend.Driver.List(ctx, path)
	if err != nil {
		return nil, opErr("list", backend.Name, path, err)
	}
	return items, nil
}

// Read returns the full content of a file.
func (s *Service) Read(ctx context.Context, path, backendName string) ([]byte, error) {
	backend, err := s.resolve(backendName)
	if err != nil {
		return nil, err
	}
	data, err := backend.Driver.Download(ctx, path)
	if err != nil {
		return nil, opErr("read", backend.Name, path, err)
	}
	return data, nil
}

// Write stores data at path, creating or overwriting the file.
func (s *Service) Write(ctx context.Context, path string, data []byte, backendName string) error {
	backend, err := s.resolveWritable(backendName)
	if err != nil {
		return err
	}
	return opErr("write", backend.Name, path, backend.Driver.Upload(ctx, path, bytes.NewReader(data)))
}

// Copy copies a file, possibly across backends. Within a single backend the
// driver's native copy runs; across backends the file is read in full from
// the source and written to the destination. No lock is held across the
// bridge and a failed write is not compensated.
func (s *Service) Copy(ctx context.Context, srcPath, dstPath, srcBackendName, dstBackendName string) error {
	src, err := s.resolve(srcBackendName)
	if err != nil {
		return err
	}
	dst, err := s.resolveWritable(dstBackendName)
	if err != nil {
		return err
	}
	if src.Name == dst.Name {
		return opErr("copy", src.Name, srcPath, src.Driver.Copy(ctx, srcPath, dstPath))
	}
	data, err := src.Driver.Download(ctx, srcPath)
	if err != nil {
		return opErr("copy read", src.Name, srcPath, err)
	}
	return opErr("copy write", dst.Name, dstPath, dst.Driver.Upload(ctx, dstPath, bytes.NewReader(data)))
}

// Rename moves a file within one backend.
func (s *Service) Rename(ctx context.Context, srcPath, dstPath, backendName string) error {
	backend, err := s.resolveWritable(backendName)
	if err != nil {
		return err
	}
	return opErr("rename", backend.Name, srcPath, backend.Driver.Move(ctx, srcPath, dstPath))
}

// CreateDir creates a directory, including missing parents.
func (s *Service) CreateDir(ctx context.Context, path, backendName string) error {
	backend, err := s.resolveWritable(backendName)
	if err != nil {
		return err
	}
	return opErr("create dir", backend.Name, path, backend.Driver.CreateDir(ctx, path))
}

// Stat returns metadata for a single path.
func (s *Service) Stat(ctx context.Context, path, backendName string) (*omnifs.Item, error) {
	backend, err := s.resolve(backendName)
	if err != nil {
		return nil, err
	}
	item, err := backend.Driver.Stat(ctx, path)
	if err != nil {
		return nil, opErr("stat", backend.Name, path, err)
	}
	return item, nil
}

// Exists reports whether a path exists.
func (s *Service) Exists(ctx context.Context, path, backendName string) (bool, error) {
	backend, err := s.resolve(backendName)
	if err != nil {
		return false, err
	}
	ok, err := backend.Driver.Exists(ctx, path)
	if err != nil {
		return false, opErr("exists", backend.Name, path, err)
	}
	return ok, nil
}

// Delete removes a file or directory.
func (s *Service) Delete(ctx context.Context, path, backendName string) error {
	backend, err := s.resolveWritable(backendName)
	if err != nil {
		return err
	}
	return opErr("delete", backend.Name, path, backend.Driver.Delete(ctx, path))
}
