// Package dal binds validated backend configurations to storage drivers
// implemented over github.com/viant/afs. One Service instance wraps one afs
// service scoped to a single base URL, so closing a driver releases only the
// managers of its own backend.
package dal

import (
	"context"
	"io"
	neturl "net/url"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"

	"github.com/viant/omnifs"
)

// schemeAliases maps gateway URL schemes to the afs scheme namespace.
var schemeAliases = map[string]string{
	"fs":     "file",
	"memory": "mem",
}

// Service implements omnifs.Driver for one backend base URL.
type Service struct {
	fs      afs.Service
	baseURL string
	options map[string]string
}

// New builds a storage driver for the given backend configuration; it is the
// production omnifs.Factory. Driver construction is lazy: an unreachable or
// unsupported location surfaces on the first operation, not here.
func New(config *omnifs.Config) (omnifs.Driver, error) {
	baseURL, options, err := splitURL(config.URL)
	if err != nil {
		return nil, err
	}
	return &Service{fs: afs.New(), baseURL: baseURL, options: options}, nil
}

// splitURL rewrites a backend URL into an afs base URL and an option bag
// flattened from the query string.
func splitURL(rawURL string) (string, map[string]string, error) {
	_, options, err := omnifs.ParseURL(rawURL)
	if err != nil {
		return "", nil, err
	}
	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return "", nil, err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if alias, ok := schemeAliases[scheme]; ok {
		scheme = alias
	}
	host := parsed.Host
	if host == "" {
		host = "localhost"
	}
	baseURL := strings.TrimSuffix(scheme+"://"+host+parsed.Path, "/")
	return baseURL, options, nil
}

// BaseURL returns the afs base URL this driver operates on.
func (s *Service) BaseURL() string {
	return s.baseURL
}

// Options returns the option bag extracted from the backend URL query.
func (s *Service) Options() map[string]string {
	return s.options
}

// full resolves a backend-relative path to an absolute afs URL.
func (s *Service) full(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return s.baseURL
	}
	return url.Join(s.baseURL, path)
}

// rel maps an absolute object URL back to a backend-relative path.
func (s *Service) rel(objectURL string) string {
	basePath := url.Path(s.baseURL)
	relative := strings.TrimPrefix(url.Path(objectURL), basePath)
	if !strings.HasPrefix(relative, "/") {
		relative = "/" + relative
	}
	return relative
}

func (s *Service) item(object storage.Object) omnifs.Item {
	objectURL := object.URL()
	return omnifs.Item{
		Path:     s.rel(objectURL),
		Name:     object.Name(),
		URL:      objectURL,
		Size:     object.Size(),
		Modified: object.ModTime(),
		Dir:      object.IsDir(),
	}
}

// List returns the items under path. The listed location itself is excluded
// so callers only see its children.
func (s *Service) List(ctx context.Context, path string) ([]omnifs.Item, error) {
	parent := s.full(path)
	objects, err := s.fs.List(ctx, parent)
	if err != nil {
		return nil, err
	}
	parentPath := url.Path(parent)
	items := make([]omnifs.Item, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() && url.Equals(url.Path(object.URL()), parentPath) {
			continue
		}
		items = append(items, s.item(object))
	}
	return items, nil
}

func (s *Service) Download(ctx context.Context, path string) ([]byte, error) {
	return s.fs.DownloadWithURL(ctx, s.full(path))
}

func (s *Service) Upload(ctx context.Context, path string, reader io.Reader) error {
	return s.fs.Upload(ctx, s.full(path), file.DefaultFileOsMode, reader)
}

func (s *Service) Stat(ctx context.Context, path string) (*omnifs.Item, error) {
	object, err := s.fs.Object(ctx, s.full(path))
	if err != nil {
		return nil, err
	}
	item := s.item(object)
	return &item, nil
}

func (s *Service) Copy(ctx context.Context, src, dst string) error {
	return s.fs.Copy(ctx, s.full(src), s.full(dst))
}

func (s *Service) Move(ctx context.Context, src, dst string) error {
	return s.fs.Move(ctx, s.full(src), s.full(dst))
}

func (s *Service) CreateDir(ctx context.Context, path string) error {
	return s.fs.Create(ctx, s.full(path), file.DefaultDirOsMode, true)
}

func (s *Service) Exists(ctx context.Context, path string) (bool, error) {
	return s.fs.Exists(ctx, s.full(path))
}

func (s *Service) Delete(ctx context.Context, path string) error {
	return s.fs.Delete(ctx, s.full(path))
}

// Close releases the storage managers held by this driver's afs service.
func (s *Service) Close() error {
	type closer interface {
		CloseAll() error
	}
	if c, ok := s.fs.(closer); ok {
		return c.CloseAll()
	}
	return nil
}
