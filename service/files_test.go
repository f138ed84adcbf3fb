package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/viant/omnifs"
)

// stubDriver counts driver calls and fails them all when err is set.
type stubDriver struct {
	calls    map[string]int
	lastPath map[string]string
	err      error
}

func newStubDriver() *stubDriver {
	return &stubDriver{calls: map[string]int{}, lastPath: map[string]string{}}
}

func (d *stubDriver) record(op, path string) error {
	d.calls[op]++
	d.lastPath[op] = path
	return d.err
}

func (d *stubDriver) List(ctx context.Context, path string) ([]omnifs.Item, error) {
	if err := d.record("list", path); err != nil {
		return nil, err
	}
	return []omnifs.Item{}, nil
}

func (d *stubDriver) Download(ctx context.Context, path string) ([]byte, error) {
	if err := d.record("download", path); err != nil {
		return nil, err
	}
	return []byte("stub"), nil
}

func (d *stubDriver) Upload(ctx context.Context, path string, reader io.Reader) error {
	_, _ = io.Copy(io.Discard, reader)
	return d.record("upload", path)
}

func (d *stubDriver) Stat(ctx context.Context, path string) (*omnifs.Item, error) {
	if err := d.record("stat", path); err != nil {
		return nil, err
	}
	return &omnifs.Item{Path: path}, nil
}

func (d *stubDriver) Copy(ctx context.Context, src, dst string) error {
	return d.record("copy", src)
}

func (d *stubDriver) Move(ctx context.Context, src, dst string) error {
	return d.record("move", src)
}

func (d *stubDriver) CreateDir(ctx context.Context, path string) error {
	return d.record("createDir", path)
}

func (d *stubDriver) Exists(ctx context.Context, path string) (bool, error) {
	if err := d.record("exists", path); err != nil {
		return false, err
	}
	return true, nil
}

func (d *stubDriver) Delete(ctx context.Context, path string) error {
	return d.record("delete", path)
}

func (d *stubDriver) Close() error {
	return d.record("close", "")
}

func (d *stubDriver) total() int {
	n := 0
	for _, count := range d.calls {
		n += count
	}
	return n
}

// stubFactory hands out one stubDriver per backend name.
type stubFactory struct {
	drivers map[string]*stubDriver
}

func newStubFactory() *stubFactory {
	return &stubFactory{drivers: map[string]*stubDriver{}}
}

func (f *stubFactory) new(config *omnifs.Config) (omnifs.Driver, error) {
	driver := newStubDriver()
	f.drivers[config.Name] = driver
	return driver, nil
}

func newTestService(t *testing.T, options ...Option) *Service {
	t.Helper()
	svc, err := New(context.Background(), options...)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func registerMemory(t *testing.T, svc *Service, name, base string, options omnifs.RegisterOptions) {
	t.Helper()
	config := omnifs.Config{Name: name, URL: "memory:///" + base}
	if err := svc.RegisterBackend(context.Background(), config, options); err != nil {
		t.Fatalf("failed to register backend %v: %v", name, err)
	}
}

func TestWriteReadDefaultRouting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	registerMemory(t, svc, "a", "routing-a", omnifs.RegisterOptions{})

	if err := svc.Write(ctx, "/notes/hello.txt", []byte("hello"), ""); err != nil {
		t.Fatalf("failed to write via default backend: %v", err)
	}
	data, err := svc.Read(ctx, "/notes/hello.txt", "")
	if err != nil {
		t.Fatalf("failed to read via default backend: %v", err)
	}
	if got, want := string(data), "hello"; got != want {
		t.Fatalf("unexpected content: got %q, want %q", got, want)
	}

	items, err := svc.List(ctx, "/notes", "a")
	if err != nil {
		t.Fatalf("failed to list backend folder: %v", err)
	}
	if len(items) != 1 || items[0].Path != "/notes/hello.txt" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	item, err := svc.Stat(ctx, "/notes/hello.txt", "")
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if item.Size != int64(len("hello")) {
		t.Fatalf("unexpected size: got %v, want %v", item.Size, len("hello"))
	}

	ok, err := svc.Exists(ctx, "/notes/hello.txt", "")
	if err != nil || !ok {
		t.Fatalf("expected file to exist, got ok=%v err=%v", ok, err)
	}
	if err := svc.Delete(ctx, "/notes/hello.txt", ""); err != nil {
		t.Fatalf("failed to delete file: %v", err)
	}
	ok, err = svc.Exists(ctx, "/notes/hello.txt", "")
	if err != nil {
		t.Fatalf("failed to check existence after delete: %v", err)
	}
	if ok {
		t.Fatal("expected file to be gone after delete")
	}
}

func TestCopyAcrossBackends(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	registerMemory(t, svc, "a", "copy-src", omnifs.RegisterOptions{})
	registerMemory(t, svc, "b", "copy-dst", omnifs.RegisterOptions{})

	if err := svc.Write(ctx, "/x.txt", []byte("hello"), "a"); err != nil {
		t.Fatalf("failed to seed source file: %v", err)
	}
	if err := svc.Copy(ctx, "/x.txt", "/x.txt", "a", "b"); err != nil {
		t.Fatalf("failed to copy across backends: %v", err)
	}
	data, err := svc.Read(ctx, "/x.txt", "b")
	if err != nil {
		t.Fatalf("failed to read copied file: %v", err)
	}
	if got, want := string(data), "hello"; got != want {
		t.Fatalf("unexpected copied content: got %q, want %q", got, want)
	}
	data, err = svc.Read(ctx, "/x.txt", "a")
	if err != nil || string(data) != "hello" {
		t.Fatalf("expected source file to stay intact, got %q err=%v", data, err)
	}
}

func TestCopyWithinBackendUsesNativeCopy(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	registerMemory(t, svc, "a", "native", omnifs.RegisterOptions{})

	if err := svc.Copy(ctx, "/src.txt", "/dst.txt", "a", "a"); err != nil {
		t.Fatalf("failed to copy within backend: %v", err)
	}
	// Default routing on both sides resolves to the same backend.
	if err := svc.Copy(ctx, "/src.txt", "/other.txt", "", ""); err != nil {
		t.Fatalf("failed to copy via default backend: %v", err)
	}

	driver := factory.drivers["a"]
	if got := driver.calls["copy"]; got != 2 {
		t.Fatalf("expected two native copy calls, got %v", got)
	}
	if got := driver.calls["download"] + driver.calls["upload"]; got != 0 {
		t.Fatalf("expected no bridging transfers, got %v", got)
	}
}

func TestReadOnlyBackendRejectsMutations(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	config := omnifs.Config{Name: "ro", URL: "memory:///ro", ReadOnly: true}
	if err := svc.RegisterBackend(ctx, config, omnifs.RegisterOptions{}); err != nil {
		t.Fatalf("failed to register read-only backend: %v", err)
	}

	mutations := map[string]func() error{
		"write":      func() error { return svc.Write(ctx, "/a.txt", []byte("x"), "ro") },
		"rename":     func() error { return svc.Rename(ctx, "/a.txt", "/b.txt", "ro") },
		"create dir": func() error { return svc.CreateDir(ctx, "/dir", "ro") },
		"delete":     func() error { return svc.Delete(ctx, "/a.txt", "ro") },
	}
	for op, call := range mutations {
		err := call()
		if !errors.Is(err, omnifs.ErrReadOnly) {
			t.Fatalf("%v: expected read-only rejection, got %v", op, err)
		}
		if !strings.Contains(err.Error(), "ro") {
			t.Fatalf("%v: expected backend name in error, got %v", op, err)
		}
	}
	if got := factory.drivers["ro"].total(); got != 0 {
		t.Fatalf("expected no driver calls on rejected mutations, got %v", got)
	}

	if _, err := svc.Read(ctx, "/a.txt", "ro"); err != nil {
		t.Fatalf("expected reads to pass on read-only backend: %v", err)
	}
	if got := factory.drivers["ro"].calls["download"]; got != 1 {
		t.Fatalf("expected one download call, got %v", got)
	}
}

func TestCopyIntoReadOnlyBackend(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	registerMemory(t, svc, "src", "copy-ro-src", omnifs.RegisterOptions{})
	config := omnifs.Config{Name: "ro", URL: "memory:///copy-ro-dst", ReadOnly: true}
	if err := svc.RegisterBackend(ctx, config, omnifs.RegisterOptions{}); err != nil {
		t.Fatalf("failed to register read-only backend: %v", err)
	}

	err := svc.Copy(ctx, "/x.txt", "/x.txt", "src", "ro")
	if !errors.Is(err, omnifs.ErrReadOnly) {
		t.Fatalf("expected read-only rejection, got %v", err)
	}
	if got := factory.drivers["src"].total() + factory.drivers["ro"].total(); got != 0 {
		t.Fatalf("expected rejection before any driver call, got %v calls", got)
	}
}

func TestDriverFailuresCarryOpContext(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	registerMemory(t, svc, "flaky", "flaky", omnifs.RegisterOptions{})

	driverErr := errors.New("socket closed")
	factory.drivers["flaky"].err = driverErr

	_, err := svc.Read(ctx, "/report.txt", "flaky")
	if err == nil {
		t.Fatal("expected read to fail")
	}
	var opError *omnifs.OpError
	if !errors.As(err, &opError) {
		t.Fatalf("expected an operation error, got %T", err)
	}
	if opError.Op != "read" || opError.Backend != "flaky" || opError.Path != "/report.txt" {
		t.Fatalf("unexpected operation context: %+v", opError)
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("expected driver cause to stay reachable, got %v", err)
	}
}

func TestCrossBackendCopyWrapsBridgeStages(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	registerMemory(t, svc, "a", "bridge-a", omnifs.RegisterOptions{})
	registerMemory(t, svc, "b", "bridge-b", omnifs.RegisterOptions{})

	factory.drivers["a"].err = errors.New("gone")
	err := svc.Copy(ctx, "/x.txt", "/x.txt", "a", "b")
	var opError *omnifs.OpError
	if !errors.As(err, &opError) || opError.Op != "copy read" || opError.Backend != "a" {
		t.Fatalf("expected source read failure context, got %v", err)
	}

	factory.drivers["a"].err = nil
	factory.drivers["b"].err = errors.New("quota exceeded")
	err = svc.Copy(ctx, "/x.txt", "/x.txt", "a", "b")
	if !errors.As(err, &opError) || opError.Op != "copy write" || opError.Backend != "b" {
		t.Fatalf("expected destination write failure context, got %v", err)
	}
}

func TestRoutingLookupFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Read(ctx, "/x.txt", ""); !errors.Is(err, omnifs.ErrNoDefault) {
		t.Fatalf("expected no-default error on empty registry, got %v", err)
	}
	registerMemory(t, svc, "a", "lookup", omnifs.RegisterOptions{})
	if _, err := svc.Read(ctx, "/x.txt", "ghost"); !errors.Is(err, omnifs.ErrBackendNotFound) {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestListDefaultsToRoot(t *testing.T) {
	ctx := context.Background()
	factory := newStubFactory()
	svc := newTestService(t, WithFactory(factory.new))
	registerMemory(t, svc, "a", "list-root", omnifs.RegisterOptions{})

	if _, err := svc.List(ctx, "", "a"); err != nil {
		t.Fatalf("failed to list with empty path: %v", err)
	}
	if got, want := factory.drivers["a"].lastPath["list"], "/"; got != want {
		t.Fatalf("unexpected list path: got %q, want %q", got, want)
	}
}
