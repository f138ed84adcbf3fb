package dal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/viant/omnifs"
)

var _ omnifs.Driver = (*Service)(nil)

func TestSplitURL(t *testing.T) {
	testCases := []struct {
		description string
		url         string
		baseURL     string
		options     map[string]string
	}{
		{
			description: "fs maps to file scheme",
			url:         "fs:///tmp/data",
			baseURL:     "file://localhost/tmp/data",
		},
		{
			description: "memory maps to mem scheme",
			url:         "memory:///backend-a",
			baseURL:     "mem://localhost/backend-a",
		},
		{
			description: "memory root",
			url:         "memory:///",
			baseURL:     "mem://localhost",
		},
		{
			description: "scheme casing normalized for afs",
			url:         "MEMORY:///cache",
			baseURL:     "mem://localhost/cache",
		},
		{
			description: "s3 passes through with options stripped",
			url:         "s3://bucket/prefix?region=us-west-2",
			baseURL:     "s3://bucket/prefix",
			options:     map[string]string{"region": "us-west-2"},
		},
	}
	for _, testCase := range testCases {
		baseURL, options, err := splitURL(testCase.url)
		if err != nil {
			t.Fatalf("%v: %v", testCase.description, err)
		}
		if baseURL != testCase.baseURL {
			t.Fatalf("%v: base URL mismatch: got %q want %q", testCase.description, baseURL, testCase.baseURL)
		}
		for key, want := range testCase.options {
			if got := options[key]; got != want {
				t.Fatalf("%v: option %q: got %q want %q", testCase.description, key, got, want)
			}
		}
	}

	if _, _, err := splitURL("/no/scheme"); err == nil {
		t.Fatalf("expected error for scheme-less URL")
	}
}

func newDriver(t *testing.T, rawURL string) omnifs.Driver {
	t.Helper()
	config := omnifs.Config{Name: "test", URL: rawURL}
	if err := config.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	driver, err := New(&config)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	return driver
}

func TestFileDriver(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	driver := newDriver(t, "fs://"+root)
	defer driver.Close()

	content := []byte("hello world")
	if err := driver.Upload(ctx, "/docs/a.txt", bytes.NewReader(content)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := driver.Upload(ctx, "/docs/b.txt", strings.NewReader("second")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	exists, err := driver.Exists(ctx, "/docs/a.txt")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("uploaded file should exist")
	}

	data, err := driver.Download(ctx, "/docs/a.txt")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Fatalf("content mismatch: got %q want %q", data, content)
	}

	item, err := driver.Stat(ctx, "/docs/a.txt")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if item.Path != "/docs/a.txt" || item.Dir || item.Size != int64(len(content)) {
		t.Fatalf("unexpected stat item: %+v", item)
	}
	if item.Name != "a.txt" {
		t.Fatalf("stat name: got %q want %q", item.Name, "a.txt")
	}
	if _, err := driver.Stat(ctx, "/docs/missing.txt"); err == nil {
		t.Fatalf("stat of a missing file should fail")
	}

	items, err := driver.List(ctx, "/docs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	paths := map[string]bool{}
	for _, listed := range items {
		paths[listed.Path] = true
	}
	if !paths["/docs/a.txt"] || !paths["/docs/b.txt"] {
		t.Fatalf("unexpected listing paths: %v", paths)
	}

	rootItems, err := driver.List(ctx, "/")
	if err != nil {
		t.Fatalf("list root: %v", err)
	}
	if len(rootItems) != 1 || rootItems[0].Path != "/docs" || !rootItems[0].Dir {
		t.Fatalf("root listing should contain only the docs folder: %+v", rootItems)
	}

	if err := driver.CreateDir(ctx, "/out"); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := driver.Copy(ctx, "/docs/a.txt", "/out/a-copy.txt"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	copied, err := driver.Download(ctx, "/out/a-copy.txt")
	if err != nil {
		t.Fatalf("download copy: %v", err)
	}
	if !bytes.Equal(copied, content) {
		t.Fatalf("copy content mismatch: got %q", copied)
	}

	if err := driver.Move(ctx, "/docs/b.txt", "/docs/renamed.txt"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if exists, _ := driver.Exists(ctx, "/docs/b.txt"); exists {
		t.Fatalf("moved source should be gone")
	}
	if exists, _ := driver.Exists(ctx, "/docs/renamed.txt"); !exists {
		t.Fatalf("moved target should exist")
	}

	if err := driver.Delete(ctx, "/out/a-copy.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if exists, _ := driver.Exists(ctx, "/out/a-copy.txt"); exists {
		t.Fatalf("deleted file should be gone")
	}
}

func TestMemDriver(t *testing.T) {
	ctx := context.Background()
	driver := newDriver(t, "memory:///backend-m")

	if err := driver.Upload(ctx, "/x.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if exists, err := driver.Exists(ctx, "/x.txt"); err != nil || !exists {
		t.Fatalf("exists: %v %v", exists, err)
	}
	data, err := driver.Download(ctx, "/x.txt")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content mismatch: got %q", data)
	}

	item, err := driver.Stat(ctx, "/x.txt")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if item.Size != 5 || item.Dir {
		t.Fatalf("unexpected stat item: %+v", item)
	}

	items, err := driver.List(ctx, "/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Path != "/x.txt" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	if err := driver.CreateDir(ctx, "/sub"); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := driver.Copy(ctx, "/x.txt", "/sub/copy.txt"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	copied, err := driver.Download(ctx, "/sub/copy.txt")
	if err != nil {
		t.Fatalf("download copy: %v", err)
	}
	if string(copied) != "hello" {
		t.Fatalf("copy content mismatch: got %q", copied)
	}

	if err := driver.Move(ctx, "/x.txt", "/moved.txt"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if exists, _ := driver.Exists(ctx, "/x.txt"); exists {
		t.Fatalf("moved source should be gone")
	}
	if err := driver.Delete(ctx, "/moved.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if exists, _ := driver.Exists(ctx, "/moved.txt"); exists {
		t.Fatalf("deleted file should be gone")
	}

	if err := driver.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDriverOptions(t *testing.T) {
	config := omnifs.Config{Name: "opt", URL: "memory:///cache?ttl=60&ttl=90&trace=on"}
	if err := config.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	driver, err := New(&config)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	service := driver.(*Service)
	if service.BaseURL() != "mem://localhost/cache" {
		t.Fatalf("base URL: got %q", service.BaseURL())
	}
	options := service.Options()
	if options["ttl"] != "60" {
		t.Fatalf("repeated option should keep the first value, got %q", options["ttl"])
	}
	if options["trace"] != "on" {
		t.Fatalf("option trace: got %q", options["trace"])
	}
}
