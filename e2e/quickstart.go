package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/viant/omnifs"
	"github.com/viant/omnifs/service"
)

func main() {
	dir := flag.String("dir", "", "local directory exposed as the docs backend (defaults to a temp dir)")
	flag.Parse()

	ctx := context.Background()
	local := *dir
	if local == "" {
		tmp, err := os.MkdirTemp("", "omnifs-quickstart")
		if err != nil {
			log.Fatalf("temp dir: %v", err)
		}
		defer os.RemoveAll(tmp)
		local = tmp
	}

	svc, err := service.New(ctx)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	defer func() { _ = svc.Close() }()

	scratch := omnifs.Config{Name: "scratch", URL: "memory:///scratch", Description: "in-memory scratch space"}
	if err := svc.RegisterBackend(ctx, scratch, omnifs.RegisterOptions{SetDefault: true}); err != nil {
		log.Fatalf("register scratch: %v", err)
	}
	docs := omnifs.Config{Name: "docs", URL: "fs://" + local, Description: "local documents"}
	if err := svc.RegisterBackend(ctx, docs, omnifs.RegisterOptions{ValidateConnection: true}); err != nil {
		log.Fatalf("register docs: %v", err)
	}

	if err := svc.Write(ctx, "/notes/hello.txt", []byte("hello from omnifs"), ""); err != nil {
		log.Fatalf("write: %v", err)
	}
	if err := svc.Copy(ctx, "/notes/hello.txt", "/hello.txt", "scratch", "docs"); err != nil {
		log.Fatalf("copy: %v", err)
	}
	data, err := svc.Read(ctx, "/hello.txt", "docs")
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	fmt.Printf("docs:/hello.txt -> %q\n", data)

	items, err := svc.List(ctx, "/", "docs")
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	for _, item := range items {
		fmt.Printf("docs:%s size=%d dir=%t\n", item.Path, item.Size, item.Dir)
	}

	for name, healthy := range svc.CheckHealth(ctx, "") {
		fmt.Printf("health %s=%t\n", name, healthy)
	}
	stats := svc.Stats()
	fmt.Printf("backends=%d default=%s schemes=%v\n", stats.TotalBackends, stats.DefaultBackend, stats.Schemes)
}
