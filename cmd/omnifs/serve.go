package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"

	omcp "github.com/viant/omnifs/mcp"
	"github.com/viant/omnifs/service"
)

func serveCmd(args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := flags.String("config", "", "backend config file, json or yaml (optional)")
	addr := flags.String("addr", "127.0.0.1:8000", "MCP server address")
	backendURL := flags.String("url", "", "single backend URL (compatibility mode, ignored with -config)")
	metricsLog := flags.Bool("metrics-log", false, "log mcp metric lines")
	debugSleep := flags.Int("debug-sleep", 0, "debug: sleep N seconds before execution (for gops)")
	flags.Parse(args)
	if rest := flags.Args(); len(rest) > 0 && *backendURL == "" {
		*backendURL = rest[0]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	maybeDebugSleep("serve", *debugSleep)

	var options []service.Option
	if *configPath != "" {
		options = append(options, service.WithConfigFile(*configPath))
	} else if *backendURL != "" {
		options = append(options, service.WithBackendURL(*backendURL))
	}
	svc, err := service.New(ctx, options...)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	defer func() { _ = svc.Close() }()

	server, err := mcpsrv.New(
		mcpsrv.WithImplementation(schema.Implementation{Name: "omnifs-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(omcp.NewHandler(svc, *metricsLog)),
		mcpsrv.WithEndpointAddress(*addr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	)
	if err != nil {
		log.Fatal(err)
	}

	server.UseStreamableHTTP(true)
	httpServer := server.HTTP(ctx, *addr)
	httpServer.ReadHeaderTimeout = 10 * time.Second
	httpServer.ReadTimeout = 60 * time.Second
	httpServer.WriteTimeout = 60 * time.Second
	httpServer.IdleTimeout = 120 * time.Second

	log.Printf("omnifs-mcp listening on %s", httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	cancel()
	log.Printf("shutdown signal received: %v", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Printf("omnifs-mcp stopped")
}
