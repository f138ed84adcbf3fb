package mcp

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/viant/omnifs"
)

func (h *Handler) registerBackend(ctx context.Context, in *RegisterBackendInput) (*RegisterBackendOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &RegisterBackendInput{}
	}
	if in.Name == "" {
		return nil, fmt.Errorf("mcp: missing name")
	}
	if in.URL == "" {
		return nil, fmt.Errorf("mcp: missing url")
	}
	validate := true
	if in.ValidateConnection != nil {
		validate = *in.ValidateConnection
	}
	config := omnifs.Config{
		Name:          in.Name,
		URL:           in.URL,
		Description:   in.Description,
		ReadOnly:      in.ReadOnly,
		Timeout:       in.Timeout,
		RetryAttempts: in.RetryAttempts,
	}
	options := omnifs.RegisterOptions{SetDefault: in.SetAsDefault, ValidateConnection: validate}
	if err := h.service.RegisterBackend(ctx, config, options); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=register_backend backend=%s dur=%s", in.Name, time.Since(start))
	}
	return &RegisterBackendOutput{Message: fmt.Sprintf("Successfully registered backend '%v'", in.Name)}, nil
}

func (h *Handler) listBackends(ctx context.Context, in *ListBackendsInput) (*ListBackendsOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	backends := h.service.ListBackends()
	if h.metricsLog {
		log.Printf("mcp metric op=list_backends count=%d dur=%s", len(backends), time.Since(start))
	}
	return &ListBackendsOutput{Backends: backends}, nil
}

func (h *Handler) setDefaultBackend(ctx context.Context, in *SetDefaultBackendInput) (*SetDefaultBackendOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || in.Name == "" {
		return nil, fmt.Errorf("mcp: missing name")
	}
	if err := h.service.SetDefaultBackend(in.Name); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=set_default_backend backend=%s dur=%s", in.Name, time.Since(start))
	}
	return &SetDefaultBackendOutput{Message: fmt.Sprintf("Successfully set '%v' as the default backend", in.Name)}, nil
}

func (h *Handler) removeBackend(ctx context.Context, in *RemoveBackendInput) (*RemoveBackendOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || in.Name == "" {
		return nil, fmt.Errorf("mcp: missing name")
	}
	if err := h.service.RemoveBackend(in.Name, in.Force); err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=remove_backend backend=%s dur=%s", in.Name, time.Since(start))
	}
	return &RemoveBackendOutput{Message: fmt.Sprintf("Successfully removed backend '%v'", in.Name)}, nil
}

func (h *Handler) checkBackendHealth(ctx context.Context, in *CheckHealthInput) (*CheckHealthOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &CheckHealthInput{}
	}
	health := h.service.CheckHealth(ctx, in.Backend)
	if h.metricsLog {
		log.Printf("mcp metric op=check_backend_health count=%d dur=%s", len(health), time.Since(start))
	}
	return &CheckHealthOutput{Health: health}, nil
}

func (h *Handler) backendStats(ctx context.Context, in *StatsInput) (*StatsOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	stats := h.service.Stats()
	if h.metricsLog {
		log.Printf("mcp metric op=get_backend_stats total=%d dur=%s", stats.TotalBackends, time.Since(start))
	}
	return &StatsOutput{Stats: stats}, nil
}
