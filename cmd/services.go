package cmd

import (
	"context"
	"fmt"
	"time"

	apporg "github.com/zjrosen/orgchart/internal/application/orgchart"
	"github.com/zjrosen/orgchart/internal/config"
	"github.com/zjrosen/orgchart/internal/flags"
	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/tracing"
)

// services holds the services a command works with.
type services struct {
	service  *apporg.Service
	provider *tracing.Provider
}

// newServices validates cfg and builds the tracer provider and org chart service
// from it.
func newServices(cfg config.Config) (*services, error) {
	tracingCfg := cfg.Tracing
	if tracingCfg.Enabled && tracingCfg.Exporter == tracing.ExporterFile && tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	cfg.Tracing = tracingCfg

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	svc := apporg.NewService(
		apporg.WithTracer(provider.Tracer()),
		apporg.WithFlags(flags.New(cfg.Flags)),
		apporg.WithCountTTL(cfg.Cache.CountTTL),
	)
	return &services{service: svc, provider: provider}, nil
}

// Close ends subscriptions and flushes pending spans.
func (r *services) Close() {
	r.service.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
}
