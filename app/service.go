// Package app wires the dispatch core to its infrastructure from a loaded
// configuration.
package app

import (
	"context"
	"fmt"

	"github.com/hoistlab/liftcore/config"
	"github.com/hoistlab/liftcore/core/dispatch"
	coremetrics "github.com/hoistlab/liftcore/core/metrics"
	"github.com/hoistlab/liftcore/infra/logger"
	"github.com/hoistlab/liftcore/infra/metrics"
	"github.com/hoistlab/liftcore/infra/telemetry"
	"github.com/hoistlab/liftcore/internal/eventbus"
	"github.com/hoistlab/liftcore/simulator"
)

// Service orchestrates the dispatch manager, the simulation engine and the
// telemetry relay.
type Service struct {
	Manager *dispatch.Manager
	Engine  *simulator.Engine

	cfg   *config.Config
	bus   *dispatch.Bus
	relay *telemetry.Relay
	sink  coremetrics.Sink
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	scn := cfg.Scenario
	scn.Cars = cfg.Building.Cars
	scn.Floors = cfg.Building.Floors
	scn.Capacity = cfg.Building.Capacity
	engine, err := simulator.New(scn, logg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	bus := eventbus.New[any]()
	mgr, err := dispatch.NewManager(cfg.Dispatch, engine, sink, bus, logger.New("dispatch"))
	if err != nil {
		return nil, fmt.Errorf("dispatch manager: %w", err)
	}
	engine.Bind(mgr)

	svc := &Service{Manager: mgr, Engine: engine, cfg: cfg, bus: bus, sink: sink, log: logg}
	if cfg.Telemetry.Enabled {
		relay, err := telemetry.NewRelay(cfg.Telemetry)
		if err != nil {
			return nil, fmt.Errorf("telemetry relay: %w", err)
		}
		svc.relay = relay
	}
	return svc, nil
}

// Run starts the infrastructure and drives the engine to completion. It
// returns early when the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.relay != nil {
		sub := s.bus.Subscribe()
		go s.relay.Run(ctx, sub)
	}

	done := make(chan error, 1)
	go func() {
		stats, err := s.Engine.Run()
		if err == nil {
			s.log.Infof("run complete: %s", stats)
		}
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.relay != nil {
		s.relay.Close()
	}
	s.bus.Close()
	if s.sink != nil {
		return s.sink.Close()
	}
	return nil
}
