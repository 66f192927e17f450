package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/hoistlab/liftcore/core/metrics"
)

// PromSink records dispatch activity in Prometheus metrics.
type PromSink struct {
	commands *prometheus.CounterVec
	stops    *prometheus.CounterVec
	load     *prometheus.GaugeVec
}

// NewPromSink registers dispatch metrics on the default Prometheus
// registerer. The Prometheus server is started separately with
// StartPromServer.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "car_commands_total",
		Help: "Move commands issued per car",
	}, []string{"car", "immediate"})
	stops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "car_stops_total",
		Help: "Stops serviced per car and direction",
	}, []string{"car", "direction"})
	load := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "car_load_passengers",
		Help: "Passengers on board at the last stop",
	}, []string{"car"})

	if err := reg.Register(commands); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			commands = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stops); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stops = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(load); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			load = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{commands: commands, stops: stops, load: load}, nil
}

// RecordCommands increments the per-car command counters.
func (s *PromSink) RecordCommands(recs []coremetrics.CommandRecord) error {
	for _, r := range recs {
		s.commands.WithLabelValues(strconv.Itoa(r.Car), strconv.FormatBool(r.Immediate)).Inc()
	}
	return nil
}

// RecordStops increments the per-car stop counters and updates the load
// gauge.
func (s *PromSink) RecordStops(recs []coremetrics.StopRecord) error {
	for _, r := range recs {
		s.stops.WithLabelValues(strconv.Itoa(r.Car), r.Direction).Inc()
		s.load.WithLabelValues(strconv.Itoa(r.Car)).Set(float64(r.Load))
	}
	return nil
}

// Close implements the Sink interface.
func (s *PromSink) Close() error { return nil }

// StartPromServer starts an HTTP server exposing Prometheus metrics on the
// given address. The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
