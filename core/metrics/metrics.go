// Package metrics defines the sink contract used to export dispatch
// activity. Implementations live under infra/metrics.
package metrics

import "time"

// CommandRecord describes one move command issued to the engine.
type CommandRecord struct {
	Car       int
	Floor     int
	Immediate bool
	Time      time.Time
}

// StopRecord describes one serviced stop.
type StopRecord struct {
	Car       int
	Floor     int
	Direction string
	Load      int
	Time      time.Time
}

// Sink receives dispatch activity records. Recording must never block a
// dispatch decision for long; implementations are expected to buffer or
// drop on their own.
type Sink interface {
	RecordCommands([]CommandRecord) error
	RecordStops([]StopRecord) error
	Close() error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordCommands([]CommandRecord) error { return nil }
func (NopSink) RecordStops([]StopRecord) error       { return nil }
func (NopSink) Close() error                         { return nil }
