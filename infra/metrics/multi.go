package metrics

import coremetrics "github.com/hoistlab/liftcore/core/metrics"

// MultiSink fans dispatch activity out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCommands forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCommands(recs []coremetrics.CommandRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommands(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordStops forwards the records to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordStops(recs []coremetrics.StopRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordStops(recs); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all sinks, returning the first error encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
