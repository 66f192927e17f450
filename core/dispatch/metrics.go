package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	callsReceived      *prometheus.CounterVec
	commandsIssued     *prometheus.CounterVec
	stopsServiced      prometheus.Counter
	directionReversals prometheus.Counter
	floorsTraveled     *prometheus.CounterVec
	pendingCalls       prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Counter, *prometheus.CounterVec, prometheus.Gauge) {
	calls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hall_calls_total",
			Help: "Number of hall calls received",
		},
		[]string{"direction"},
	)
	cmds := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "move_commands_total",
			Help: "Number of move commands issued to the engine",
		},
		[]string{"immediate"},
	)
	stops := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stops_serviced_total",
			Help: "Number of car stops processed",
		},
	)
	rev := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "direction_reversals_total",
			Help: "Number of sweep direction reversals",
		},
	)
	travel := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floors_traveled_total",
			Help: "Floors traveled per car, the energy proxy",
		},
		[]string{"car"},
	)
	pending := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_call_floors",
			Help: "Floors with at least one unanswered hall call",
		},
	)
	return calls, cmds, stops, rev, travel, pending
}

func init() {
	callsReceived, commandsIssued, stopsServiced, directionReversals, floorsTraveled, pendingCalls = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(callsReceived, commandsIssued, stopsServiced, directionReversals, floorsTraveled, pendingCalls)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	callsReceived, commandsIssued, stopsServiced, directionReversals, floorsTraveled, pendingCalls = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
