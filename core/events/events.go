package events

import "github.com/hoistlab/liftcore/core/model"

// Event is the tagged union of inputs the dispatcher consumes. Modelling
// the hooks as one type makes ordering and idempotence testable without a
// live engine.
type Event interface {
	event()
}

// Call is raised when a passenger presses a hall button.
type Call struct {
	Floor     int
	Direction model.Direction
	Passenger model.Passenger
}

// Stopped is raised when a car arrives at a floor and opens its doors.
type Stopped struct {
	Car   int
	Floor int
}

// Board is raised when a passenger enters a car.
type Board struct {
	Car       int
	Passenger model.Passenger
}

// Alight is raised when a passenger leaves a car.
type Alight struct {
	Car       int
	Passenger string
	Floor     int
}

// Idle is raised when a car has no commanded motion left.
type Idle struct {
	Car int
}

func (Call) event()    {}
func (Stopped) event() {}
func (Board) event()   {}
func (Alight) event()  {}
func (Idle) event()    {}

// CommandIssued is published on the bus whenever a move command is sent to
// the engine.
type CommandIssued struct {
	Car       int
	Floor     int
	Immediate bool
}

// CarStatus is the per-car slice of a Snapshot.
type CarStatus struct {
	ID        int    `json:"id"`
	Floor     int    `json:"floor"`
	Direction string `json:"direction"`
	State     string `json:"state"`
	Load      int    `json:"load"`
	Capacity  int    `json:"capacity"`
	Targets   []int  `json:"targets"`
}

// Snapshot mirrors the fleet state after an event has been fully
// processed. It is what the telemetry relay forwards to the display side.
type Snapshot struct {
	Seq      uint64      `json:"seq"`
	MaxFloor int         `json:"max_floor"`
	Cars     []CarStatus `json:"cars"`
	Pending  []int       `json:"pending"`
}
