package dispatch

import (
	"errors"
	"fmt"
)

// Configuration errors surfaced once at startup, before any event is
// processed.
var (
	ErrNoCars   = errors.New("dispatch: fleet must contain at least one car")
	ErrNoFloors = errors.New("dispatch: building must have at least two floors")
)

// InvalidFloorError reports a referenced floor outside [0, maxFloor]. The
// caller contract is violated by the engine; the core rejects rather than
// clamps so the mismatch stays visible.
type InvalidFloorError struct {
	Floor    int
	MaxFloor int
}

func (e InvalidFloorError) Error() string {
	return fmt.Sprintf("dispatch: floor %d outside [0, %d]", e.Floor, e.MaxFloor)
}

// UnknownCarError reports a car id outside the fleet range.
type UnknownCarError struct {
	Car int
}

func (e UnknownCarError) Error() string {
	return fmt.Sprintf("dispatch: unknown car %d", e.Car)
}

// CarFullError reports a board event for a car already at capacity.
type CarFullError struct {
	Car int
}

func (e CarFullError) Error() string {
	return fmt.Sprintf("dispatch: car %d is at capacity", e.Car)
}
