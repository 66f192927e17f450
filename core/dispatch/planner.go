package dispatch

import "github.com/hoistlab/liftcore/core/model"

// Planner selects a car's next stop under the SCAN/LOOK discipline: keep
// servicing targets ahead in the active direction, reverse only when that
// direction is exhausted.
type Planner struct {
	sweep SweepPolicy
}

// NewPlanner returns a planner using the given sweep policy.
func NewPlanner(sweep SweepPolicy) Planner {
	return Planner{sweep: sweep}
}

// NextStop picks the car's next stop and updates its direction and state.
// When the target set is empty the car transitions to resting and false is
// returned. While scanning, the direction reverses at most once per call,
// and only when no target lies ahead.
func (p Planner) NextStop(car *model.Car) (int, bool) {
	if len(car.Targets) == 0 {
		car.State = model.StateResting
		car.Direction = model.DirNone
		return 0, false
	}
	dir := car.Direction
	if dir == model.DirNone {
		// A freshly woken car sweeps upward first.
		dir = model.DirUp
	}
	if floor, ok := p.pick(car, dir); ok {
		car.Direction = dir
		car.State = model.StateScanning
		return floor, true
	}
	if floor, ok := p.pick(car, dir.Opposite()); ok {
		car.Direction = dir.Opposite()
		car.State = model.StateScanning
		return floor, true
	}
	// The only remaining target is the current floor itself.
	car.State = model.StateScanning
	for floor := range car.Targets {
		return floor, true
	}
	return 0, false
}

func (p Planner) pick(car *model.Car, dir model.Direction) (int, bool) {
	if p.sweep == SweepFarthest {
		return car.FarthestAhead(dir)
	}
	return car.NearestAhead(dir)
}
