package model

// State is the lifecycle state of a car.
type State int

const (
	// StateResting means the car has no pending work and sits at its
	// informal home floor waiting for calls.
	StateResting State = iota
	// StateScanning means the car has at least one target and is moving
	// toward it following the sweep discipline.
	StateScanning
	// StateLoading is the transient state while the car is stopped with
	// doors open. It is cleared once the next decision is made.
	StateLoading
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateResting:
		return "resting"
	case StateScanning:
		return "scanning"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Zone is a contiguous floor interval biasing, not constraining, a car's
// dispatch priority.
type Zone struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether the floor lies inside the zone.
func (z Zone) Contains(floor int) bool {
	return floor >= z.Low && floor <= z.High
}

// Car is the per-car mutable record owned by the dispatcher. Targets holds
// the floors the car is obligated to visit: hall calls assigned to it plus
// the destinations of passengers on board. Onboard maps passenger IDs to
// their destination floors.
type Car struct {
	ID        int
	Floor     int
	Direction Direction
	State     State
	Capacity  int
	Home      int
	Zone      Zone
	Targets   map[int]struct{}
	Onboard   map[string]int
}

// NewCar creates a resting car at floor 0 with the given capacity.
func NewCar(id, capacity int) *Car {
	return &Car{
		ID:       id,
		State:    StateResting,
		Capacity: capacity,
		Targets:  make(map[int]struct{}),
		Onboard:  make(map[string]int),
	}
}

// Load returns the number of passengers on board.
func (c *Car) Load() int { return len(c.Onboard) }

// Full reports whether the car is at capacity. A full car is never offered
// as a dispatch candidate.
func (c *Car) Full() bool { return len(c.Onboard) >= c.Capacity }

// AddTarget adds a floor to the target set. Adding an existing floor is a
// no-op.
func (c *Car) AddTarget(floor int) { c.Targets[floor] = struct{}{} }

// RemoveTarget removes a floor from the target set if present.
func (c *Car) RemoveTarget(floor int) { delete(c.Targets, floor) }

// HasTarget reports whether the floor is in the target set.
func (c *Car) HasTarget(floor int) bool {
	_, ok := c.Targets[floor]
	return ok
}

// NearestAhead returns the closest target strictly ahead of the current
// floor in the given direction, or false if none exists.
func (c *Car) NearestAhead(dir Direction) (int, bool) {
	found := false
	best := 0
	for f := range c.Targets {
		if !ahead(c.Floor, f, dir) {
			continue
		}
		if !found || absInt(f-c.Floor) < absInt(best-c.Floor) {
			best = f
			found = true
		}
	}
	return best, found
}

// FarthestAhead returns the most distant target strictly ahead of the
// current floor in the given direction, or false if none exists.
func (c *Car) FarthestAhead(dir Direction) (int, bool) {
	found := false
	best := 0
	for f := range c.Targets {
		if !ahead(c.Floor, f, dir) {
			continue
		}
		if !found || absInt(f-c.Floor) > absInt(best-c.Floor) {
			best = f
			found = true
		}
	}
	return best, found
}

// PrimaryTarget returns the reference point for on-the-way checks: the
// next committed stop in the active direction. Targets behind the car
// (a passenger destination below while sweeping up) are ignored so they
// cannot mask genuinely on-the-way calls; when nothing lies ahead the
// sweep boundary is returned instead.
func (c *Car) PrimaryTarget() (int, bool) {
	if len(c.Targets) == 0 {
		return 0, false
	}
	next, haveNext := 0, false
	bound, haveBound := 0, false
	for f := range c.Targets {
		if c.Direction == DirDown {
			if !haveBound || f > bound {
				bound = f
				haveBound = true
			}
			if f <= c.Floor && (!haveNext || f > next) {
				next = f
				haveNext = true
			}
		} else {
			if !haveBound || f < bound {
				bound = f
				haveBound = true
			}
			if f >= c.Floor && (!haveNext || f < next) {
				next = f
				haveNext = true
			}
		}
	}
	if haveNext {
		return next, true
	}
	return bound, true
}

// ahead reports whether floor lies strictly past from in dir.
func ahead(from, floor int, dir Direction) bool {
	switch dir {
	case DirUp:
		return floor > from
	case DirDown:
		return floor < from
	default:
		return false
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
