package model

import "time"

// Passenger is the core's view of a rider: identity plus the floors and
// call time needed to recompute a car's target set. Ownership moves from
// the hall call bookkeeping to a car's Onboard map at boarding and is
// discarded at alighting.
type Passenger struct {
	ID          string
	Origin      int
	Destination int
	CalledAt    time.Time
}

// TravelDirection returns the direction of the requested trip.
func (p Passenger) TravelDirection() Direction {
	return Toward(p.Origin, p.Destination)
}
