package simulator

import "fmt"

// ScriptedCall is a deterministic passenger arrival.
type ScriptedCall struct {
	Tick        int `json:"tick"`
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
}

// Scenario holds the parameters of one simulation run.
type Scenario struct {
	Cars     int   `json:"cars"`
	Floors   int   `json:"floors"`
	Capacity int   `json:"capacity"`
	Ticks    int   `json:"ticks"`
	Seed     int64 `json:"seed"`
	// ArrivalRate is the probability of a random passenger arriving on a
	// given tick. Zero means scripted arrivals only.
	ArrivalRate float64 `json:"arrival_rate"`
	// DrainTicks bounds how long the run may continue past Ticks while
	// passengers are still in flight.
	DrainTicks int            `json:"drain_ticks"`
	Calls      []ScriptedCall `json:"calls"`
}

// SetDefaults fills unset fields with sensible values.
func (s *Scenario) SetDefaults() {
	if s.Cars == 0 {
		s.Cars = 2
	}
	if s.Floors == 0 {
		s.Floors = 10
	}
	if s.Capacity == 0 {
		s.Capacity = 10
	}
	if s.Ticks == 0 {
		s.Ticks = 500
	}
	if s.DrainTicks == 0 {
		s.DrainTicks = 10 * s.Floors * (s.Cars + 1)
	}
}

// Validate checks the scenario for values the engine cannot run.
func (s Scenario) Validate() error {
	if s.Cars <= 0 {
		return fmt.Errorf("simulator: cars must be positive")
	}
	if s.Floors < 2 {
		return fmt.Errorf("simulator: need at least two floors")
	}
	if s.ArrivalRate < 0 || s.ArrivalRate > 1 {
		return fmt.Errorf("simulator: arrival rate %v outside [0, 1]", s.ArrivalRate)
	}
	for _, c := range s.Calls {
		if c.Origin < 0 || c.Origin >= s.Floors || c.Destination < 0 || c.Destination >= s.Floors {
			return fmt.Errorf("simulator: scripted call %d->%d outside building", c.Origin, c.Destination)
		}
		if c.Origin == c.Destination {
			return fmt.Errorf("simulator: scripted call at floor %d goes nowhere", c.Origin)
		}
	}
	return nil
}
