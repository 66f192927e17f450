package dispatch

import "github.com/hoistlab/liftcore/core/model"

// Scorer ranks candidate cars for a hall call. Scores are pure functions
// of the current snapshot; a score of zero or below means the car is not a
// candidate.
type Scorer struct {
	cfg Config
}

// NewScorer returns a scorer using the given policy constants.
func NewScorer(cfg Config) Scorer {
	return Scorer{cfg: cfg}
}

// Score returns the desirability of the car answering a call at floor in
// dir. Higher is better. A full car never scores above zero, regardless of
// state.
//
// Resting cars score on proximity with a bonus when the call lies inside
// their service zone. Scanning cars are only candidates when the call is
// genuinely on the way: same direction, between the current floor and the
// primary target, so answering never requires backtracking. Their score
// decays with distance and is scaled down by the current load.
func (s Scorer) Score(car *model.Car, floor int, dir model.Direction) float64 {
	if car.Full() {
		return 0
	}
	switch car.State {
	case model.StateResting:
		score := s.cfg.IdleBase - s.cfg.IdleDistanceWeight*float64(distance(car.Floor, floor))
		if car.Zone.Contains(floor) {
			score += s.cfg.ZoneBonus
		}
		return score
	case model.StateScanning:
		if car.Direction != dir || !s.OnTheWay(car, floor) {
			return 0
		}
		score := s.cfg.MovingBase - s.cfg.MovingDistanceWeight*float64(distance(car.Floor, floor))
		load := float64(car.Load()) / float64(car.Capacity)
		if load > 1 {
			load = 1
		}
		return score * (1 - s.cfg.LoadPenalty*load)
	default:
		// Loading cars are mid-decision and not offered.
		return 0
	}
}

// OnTheWay reports whether floor lies between the car's current floor and
// its primary target in the active direction, bounds included.
func (s Scorer) OnTheWay(car *model.Car, floor int) bool {
	target, ok := car.PrimaryTarget()
	if !ok {
		return false
	}
	switch car.Direction {
	case model.DirUp:
		return car.Floor <= floor && floor <= target
	case model.DirDown:
		return car.Floor >= floor && floor >= target
	default:
		return false
	}
}

// Best returns the highest scoring car among cars in the given state, or
// false when none scores above zero. Exact ties go to the lowest car id so
// assignment stays deterministic and reproducible.
func (s Scorer) Best(cars []*model.Car, state model.State, floor int, dir model.Direction) (*model.Car, float64, bool) {
	var best *model.Car
	bestScore := 0.0
	for _, car := range cars {
		if car.State != state {
			continue
		}
		score := s.Score(car, floor, dir)
		if score <= 0 {
			continue
		}
		if best == nil || score > bestScore {
			best = car
			bestScore = score
		}
	}
	return best, bestScore, best != nil
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
