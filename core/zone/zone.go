// Package zone computes each car's home floor and service zone from its
// index and the fleet size. Zones bias scoring only; they never constrain
// which car may answer a call.
package zone

import "github.com/hoistlab/liftcore/core/model"

// HomeFloor distributes total cars evenly across [0, maxFloor] and returns
// the home floor for the car at index. A single car rests at the middle
// floor.
func HomeFloor(index, total, maxFloor int) int {
	if total <= 1 {
		return maxFloor / 2
	}
	segment := float64(maxFloor+1) / float64(total)
	home := int(float64(index)*segment + segment/2)
	if home > maxFloor {
		home = maxFloor
	}
	return home
}

// For returns the service zone for the car at index. Zones are contiguous
// and, with overlap 0, form an exact partition of [0, maxFloor]; the last
// zone absorbs the remainder. A positive overlap widens each zone by that
// fraction of the segment size on both sides to soften boundary effects.
func For(index, total, maxFloor int, overlap float64) model.Zone {
	if total <= 1 {
		return model.Zone{Low: 0, High: maxFloor}
	}
	segment := float64(maxFloor+1) / float64(total)
	low := int(float64(index) * segment)
	high := maxFloor
	if index < total-1 {
		high = int(float64(index+1)*segment) - 1
	}
	if overlap > 0 {
		margin := int(segment * overlap)
		low -= margin
		high += margin
		if low < 0 {
			low = 0
		}
		if high > maxFloor {
			high = maxFloor
		}
	}
	return model.Zone{Low: low, High: high}
}
