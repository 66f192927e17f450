// Package registry tracks outstanding hall calls per floor and direction.
package registry

import (
	"sort"

	"github.com/hoistlab/liftcore/core/model"
)

// FloorRequests is the registry of pending hall calls. It is exclusively
// owned and mutated by the dispatcher; floor indices are validated by the
// caller before they reach this type (out-of-range floors are rejected at
// the dispatch boundary, never clamped).
type FloorRequests struct {
	maxFloor int
	up       map[int]struct{}
	down     map[int]struct{}
}

// New creates an empty registry for floors [0, maxFloor].
func New(maxFloor int) *FloorRequests {
	return &FloorRequests{
		maxFloor: maxFloor,
		up:       make(map[int]struct{}),
		down:     make(map[int]struct{}),
	}
}

// MaxFloor returns the highest serviced floor index.
func (r *FloorRequests) MaxFloor() int { return r.maxFloor }

// AddCall marks a hall call pending. Idempotent; DirNone is ignored.
func (r *FloorRequests) AddCall(floor int, dir model.Direction) {
	if set := r.set(dir); set != nil {
		set[floor] = struct{}{}
	}
}

// ClearCall removes a pending hall call. Idempotent; DirNone is ignored.
func (r *FloorRequests) ClearCall(floor int, dir model.Direction) {
	if set := r.set(dir); set != nil {
		delete(set, floor)
	}
}

// Has reports whether a call is pending at floor in dir.
func (r *FloorRequests) Has(floor int, dir model.Direction) bool {
	set := r.set(dir)
	if set == nil {
		return false
	}
	_, ok := set[floor]
	return ok
}

// HasAny reports whether any hall call is pending in either direction.
func (r *FloorRequests) HasAny() bool {
	return len(r.up) > 0 || len(r.down) > 0
}

// PendingFloors returns all floors with a pending call in either
// direction, sorted ascending.
func (r *FloorRequests) PendingFloors() []int {
	seen := make(map[int]struct{}, len(r.up)+len(r.down))
	for f := range r.up {
		seen[f] = struct{}{}
	}
	for f := range r.down {
		seen[f] = struct{}{}
	}
	floors := make([]int, 0, len(seen))
	for f := range seen {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

// Pending returns the floors with a pending call in dir, sorted ascending.
func (r *FloorRequests) Pending(dir model.Direction) []int {
	set := r.set(dir)
	floors := make([]int, 0, len(set))
	for f := range set {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

func (r *FloorRequests) set(dir model.Direction) map[int]struct{} {
	switch dir {
	case model.DirUp:
		return r.up
	case model.DirDown:
		return r.down
	default:
		return nil
	}
}
