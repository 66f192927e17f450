package model

// Fleet aggregates the cars of one building. It replaces free-floating
// per-car registries so several independent fleets can coexist in process.
type Fleet struct {
	Cars []*Car
}

// NewFleet creates count resting cars with the given capacity.
func NewFleet(count, capacity int) *Fleet {
	cars := make([]*Car, count)
	for i := range cars {
		cars[i] = NewCar(i, capacity)
	}
	return &Fleet{Cars: cars}
}

// ByID returns the car with the given id, or false when out of range.
func (f *Fleet) ByID(id int) (*Car, bool) {
	if id < 0 || id >= len(f.Cars) {
		return nil, false
	}
	return f.Cars[id], true
}

// Len returns the number of cars.
func (f *Fleet) Len() int { return len(f.Cars) }
