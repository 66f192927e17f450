package dispatch

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/hoistlab/liftcore/core/model"
)

// FleetCopy returns a deep copy of the fleet. Callers can walk or mutate
// the copy freely; the live fleet never leaves the manager's ownership.
func (m *Manager) FleetCopy() (*model.Fleet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fleet == nil {
		return nil, ErrNoCars
	}
	cp := &model.Fleet{}
	if err := deepcopy.Copy(cp, m.fleet); err != nil {
		return nil, err
	}
	return cp, nil
}
