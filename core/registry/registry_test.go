package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoistlab/liftcore/core/model"
)

func TestAddClearIdempotent(t *testing.T) {
	r := New(9)
	r.AddCall(5, model.DirUp)
	r.AddCall(5, model.DirUp)
	assert.True(t, r.Has(5, model.DirUp))
	assert.False(t, r.Has(5, model.DirDown))
	assert.Equal(t, []int{5}, r.Pending(model.DirUp))

	r.ClearCall(5, model.DirUp)
	r.ClearCall(5, model.DirUp)
	assert.False(t, r.Has(5, model.DirUp))
	assert.False(t, r.HasAny())
}

func TestDirectionsIndependent(t *testing.T) {
	r := New(9)
	r.AddCall(3, model.DirUp)
	r.AddCall(3, model.DirDown)
	r.ClearCall(3, model.DirUp)
	assert.True(t, r.Has(3, model.DirDown), "clearing up must not clear down")
}

func TestDirNoneIgnored(t *testing.T) {
	r := New(9)
	r.AddCall(4, model.DirNone)
	assert.False(t, r.HasAny())
	assert.False(t, r.Has(4, model.DirNone))
}

func TestPendingFloorsSortedUnion(t *testing.T) {
	r := New(9)
	r.AddCall(7, model.DirDown)
	r.AddCall(2, model.DirUp)
	r.AddCall(7, model.DirUp)
	r.AddCall(0, model.DirUp)
	assert.Equal(t, []int{0, 2, 7}, r.PendingFloors())
	assert.Equal(t, []int{0, 2, 7}, r.Pending(model.DirUp))
	assert.Equal(t, []int{7}, r.Pending(model.DirDown))
	assert.Equal(t, 9, r.MaxFloor())
}
