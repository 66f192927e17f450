package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoistlab/liftcore/core/model"
)

func TestHomeFloorTwoCars(t *testing.T) {
	assert.Equal(t, 2, HomeFloor(0, 2, 9))
	assert.Equal(t, 7, HomeFloor(1, 2, 9))
}

func TestHomeFloorSingleCar(t *testing.T) {
	assert.Equal(t, 4, HomeFloor(0, 1, 9))
	assert.Equal(t, model.Zone{Low: 0, High: 9}, For(0, 1, 9, 0))
}

func TestForTwoCars(t *testing.T) {
	assert.Equal(t, model.Zone{Low: 0, High: 4}, For(0, 2, 9, 0))
	assert.Equal(t, model.Zone{Low: 5, High: 9}, For(1, 2, 9, 0))
}

// With overlap 0 the zones must tile [0, maxFloor] exactly: contiguous,
// non-overlapping, first starts at 0 and last ends at the top floor.
func TestForPartitionsBuilding(t *testing.T) {
	for _, total := range []int{1, 2, 3, 4, 5} {
		for _, maxFloor := range []int{4, 9, 15, 30} {
			if maxFloor+1 < 2*total {
				continue
			}
			prev := -1
			for i := 0; i < total; i++ {
				z := For(i, total, maxFloor, 0)
				assert.Equal(t, prev+1, z.Low, "cars=%d maxFloor=%d zone %d", total, maxFloor, i)
				assert.LessOrEqual(t, z.Low, z.High, "cars=%d maxFloor=%d zone %d", total, maxFloor, i)
				home := HomeFloor(i, total, maxFloor)
				assert.True(t, z.Contains(home), "home %d outside zone %+v", home, z)
				prev = z.High
			}
			assert.Equal(t, maxFloor, prev, "cars=%d maxFloor=%d", total, maxFloor)
		}
	}
}

func TestForOverlapWidens(t *testing.T) {
	base := For(1, 3, 14, 0)
	wide := For(1, 3, 14, 0.2)
	assert.Less(t, wide.Low, base.Low)
	assert.Greater(t, wide.High, base.High)

	// Edge zones stay clamped to the building.
	first := For(0, 3, 14, 0.2)
	last := For(2, 3, 14, 0.2)
	assert.Equal(t, 0, first.Low)
	assert.Equal(t, 14, last.High)
}
