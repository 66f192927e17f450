package simulator

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one simulation run. Waits and travels are measured in
// ticks; one tick is one floor of car motion.
type Stats struct {
	Ticks          int
	Spawned        int
	Delivered      int
	Stranded       int
	MeanWait       float64
	P95Wait        float64
	MaxWait        float64
	MeanTravel     float64
	FloorsTraveled []int
}

// TotalEnergy returns the fleet-wide floors traveled, the energy proxy.
func (s Stats) TotalEnergy() int {
	total := 0
	for _, n := range s.FloorsTraveled {
		total += n
	}
	return total
}

// String renders a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d spawned=%d delivered=%d stranded=%d wait(mean=%.1f p95=%.1f max=%.0f) travel(mean=%.1f) energy=%d",
		s.Ticks, s.Spawned, s.Delivered, s.Stranded, s.MeanWait, s.P95Wait, s.MaxWait, s.MeanTravel, s.TotalEnergy())
}

// summarize fills the wait and travel aggregates from delivered riders.
func (s *Stats) summarize(done []*rider) {
	if len(done) == 0 {
		return
	}
	waits := make([]float64, 0, len(done))
	travels := make([]float64, 0, len(done))
	for _, r := range done {
		waits = append(waits, float64(r.boardTick-r.callTick))
		travels = append(travels, float64(r.doneTick-r.boardTick))
	}
	sort.Float64s(waits)
	s.MeanWait = stat.Mean(waits, nil)
	s.P95Wait = stat.Quantile(0.95, stat.Empirical, waits, nil)
	s.MaxWait = waits[len(waits)-1]
	s.MeanTravel = stat.Mean(travels, nil)
}
