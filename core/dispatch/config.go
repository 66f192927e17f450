package dispatch

import "fmt"

// SweepPolicy selects how the planner advances within the active
// direction.
type SweepPolicy string

const (
	// SweepNearest stops at the closest target ahead before continuing the
	// sweep.
	SweepNearest SweepPolicy = "nearest"
	// SweepFarthest runs to the most distant target ahead, batching all
	// same-direction stops into one sweep before reversing. Fewer
	// reversals, slightly higher worst-case wait for near-side callers.
	SweepFarthest SweepPolicy = "farthest"
)

// Config defines dispatch-related settings. The scoring constants are
// policy, not law: observed deployments differ on them, so they are
// exposed here instead of being hard-coded.
type Config struct {
	IdleBase             float64     `json:"idle_base"`
	IdleDistanceWeight   float64     `json:"idle_distance_weight"`
	ZoneBonus            float64     `json:"zone_bonus"`
	MovingBase           float64     `json:"moving_base"`
	MovingDistanceWeight float64     `json:"moving_distance_weight"`
	LoadPenalty          float64     `json:"load_penalty"`
	Sweep                SweepPolicy `json:"sweep"`
	ZoneOverlap          float64     `json:"zone_overlap"`
	DriftThreshold       int         `json:"drift_threshold"`
}

// SetDefaults fills unset fields with the reference policy values.
func (c *Config) SetDefaults() {
	if c.IdleBase == 0 {
		c.IdleBase = 100
	}
	if c.IdleDistanceWeight == 0 {
		c.IdleDistanceWeight = 2
	}
	if c.ZoneBonus == 0 {
		c.ZoneBonus = 50
	}
	if c.MovingBase == 0 {
		c.MovingBase = 80
	}
	if c.MovingDistanceWeight == 0 {
		c.MovingDistanceWeight = 1
	}
	if c.LoadPenalty == 0 {
		c.LoadPenalty = 0.5
	}
	if c.Sweep == "" {
		c.Sweep = SweepNearest
	}
	if c.DriftThreshold == 0 {
		c.DriftThreshold = 2
	}
}

// Validate checks the configuration for values the scorer and planner
// cannot work with.
func (c Config) Validate() error {
	switch c.Sweep {
	case SweepNearest, SweepFarthest:
	default:
		return fmt.Errorf("dispatch: unknown sweep policy %q", c.Sweep)
	}
	if c.ZoneOverlap < 0 || c.ZoneOverlap > 0.5 {
		return fmt.Errorf("dispatch: zone overlap %v outside [0, 0.5]", c.ZoneOverlap)
	}
	if c.LoadPenalty < 0 || c.LoadPenalty > 1 {
		return fmt.Errorf("dispatch: load penalty %v outside [0, 1]", c.LoadPenalty)
	}
	return nil
}
