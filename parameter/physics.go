package parameter

import (
	"errors"
	"fmt"
	"math"
)

// Force model defaults
const (
	// CoulombConstant scales pairwise charge interaction
	CoulombConstant = 1.0

	// MinDistanceSq skips pairwise forces below this squared separation (scene units²)
	MinDistanceSq = 0.01

	// MouseMaxAccel is the acceleration ceiling of pointer attraction
	MouseMaxAccel = 10.0

	// MouseMaxRange is the distance at which pointer attraction saturates
	MouseMaxRange = 10.0

	// Damping is the per-tick velocity retention factor
	Damping = 0.995

	// Restitution is the velocity retention on a boundary bounce
	Restitution = 0.8

	// UnitConversion turns per-second velocity into per-millisecond displacement
	UnitConversion = 0.001
)

// Scene defaults
const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0

	// NodeCharge is the charge given to demo nodes
	NodeCharge = 50.0

	EdgeRestLength = 50.0
	EdgeStiffness  = 0.05
)

// Forces enables or disables individual force passes
// Integration always runs; a disabled spring pass still prunes dangling edges
type Forces struct {
	Mouse    bool
	Spring   bool
	Coulomb  bool
	Damping  bool
	Boundary bool
}

// AllForces returns a Forces value with every pass enabled
func AllForces() Forces {
	return Forces{Mouse: true, Spring: true, Coulomb: true, Damping: true, Boundary: true}
}

// Physics holds the tunables read by the force and integration systems
type Physics struct {
	CoulombConstant float64
	MinDistanceSq   float64
	MouseMaxAccel   float64
	MouseMaxRange   float64
	Damping         float64
	Restitution     float64
	UnitConversion  float64

	Forces Forces
}

// DefaultPhysics returns the reference parameter set
func DefaultPhysics() *Physics {
	return &Physics{
		CoulombConstant: CoulombConstant,
		MinDistanceSq:   MinDistanceSq,
		MouseMaxAccel:   MouseMaxAccel,
		MouseMaxRange:   MouseMaxRange,
		Damping:         Damping,
		Restitution:     Restitution,
		UnitConversion:  UnitConversion,
		Forces:          AllForces(),
	}
}

// ErrInvalidParameter is returned by Validate for out-of-range tunables
var ErrInvalidParameter = errors.New("invalid physics parameter")

// Validate checks ranges that would otherwise break finiteness or decay guarantees
func (p *Physics) Validate() error {
	finite := map[string]float64{
		"coulomb_constant": p.CoulombConstant,
		"min_distance_sq":  p.MinDistanceSq,
		"mouse_max_accel":  p.MouseMaxAccel,
		"mouse_max_range":  p.MouseMaxRange,
		"damping":          p.Damping,
		"restitution":      p.Restitution,
		"unit_conversion":  p.UnitConversion,
	}
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, name, v)
		}
	}
	if p.MinDistanceSq <= 0 {
		return fmt.Errorf("%w: min_distance_sq must be positive, got %v", ErrInvalidParameter, p.MinDistanceSq)
	}
	if p.MouseMaxRange <= 0 {
		return fmt.Errorf("%w: mouse_max_range must be positive, got %v", ErrInvalidParameter, p.MouseMaxRange)
	}
	if p.Damping <= 0 || p.Damping >= 1 {
		return fmt.Errorf("%w: damping must be in (0, 1), got %v", ErrInvalidParameter, p.Damping)
	}
	if p.Restitution < 0 || p.Restitution >= 1 {
		return fmt.Errorf("%w: restitution must be in [0, 1), got %v", ErrInvalidParameter, p.Restitution)
	}
	if p.UnitConversion <= 0 {
		return fmt.Errorf("%w: unit_conversion must be positive, got %v", ErrInvalidParameter, p.UnitConversion)
	}
	return nil
}
