package flight

import (
	"fmt"
	"math"

	"github.com/san-kum/postflight/internal/dynamo"
)

// StateDim is the number of components in a flight state vector.
const StateDim = 12

// State is the complete instantaneous condition of the vehicle.
//
// Position is in ground axes with z measured downward, so altitude = -Z.
// Velocity and angular rates are in body axes (x forward, y right, z down).
// Attitude is 3-2-1 Euler angles.
type State struct {
	X, Y, Z float64 // position, ground axes (m)

	U, V, W float64 // velocity, body axes (m/s)

	Phi, Theta, Psi float64 // roll, pitch, yaw (rad)

	P, Q, R float64 // angular rates, body axes (rad/s)
}

// Vector flattens the state into the integration ordering
// [x y z u v w phi theta psi p q r].
func (s State) Vector() dynamo.State {
	return dynamo.State{
		s.X, s.Y, s.Z,
		s.U, s.V, s.W,
		s.Phi, s.Theta, s.Psi,
		s.P, s.Q, s.R,
	}
}

// FromVector rebuilds a State from its 12-element vector form. Round-trips
// bit-for-bit with Vector.
func FromVector(x dynamo.State) State {
	return State{
		X: x[0], Y: x[1], Z: x[2],
		U: x[3], V: x[4], W: x[5],
		Phi: x[6], Theta: x[7], Psi: x[8],
		P: x[9], Q: x[10], R: x[11],
	}
}

// Airspeed is the magnitude of the body-axis velocity.
func (s State) Airspeed() float64 {
	return math.Sqrt(s.U*s.U + s.V*s.V + s.W*s.W)
}

// Altitude is height above the ground plane (positive up).
func (s State) Altitude() float64 { return -s.Z }

// GroundRange is distance from the origin in the ground plane.
func (s State) GroundRange() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y)
}

// Valid reports whether every component is a finite real number.
func (s State) Valid() bool {
	return s.Vector().IsValid()
}

// Aircraft holds the static vehicle description: mass, the symmetric-aircraft
// inertia tensor (zero Ixy/Iyz) and the reference geometry used to
// non-dimensionalize aerodynamic quantities. Immutable for one run.
type Aircraft struct {
	Mass float64 `yaml:"mass"` // kg

	Ixx float64 `yaml:"ixx"` // kg·m²
	Iyy float64 `yaml:"iyy"`
	Izz float64 `yaml:"izz"`
	Ixz float64 `yaml:"ixz"`

	WingArea float64 `yaml:"wing_area"` // m²
	WingSpan float64 `yaml:"wing_span"` // m
	Chord    float64 `yaml:"chord"`     // mean aerodynamic chord, m
}

// Validate rejects non-physical mass/inertia before a run starts.
func (a Aircraft) Validate() error {
	if !(a.Mass > 0) {
		return fmt.Errorf("mass must be positive, got %g", a.Mass)
	}
	if !(a.Ixx > 0) || !(a.Iyy > 0) || !(a.Izz > 0) {
		return fmt.Errorf("principal inertias must be positive, got Ixx=%g Iyy=%g Izz=%g", a.Ixx, a.Iyy, a.Izz)
	}
	if math.IsNaN(a.Ixz) || math.IsInf(a.Ixz, 0) {
		return fmt.Errorf("Ixz must be finite, got %g", a.Ixz)
	}
	if !(a.WingArea > 0) || !(a.WingSpan > 0) || !(a.Chord > 0) {
		return fmt.Errorf("reference geometry must be positive, got S=%g b=%g c=%g", a.WingArea, a.WingSpan, a.Chord)
	}
	return nil
}

// Environment is the atmosphere for one run: constant density, gravity and
// an optional steady wind given in ground axes.
type Environment struct {
	Rho     float64    `yaml:"rho"`     // air density, kg/m³
	Gravity float64    `yaml:"gravity"` // m/s²
	Wind    [3]float64 `yaml:"wind"`    // ground axes, m/s
}
