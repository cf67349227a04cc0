package flight

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/postflight/internal/dynamo"
)

// DefaultSecThetaLimit bounds 1/cos(θ) in the Euler-angle rate equations.
// When the true secant exceeds it the attitude kinematics are treated as
// singular; the run loop reports that as a failure instead of letting ψ̇
// blow up.
const DefaultSecThetaLimit = 100.0

// Dynamics is the rigid-body 6-DOF equations of motion for one vehicle
// condition. It implements dynamo.System over the 12-element state vector
// and holds only read-only inputs, so one value may be shared by
// concurrent runs.
type Dynamics struct {
	Aircraft Aircraft
	Aero     AeroModel
	Env      Environment

	// SecThetaLimit clamps the secant in the kinematic equations.
	// Zero means DefaultSecThetaLimit.
	SecThetaLimit float64
}

func NewDynamics(ac Aircraft, aero AeroModel, env Environment) *Dynamics {
	return &Dynamics{
		Aircraft:      ac,
		Aero:          aero,
		Env:           env,
		SecThetaLimit: DefaultSecThetaLimit,
	}
}

func (d *Dynamics) Dim() int { return StateDim }

func (d *Dynamics) secLimit() float64 {
	if d.SecThetaLimit > 0 {
		return d.SecThetaLimit
	}
	return DefaultSecThetaLimit
}

// Singular reports whether the pitch angle is close enough to ±90° that the
// Euler-rate equations exceed the configured secant bound.
func (d *Dynamics) Singular(s State) bool {
	return math.Abs(math.Cos(s.Theta))*d.secLimit() < 1
}

// Derive evaluates the state derivative: translational kinematics in ground
// axes, Newton's second law in body axes with the ω×V coupling, 3-2-1
// Euler-angle rate kinematics, and the Newton-Euler rotational equation
// I·ω̇ = M − ω×(I·ω) solved fresh each call.
func (d *Dynamics) Derive(x dynamo.State, t float64) dynamo.State {
	s := FromVector(x)
	ac := d.Aircraft

	fAero, mAero := AeroForcesMoments(s, d.Aero, ac, d.Env)
	fGrav := GravityBody(s, ac, d.Env)

	fx := fAero[0] + fGrav[0]
	fy := fAero[1] + fGrav[1]
	fz := fAero[2] + fGrav[2]

	// Position derivative, ground axes.
	r := bodyToGround(s.Phi, s.Theta, s.Psi)
	xDot := r[0][0]*s.U + r[0][1]*s.V + r[0][2]*s.W
	yDot := r[1][0]*s.U + r[1][1]*s.V + r[1][2]*s.W
	zDot := r[2][0]*s.U + r[2][1]*s.V + r[2][2]*s.W

	// Velocity derivative, body axes: F/m − ω×V.
	uDot := fx/ac.Mass - (s.Q*s.W - s.R*s.V)
	vDot := fy/ac.Mass - (s.R*s.U - s.P*s.W)
	wDot := fz/ac.Mass - (s.P*s.V - s.Q*s.U)

	// Euler-angle rates. secθ is clamped at the configured bound; the run
	// loop separately reports the singular region as a failure.
	sphi, cphi := math.Sincos(s.Phi)
	sth, cth := math.Sincos(s.Theta)
	tanTheta := sth / cth
	secTheta := 1 / cth
	if limit := d.secLimit(); math.Abs(secTheta) > limit {
		secTheta = math.Copysign(limit, secTheta)
		tanTheta = math.Copysign(limit, tanTheta)
	}

	phiDot := s.P + (s.Q*sphi+s.R*cphi)*tanTheta
	thetaDot := s.Q*cphi - s.R*sphi
	psiDot := (s.Q*sphi + s.R*cphi) * secTheta

	// Angular acceleration: solve I·ω̇ = M − ω×(I·ω). The solve is redone
	// every evaluation because ω changes.
	iw := Vec3{
		ac.Ixx*s.P - ac.Ixz*s.R,
		ac.Iyy * s.Q,
		-ac.Ixz*s.P + ac.Izz*s.R,
	}
	rhs := mat.NewVecDense(3, []float64{
		mAero[0] - (s.Q*iw[2] - s.R*iw[1]),
		mAero[1] - (s.R*iw[0] - s.P*iw[2]),
		mAero[2] - (s.P*iw[1] - s.Q*iw[0]),
	})
	inertia := mat.NewDense(3, 3, []float64{
		ac.Ixx, 0, -ac.Ixz,
		0, ac.Iyy, 0,
		-ac.Ixz, 0, ac.Izz,
	})

	var omegaDot mat.VecDense
	pDot, qDot, rDot := math.NaN(), math.NaN(), math.NaN()
	if err := omegaDot.SolveVec(inertia, rhs); err == nil {
		// A singular inertia tensor surfaces as NaN and fails the run
		// as a divergence.
		pDot = omegaDot.AtVec(0)
		qDot = omegaDot.AtVec(1)
		rDot = omegaDot.AtVec(2)
	}

	return dynamo.State{
		xDot, yDot, zDot,
		uDot, vDot, wDot,
		phiDot, thetaDot, psiDot,
		pDot, qDot, rDot,
	}
}

// Energy is total mechanical energy: translational plus rotational kinetic
// energy plus gravitational potential (altitude is -z).
func (d *Dynamics) Energy(x dynamo.State) float64 {
	s := FromVector(x)
	ac := d.Aircraft

	keTrans := 0.5 * ac.Mass * (s.U*s.U + s.V*s.V + s.W*s.W)
	keRot := 0.5 * (ac.Ixx*s.P*s.P + ac.Iyy*s.Q*s.Q + ac.Izz*s.R*s.R) -
		ac.Ixz*s.P*s.R
	pe := ac.Mass * d.Env.Gravity * s.Altitude()

	return keTrans + keRot + pe
}
