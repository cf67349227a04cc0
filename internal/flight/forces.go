package flight

import "math"

// Vec3 is a force, moment or velocity triple in body or ground axes.
type Vec3 [3]float64

// MinAirspeed is the degenerate-airspeed threshold: below it the air-flow
// angles are ill-conditioned, so aerodynamic force and moment short-circuit
// to exactly zero. Gravity is computed separately and always valid.
const MinAirspeed = 0.1

// bodyToGround returns the 3-2-1 Euler rotation matrix taking body-axis
// vectors to ground axes, as rows.
func bodyToGround(phi, theta, psi float64) [3]Vec3 {
	sphi, cphi := math.Sincos(phi)
	sth, cth := math.Sincos(theta)
	spsi, cpsi := math.Sincos(psi)

	return [3]Vec3{
		{cth * cpsi, sphi*sth*cpsi - cphi*spsi, cphi*sth*cpsi + sphi*spsi},
		{cth * spsi, sphi*sth*spsi + cphi*cpsi, cphi*sth*spsi - sphi*cpsi},
		{-sth, sphi * cth, cphi * cth},
	}
}

// airRelativeVelocity returns the body-axis velocity of the vehicle relative
// to the air mass. The steady wind is given in ground axes, so it is rotated
// into body axes with the transpose of the body-to-ground matrix. Zero wind
// leaves the body velocity untouched.
func airRelativeVelocity(s State, env Environment) (ur, vr, wr float64) {
	if env.Wind == [3]float64{} {
		return s.U, s.V, s.W
	}
	r := bodyToGround(s.Phi, s.Theta, s.Psi)
	w := env.Wind
	// The inverse rotation is the transpose, so body components come from
	// the columns of r.
	ur = s.U - (r[0][0]*w[0] + r[1][0]*w[1] + r[2][0]*w[2])
	vr = s.V - (r[0][1]*w[0] + r[1][1]*w[1] + r[2][1]*w[2])
	wr = s.W - (r[0][2]*w[0] + r[1][2]*w[1] + r[2][2]*w[2])
	return ur, vr, wr
}

// AeroForcesMoments computes the instantaneous aerodynamic force and moment
// in body axes. Pure function of its inputs.
//
// Coefficients are built up as baseline + derivative·input, with wind-axis
// lift/drag rotated into body axes by the angle of attack, then scaled by
// dynamic pressure and the reference geometry.
func AeroForcesMoments(s State, aero AeroModel, ac Aircraft, env Environment) (force, moment Vec3) {
	ur, vr, wr := airRelativeVelocity(s, env)

	speed := math.Sqrt(ur*ur + vr*vr + wr*wr)
	if speed < MinAirspeed {
		return Vec3{}, Vec3{}
	}

	alpha := math.Atan2(wr, ur)
	beta := math.Asin(vr / speed)

	qDyn := 0.5 * env.Rho * speed * speed

	// Non-dimensional angular rates.
	pHat := s.P * ac.WingSpan / (2 * speed)
	qHat := s.Q * ac.Chord / (2 * speed)
	rHat := s.R * ac.WingSpan / (2 * speed)

	cl := aero.CL + aero.CLAlpha*alpha + aero.CLQ*qHat
	cd := aero.CD + aero.CDAlpha*alpha
	cy := aero.CY + aero.CYBeta*beta

	cRoll := aero.Cl + aero.ClBeta*beta + aero.ClP*pHat
	cPitch := aero.CM + aero.CMAlpha*alpha + aero.CMQ*qHat
	cYaw := aero.Cn + aero.CnBeta*beta + aero.CnR*rHat

	lift := qDyn * ac.WingArea * cl
	drag := qDyn * ac.WingArea * cd
	side := qDyn * ac.WingArea * cy

	sinA, cosA := math.Sincos(alpha)

	force = Vec3{
		-drag*cosA + lift*sinA,
		side,
		-drag*sinA - lift*cosA,
	}
	moment = Vec3{
		qDyn * ac.WingArea * ac.WingSpan * cRoll,
		qDyn * ac.WingArea * ac.Chord * cPitch,
		qDyn * ac.WingArea * ac.WingSpan * cYaw,
	}
	return force, moment
}

// GravityBody rotates the ground-axis weight vector (0, 0, mg) into body
// axes. Only roll and pitch enter; yaw rotates about the gravity direction.
func GravityBody(s State, ac Aircraft, env Environment) Vec3 {
	sth, cth := math.Sincos(s.Theta)
	sphi, cphi := math.Sincos(s.Phi)

	mg := ac.Mass * env.Gravity
	return Vec3{
		-mg * sth,
		mg * cth * sphi,
		mg * cth * cphi,
	}
}

// TotalForcesMoments is the force/moment pair recorded alongside each
// trajectory sample: aerodynamic force plus gravity, and the aerodynamic
// moment.
func TotalForcesMoments(s State, aero AeroModel, ac Aircraft, env Environment) (force, moment Vec3) {
	fAero, mAero := AeroForcesMoments(s, aero, ac, env)
	fGrav := GravityBody(s, ac, env)
	for i := range force {
		force[i] = fAero[i] + fGrav[i]
	}
	return force, mAero
}
