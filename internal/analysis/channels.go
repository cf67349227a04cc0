package analysis

import (
	"math"

	"github.com/san-kum/postflight/internal/flight"
	"github.com/san-kum/postflight/internal/sim"
)

const radToDeg = 180 / math.Pi

// channels is a trajectory unpacked into the scalar series the heuristics
// operate on. Attitude and rate statistics are in degrees; that is the scale
// the score formulas were calibrated against.
type channels struct {
	times []float64

	altitude []float64 // m, positive up
	rng      []float64 // ground-plane range from origin, m
	speed    []float64 // total body-axis speed, m/s
	fpaDeg   []float64 // flight-path angle, degrees

	phiDeg, thetaDeg, psiDeg []float64
	pDeg, qDeg, rDeg         []float64
}

func extract(tr *sim.Trajectory) *channels {
	n := tr.Len()
	ch := &channels{
		times:    tr.Times,
		altitude: make([]float64, n),
		rng:      make([]float64, n),
		speed:    make([]float64, n),
		fpaDeg:   make([]float64, n),
		phiDeg:   make([]float64, n),
		thetaDeg: make([]float64, n),
		psiDeg:   make([]float64, n),
		pDeg:     make([]float64, n),
		qDeg:     make([]float64, n),
		rDeg:     make([]float64, n),
	}

	for i, st := range tr.States {
		ch.altitude[i] = st.Altitude()
		ch.rng[i] = st.GroundRange()

		v := st.Airspeed()
		ch.speed[i] = v
		if v > flight.MinAirspeed {
			ch.fpaDeg[i] = math.Asin(-st.W/v) * radToDeg
		}

		ch.phiDeg[i] = st.Phi * radToDeg
		ch.thetaDeg[i] = st.Theta * radToDeg
		ch.psiDeg[i] = st.Psi * radToDeg

		ch.pDeg[i] = st.P * radToDeg
		ch.qDeg[i] = st.Q * radToDeg
		ch.rDeg[i] = st.R * radToDeg
	}
	return ch
}

func (ch *channels) sampleInterval() float64 {
	if len(ch.times) < 2 {
		return 0
	}
	return ch.times[1] - ch.times[0]
}
