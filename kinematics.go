package anim2d

import "math"

// Closed-form solutions of the constant-acceleration motion equations
//
//	s = v0*t + a*t²/2
//	v = v0 + a*t
//
// along a one-dimensional path coordinate. Functions return NaN when the
// requested quantity has no real, non-negative solution; callers are expected
// to check for it.

// TimeGivenDVA returns the smallest non-negative time at which an object
// starting with velocity v0 and constant acceleration a has traveled s.
func TimeGivenDVA(s, v0, a float64) float64 {
	if s == 0 {
		return 0
	}
	if a == 0 {
		if v0 == 0 {
			return math.NaN()
		}
		t := s / v0
		if t < 0 {
			return math.NaN()
		}
		return t
	}
	descr := v0*v0 + 2*a*s
	if descr < 0 {
		return math.NaN()
	}
	root := math.Sqrt(descr)
	tL := (-root - v0) / a
	tH := (root - v0) / a
	if tL > tH {
		tL, tH = tH, tL
	}
	if tL >= 0 {
		return tL
	}
	if tH >= 0 {
		return tH
	}
	// Both roots negative: the only remaining solution is the contact case.
	if a*s >= 0 {
		return 0
	}
	return math.NaN()
}

// VelocityGivenDVA returns the velocity after traveling s starting at v0 with
// acceleration a.
func VelocityGivenDVA(s, v0, a float64) float64 {
	return v0 + a*TimeGivenDVA(s, v0, a)
}

// DistGivenTVA returns the distance traveled in time t.
func DistGivenTVA(t, v0, a float64) float64 {
	return v0*t + 0.5*a*t*t
}

// VelocityGivenTVA returns the velocity after time t.
func VelocityGivenTVA(t, v0, a float64) float64 {
	return v0 + a*t
}

// DistGivenTVV returns the distance traveled in time t while the velocity
// changes uniformly from v1 to v2.
func DistGivenTVV(t, v1, v2 float64) float64 {
	return t * (v1 + v2) / 2
}

// AccelGivenTVV returns the acceleration that changes v1 into v2 in time t.
func AccelGivenTVV(t, v1, v2 float64) float64 {
	if v1 == v2 {
		return 0
	}
	if t == 0 {
		return math.NaN()
	}
	return (v2 - v1) / t
}

// TimeGivenDVV returns the time needed to travel s while the velocity changes
// uniformly from v1 to v2.
func TimeGivenDVV(s, v1, v2 float64) float64 {
	if s == 0 {
		return 0
	}
	if v1+v2 == 0 {
		return math.NaN()
	}
	t := 2 * s / (v1 + v2)
	if t < 0 {
		return math.NaN()
	}
	return t
}

// AccelGivenDVV returns the acceleration that changes v1 into v2 over a
// distance s.
func AccelGivenDVV(s, v1, v2 float64) float64 {
	if v1 == v2 {
		return 0
	}
	if s == 0 {
		return math.NaN()
	}
	return (v2*v2 - v1*v1) / (2 * s)
}

// TimeGivenVVA returns the time acceleration a needs to change v1 into v2.
func TimeGivenVVA(v1, v2, a float64) float64 {
	if v1 == v2 {
		return 0
	}
	if a == 0 {
		return math.NaN()
	}
	t := (v2 - v1) / a
	if t < 0 {
		return math.NaN()
	}
	return t
}

// DistGivenVVA returns the distance traveled while acceleration a changes v1
// into v2.
func DistGivenVVA(v1, v2, a float64) float64 {
	t := TimeGivenVVA(v1, v2, a)
	if math.IsNaN(t) {
		return t
	}
	return v1*t + 0.5*a*t*t
}
