package boot

// Interpolate maps p through the piecewise linear curve defined by inRange and
// outRange. inRange must be ascending and the same length as outRange. Values
// outside inRange clamp to the first or last output.
func Interpolate(p float64, inRange, outRange []float64) float64 {
	n := len(inRange)
	if n == 0 || n != len(outRange) {
		return 0
	}
	if p <= inRange[0] {
		return outRange[0]
	}
	if p >= inRange[n-1] {
		return outRange[n-1]
	}
	for i := 1; i < n; i++ {
		if p > inRange[i] {
			continue
		}
		lo, hi := inRange[i-1], inRange[i]
		if hi == lo {
			return outRange[i]
		}
		t := (p - lo) / (hi - lo)
		return outRange[i-1] + t*(outRange[i]-outRange[i-1])
	}
	return outRange[n-1]
}

// curve is a keyframed channel expressed in milliseconds of the timeline
type curve struct {
	in  []float64
	out []float64
}

// at evaluates the curve at progress p in [0,1] for a timeline of total ms
func (c curve) at(p, total float64) float64 {
	in := make([]float64, len(c.in))
	for i, ms := range c.in {
		in[i] = ms / total
	}
	return Interpolate(p, in, c.out)
}
