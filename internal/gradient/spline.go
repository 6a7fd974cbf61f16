package gradient

// segment control points, already clamped to the stop list
type controls struct {
	v0, v1, v2, v3 vec
}

// neighbours of segment i; ends are repeated, never indexed past
func controlPoints(vals []vec, i int) controls {
	last := len(vals) - 1
	idx := func(k int) int {
		if k < 0 {
			return 0
		}
		if k > last {
			return last
		}
		return k
	}
	return controls{
		v0: vals[idx(i-1)],
		v1: vals[idx(i)],
		v2: vals[idx(i+1)],
		v3: vals[idx(i+2)],
	}
}

func linear(f, a, b float64) float64 {
	return a + f*(b-a)
}

// uniform cubic B-spline blending weights
func basis(f, v0, v1, v2, v3 float64) float64 {
	f2 := f * f
	f3 := f2 * f
	return ((1-3*f+3*f2-f3)*v0 +
		(4-6*f2+3*f3)*v1 +
		(1+3*f+3*f2-3*f3)*v2 +
		f3*v3) / 6
}

func catmullRom(f, v0, v1, v2, v3 float64) float64 {
	f2 := f * f
	f3 := f2 * f
	return 0.5 * (2*v1 +
		(-v0+v2)*f +
		(2*v0-5*v1+4*v2-v3)*f2 +
		(-v0+3*v1-3*v2+v3)*f3)
}

func (c *controls) eval(interp Interpolation, f float64) vec {
	var out vec
	for k := 0; k < 3; k++ {
		switch interp {
		case InterpBasis:
			out[k] = basis(f, c.v0[k], c.v1[k], c.v2[k], c.v3[k])
		case InterpCatmullRom:
			out[k] = catmullRom(f, c.v0[k], c.v1[k], c.v2[k], c.v3[k])
		default:
			out[k] = linear(f, c.v1[k], c.v2[k])
		}
	}
	return out
}
