package quality

import "math"

// Fuzzy membership rating for parameters with an interior optimum. The crisp
// input is fuzzified into three linguistic levels (poor, good, excellent), a
// rule base maps each level to an output singleton, and the weighted centroid
// of the singletons is the defuzzified rating. With triangular memberships
// anchored on the catalog thresholds the curve coincides with the symmetric
// piecewise-linear one, so the two strategies are interchangeable.

// Output singletons for the three linguistic levels.
const (
	levelPoor      = 0.0
	levelGood      = 50.0
	levelExcellent = 100.0
)

type membership struct {
	poor      float64
	good      float64
	excellent float64
}

// triangle is the degree of membership of v in the triangular set rising
// from lo to peak and falling from peak to hi.
func triangle(v, lo, peak, hi float64) float64 {
	switch {
	case v <= lo || v >= hi:
		return 0
	case v <= peak:
		return (v - lo) / span(peak, lo)
	default:
		return (hi - v) / span(hi, peak)
	}
}

// fuzzify computes the three membership degrees for v:
//   - excellent peaks at the ideal and vanishes at the good-range edges;
//   - good peaks at either good-range edge and vanishes at the ideal and the
//     poor boundaries;
//   - poor is full outside the poor range, vanishing at the good-range edges.
func fuzzify(th Thresholds, v float64) membership {
	m := membership{
		excellent: triangle(v, th.GoodLow, th.Ideal, th.GoodHigh),
		good: math.Max(
			triangle(v, th.PoorLow, th.GoodLow, th.Ideal),
			triangle(v, th.Ideal, th.GoodHigh, th.PoorHigh),
		),
	}
	switch {
	case v <= th.PoorLow || v >= th.PoorHigh:
		m.poor = 1
	case v < th.GoodLow:
		m.poor = (th.GoodLow - v) / span(th.GoodLow, th.PoorLow)
	case v > th.GoodHigh:
		m.poor = (v - th.GoodHigh) / span(th.PoorHigh, th.GoodHigh)
	}
	return m
}

// fuzzyRate applies the rule base (poor->0, good->50, excellent->100) and
// defuzzifies by weighted centroid.
func fuzzyRate(th Thresholds, v float64) float64 {
	m := fuzzify(th, v)
	total := m.poor + m.good + m.excellent
	if total == 0 {
		return 0
	}
	return (m.poor*levelPoor + m.good*levelGood + m.excellent*levelExcellent) / total
}
