package quality

import "math"

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// span returns hi-lo, substituting 1 when the range is degenerate so the
// rating curves never divide by zero.
func span(hi, lo float64) float64 {
	if d := hi - lo; d > 0 {
		return d
	}
	return 1
}

// Rate computes the quality rating Qi for one parameter. The result is
// clamped to [0,100] for every real input; Rate never panics. A name outside
// the catalog returns *UnknownParameterError — callers that must stay lenient
// (see Evaluator.Overall) skip instead of failing.
func (c *Catalog) Rate(p Parameter, value float64) (float64, error) {
	spec, ok := c.specs[p]
	if !ok {
		return 0, &UnknownParameterError{Name: string(p)}
	}

	var qi float64
	switch spec.Strategy {
	case StrategySymmetric:
		qi = symmetric(spec.Thresholds, value)
	case StrategyFuzzy:
		qi = fuzzyRate(spec.Thresholds, value)
	default:
		qi = monotonic(spec.Thresholds, value)
	}
	return clamp(qi, 0, 100), nil
}

// monotonic is the "lower is better" curve: 100 at or below the ideal,
// falling to 50 at good_high, to 0 at poor_high, and 0 beyond.
func monotonic(th Thresholds, v float64) float64 {
	switch {
	case v <= th.Ideal:
		return 100
	case v <= th.GoodHigh:
		return 100 - (v-th.Ideal)/span(th.GoodHigh, th.Ideal)*50
	case v <= th.PoorHigh:
		return 50 - (v-th.GoodHigh)/span(th.PoorHigh, th.GoodHigh)*50
	default:
		return 0
	}
}

// symmetric is the "range is best" curve: 100 at the ideal, 50 at the edges
// of the good range, 0 at the poor boundaries and beyond.
func symmetric(th Thresholds, v float64) float64 {
	switch {
	case v >= th.GoodLow && v <= th.GoodHigh:
		if v <= th.Ideal {
			return 50 + (v-th.GoodLow)/span(th.Ideal, th.GoodLow)*50
		}
		return 50 + (th.GoodHigh-v)/span(th.GoodHigh, th.Ideal)*50
	case v >= th.PoorLow && v < th.GoodLow:
		return (v - th.PoorLow) / span(th.GoodLow, th.PoorLow) * 50
	case v > th.GoodHigh && v <= th.PoorHigh:
		return (th.PoorHigh - v) / span(th.PoorHigh, th.GoodHigh) * 50
	default:
		return 0
	}
}
