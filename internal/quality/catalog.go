package quality

import (
	"fmt"
	"math"
)

// Parameter identifies one of the fifteen measured water-quality parameters.
// The set is closed: caller input is checked against it at the boundary, and
// internal code never deals with names outside it.
type Parameter string

const (
	Temperature          Parameter = "Temperature"
	PH                   Parameter = "pH"
	Turbidity            Parameter = "Turbidity"
	DissolvedOxygen      Parameter = "Dissolved Oxygen"
	Conductivity         Parameter = "Conductivity"
	TotalDissolvedSolids Parameter = "Total Dissolved Solids"
	Nitrate              Parameter = "Nitrate"
	Phosphate            Parameter = "Phosphate"
	TotalColiforms       Parameter = "Total Coliforms"
	EColi                Parameter = "E. coli"
	BOD                  Parameter = "BOD"
	COD                  Parameter = "COD"
	Hardness             Parameter = "Hardness"
	Alkalinity           Parameter = "Alkalinity"
	Iron                 Parameter = "Iron"
)

// Parameters lists every supported parameter in canonical order. Reports,
// charts, and validation iterate this slice so output is deterministic.
var Parameters = []Parameter{
	Temperature, PH, Turbidity, DissolvedOxygen, Conductivity,
	TotalDissolvedSolids, Nitrate, Phosphate, TotalColiforms, EColi,
	BOD, COD, Hardness, Alkalinity, Iron,
}

var parameterOrder = func() map[Parameter]int {
	m := make(map[Parameter]int, len(Parameters))
	for i, p := range Parameters {
		m[p] = i
	}
	return m
}()

// RatingStrategy selects the curve family used to rate a parameter.
type RatingStrategy int

const (
	// StrategyMonotonic rates "lower is better" parameters: 100 at or below
	// the ideal, falling linearly through the good and poor ranges.
	StrategyMonotonic RatingStrategy = iota
	// StrategySymmetric rates "range is best" parameters with an interior
	// optimum, rising toward the ideal and falling away from it.
	StrategySymmetric
	// StrategyFuzzy rates via three fuzzy membership functions and centroid
	// defuzzification. Only pH and Dissolved Oxygen may bind it.
	StrategyFuzzy
)

func (s RatingStrategy) String() string {
	switch s {
	case StrategyMonotonic:
		return "monotonic"
	case StrategySymmetric:
		return "symmetric"
	case StrategyFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Thresholds holds the five curve anchors and display unit for one parameter.
type Thresholds struct {
	Ideal    float64
	GoodLow  float64
	GoodHigh float64
	PoorLow  float64
	PoorHigh float64
	Unit     string
}

// ParameterSpec is a parameter's complete catalog entry: thresholds, weight,
// and the rating strategy bound to it.
type ParameterSpec struct {
	Thresholds
	Weight   float64
	Strategy RatingStrategy
}

// weightTolerance is how far the weight sum may drift from 1.0.
const weightTolerance = 1e-6

// DefaultWeights returns the canonical weight distribution. The values sum to
// exactly 1.0.
func DefaultWeights() map[Parameter]float64 {
	return map[Parameter]float64{
		Temperature:          0.04,
		PH:                   0.10,
		Turbidity:            0.09,
		DissolvedOxygen:      0.10,
		Conductivity:         0.06,
		TotalDissolvedSolids: 0.06,
		Nitrate:              0.08,
		Phosphate:            0.09,
		TotalColiforms:       0.08,
		EColi:                0.08,
		BOD:                  0.05,
		COD:                  0.05,
		Hardness:             0.05,
		Alkalinity:           0.04,
		Iron:                 0.03,
	}
}

// DefaultThresholds returns the canonical threshold table. For symmetric
// parameters the anchors satisfy poor_low <= good_low <= ideal <= good_high
// <= poor_high; for monotonic parameters ideal <= good_high <= poor_high and
// the low anchors are unused by the curve.
func DefaultThresholds() map[Parameter]Thresholds {
	return map[Parameter]Thresholds{
		Temperature:          {Ideal: 20, GoodLow: 15, GoodHigh: 25, PoorLow: 10, PoorHigh: 30, Unit: "°C"},
		PH:                   {Ideal: 7.0, GoodLow: 6.5, GoodHigh: 8.5, PoorLow: 6.0, PoorHigh: 9.0, Unit: ""},
		Turbidity:            {Ideal: 0, GoodLow: 0, GoodHigh: 1, PoorLow: 0, PoorHigh: 5, Unit: "NTU"},
		DissolvedOxygen:      {Ideal: 8, GoodLow: 6, GoodHigh: 12, PoorLow: 5, PoorHigh: 14, Unit: "mg/L"},
		Conductivity:         {Ideal: 200, GoodLow: 50, GoodHigh: 1000, PoorLow: 0, PoorHigh: 2500, Unit: "µS/cm"},
		TotalDissolvedSolids: {Ideal: 250, GoodLow: 30, GoodHigh: 500, PoorLow: 0, PoorHigh: 1000, Unit: "mg/L"},
		Nitrate:              {Ideal: 2, GoodLow: 0, GoodHigh: 5, PoorLow: 0, PoorHigh: 10, Unit: "mg/L"},
		Phosphate:            {Ideal: 0.05, GoodLow: 0, GoodHigh: 0.1, PoorLow: 0, PoorHigh: 0.5, Unit: "mg/L"},
		TotalColiforms:       {Ideal: 0, GoodLow: 0, GoodHigh: 0, PoorLow: 0, PoorHigh: 10, Unit: "CFU/100mL"},
		EColi:                {Ideal: 0, GoodLow: 0, GoodHigh: 0, PoorLow: 0, PoorHigh: 1, Unit: "CFU/100mL"},
		BOD:                  {Ideal: 1, GoodLow: 0, GoodHigh: 2, PoorLow: 0, PoorHigh: 5, Unit: "mg/L"},
		COD:                  {Ideal: 10, GoodLow: 0, GoodHigh: 20, PoorLow: 0, PoorHigh: 50, Unit: "mg/L"},
		Hardness:             {Ideal: 150, GoodLow: 60, GoodHigh: 300, PoorLow: 30, PoorHigh: 500, Unit: "mg/L"},
		Alkalinity:           {Ideal: 100, GoodLow: 20, GoodHigh: 200, PoorLow: 10, PoorHigh: 300, Unit: "mg/L"},
		Iron:                 {Ideal: 0.1, GoodLow: 0, GoodHigh: 0.3, PoorLow: 0, PoorHigh: 0.5, Unit: "mg/L"},
	}
}

// defaultStrategies binds each parameter to its curve family.
var defaultStrategies = map[Parameter]RatingStrategy{
	Temperature:          StrategySymmetric,
	PH:                   StrategySymmetric,
	Turbidity:            StrategyMonotonic,
	DissolvedOxygen:      StrategySymmetric,
	Conductivity:         StrategyMonotonic,
	TotalDissolvedSolids: StrategyMonotonic,
	Nitrate:              StrategyMonotonic,
	Phosphate:            StrategyMonotonic,
	TotalColiforms:       StrategyMonotonic,
	EColi:                StrategyMonotonic,
	BOD:                  StrategyMonotonic,
	COD:                  StrategyMonotonic,
	Hardness:             StrategySymmetric,
	Alkalinity:           StrategySymmetric,
	Iron:                 StrategyMonotonic,
}

// Catalog is the immutable rating configuration for all fifteen parameters.
// It is built once at startup and shared read-only across evaluations.
type Catalog struct {
	specs map[Parameter]ParameterSpec
}

// NewCatalog builds a catalog from the given weight and threshold tables.
// A nil table selects the canonical defaults; a non-nil table replaces the
// defaults wholesale (no per-key merge). fuzzyPHDO swaps pH and Dissolved
// Oxygen from the symmetric curve to the fuzzy membership strategy.
//
// Returns *ConfigurationError when the tables do not cover exactly the
// supported parameter set, when any weight is outside [0,1], when the weights
// do not sum to 1 within 1e-6, or when a threshold set is malformed.
func NewCatalog(weights map[Parameter]float64, thresholds map[Parameter]Thresholds, fuzzyPHDO bool) (*Catalog, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}

	if err := checkCoverage("weights", len(weights), func(p Parameter) bool { _, ok := weights[p]; return ok }); err != nil {
		return nil, err
	}
	if err := checkCoverage("ratings", len(thresholds), func(p Parameter) bool { _, ok := thresholds[p]; return ok }); err != nil {
		return nil, err
	}

	var sum float64
	for p, w := range weights {
		if w < 0 || w > 1 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("weight for %q is %v, must be in [0,1]", p, w)}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("weights sum to %v, must sum to 1", sum)}
	}

	specs := make(map[Parameter]ParameterSpec, len(Parameters))
	for _, p := range Parameters {
		strategy := defaultStrategies[p]
		if fuzzyPHDO && (p == PH || p == DissolvedOxygen) {
			strategy = StrategyFuzzy
		}
		th := thresholds[p]
		if err := checkThresholds(p, th, strategy); err != nil {
			return nil, err
		}
		specs[p] = ParameterSpec{Thresholds: th, Weight: weights[p], Strategy: strategy}
	}

	return &Catalog{specs: specs}, nil
}

// DefaultCatalog builds the catalog from the canonical tables. The defaults
// are known-valid, so construction cannot fail.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(nil, nil, false)
	if err != nil {
		panic(err)
	}
	return c
}

func checkCoverage(table string, size int, has func(Parameter) bool) error {
	for _, p := range Parameters {
		if !has(p) {
			return &ConfigurationError{Reason: fmt.Sprintf("%s table missing parameter %q", table, p)}
		}
	}
	if size != len(Parameters) {
		return &ConfigurationError{Reason: fmt.Sprintf("%s table contains unknown parameters", table)}
	}
	return nil
}

func checkThresholds(p Parameter, th Thresholds, strategy RatingStrategy) error {
	switch strategy {
	case StrategyMonotonic:
		if th.Ideal > th.GoodHigh || th.GoodHigh > th.PoorHigh {
			return &ConfigurationError{Reason: fmt.Sprintf("thresholds for %q must satisfy ideal <= good_high <= poor_high", p)}
		}
	default: // symmetric and fuzzy share the interior-optimum shape
		if th.PoorLow > th.GoodLow || th.GoodLow > th.Ideal || th.Ideal > th.GoodHigh || th.GoodHigh > th.PoorHigh {
			return &ConfigurationError{Reason: fmt.Sprintf("thresholds for %q must satisfy poor_low <= good_low <= ideal <= good_high <= poor_high", p)}
		}
	}
	return nil
}

// Spec returns the catalog entry for p.
func (c *Catalog) Spec(p Parameter) (ParameterSpec, bool) {
	spec, ok := c.specs[p]
	return spec, ok
}

// Lookup resolves a caller-supplied name to a known parameter.
func (c *Catalog) Lookup(name string) (Parameter, bool) {
	p := Parameter(name)
	_, ok := c.specs[p]
	return p, ok
}
