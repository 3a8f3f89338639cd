package quality

import (
	"log/slog"
	"sort"
)

// MeasurementSet maps parameters to measured values for one evaluation. It is
// built fresh per request and discarded once the response is produced.
type MeasurementSet map[Parameter]float64

// Result bundles the outputs of a single evaluation.
type Result struct {
	Overall       float64
	Scores        map[Parameter]float64
	Contributions map[Parameter]float64
	Report        string
}

// Evaluator computes composite water-quality scores over an immutable
// catalog. It is stateless per call and safe for concurrent use.
type Evaluator struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewEvaluator creates an Evaluator over the given catalog.
func NewEvaluator(catalog *Catalog, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{catalog: catalog, logger: logger}
}

// Catalog returns the evaluator's read-only catalog.
func (e *Evaluator) Catalog() *Catalog { return e.catalog }

// Rate returns the quality rating Qi in [0,100] for one parameter.
func (e *Evaluator) Rate(p Parameter, value float64) (float64, error) {
	return e.catalog.Rate(p, value)
}

// Validate gates raw request data before scoring. Every submitted name must
// be a known parameter, every value must be present and numeric. The check is
// fail-fast: the first violation aborts, and keys are visited in canonical
// order (unknown names last, lexically) so the reported violation is stable.
//
// This is the enforcement point for unknown parameters; the leniency in
// Overall is a defensive fallback only reached when Validate is bypassed.
func (e *Evaluator) Validate(raw map[string]any) error {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := keyOrder(keys[i]), keyOrder(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	for _, name := range keys {
		p, ok := e.catalog.Lookup(name)
		if !ok {
			return &UnknownParameterError{Name: name}
		}
		v := raw[name]
		if v == nil {
			return &MissingValueError{Parameter: string(p)}
		}
		if _, ok := asFloat(v); !ok {
			return &NonNumericValueError{Parameter: string(p), Value: v}
		}
	}
	return nil
}

// Measurements converts validated raw data into a MeasurementSet. Entries
// that are not known numeric parameters are dropped; call Validate first to
// reject them instead.
func (e *Evaluator) Measurements(raw map[string]any) MeasurementSet {
	m := make(MeasurementSet, len(raw))
	for name, v := range raw {
		p, ok := e.catalog.Lookup(name)
		if !ok {
			continue
		}
		if f, ok := asFloat(v); ok {
			m[p] = f
		}
	}
	return m
}

// Overall computes the weighted composite score over the measurements.
// Unknown parameters are skipped with a warning rather than failing. Omitted
// parameters contribute zero and the remaining weights are not rescaled, so
// partial submissions systematically depress the score. That is the contract,
// not a defect.
func (e *Evaluator) Overall(m MeasurementSet) float64 {
	var sum float64
	for p, v := range m {
		spec, ok := e.catalog.Spec(p)
		if !ok {
			e.logger.Warn("skipping unknown parameter", "parameter", string(p))
			continue
		}
		qi, _ := e.catalog.Rate(p, v)
		sum += qi * spec.Weight
	}
	return sum
}

// Contributions returns each known measured parameter's weighted share of
// the overall score.
func (e *Evaluator) Contributions(m MeasurementSet) map[Parameter]float64 {
	out := make(map[Parameter]float64, len(m))
	for p, v := range m {
		spec, ok := e.catalog.Spec(p)
		if !ok {
			continue
		}
		qi, _ := e.catalog.Rate(p, v)
		out[p] = qi * spec.Weight
	}
	return out
}

// Evaluate runs the full pipeline over an already-validated measurement set:
// per-parameter ratings, weighted aggregation, contributions, and the
// narrative report.
func (e *Evaluator) Evaluate(m MeasurementSet) Result {
	scores := make(map[Parameter]float64, len(m))
	contributions := make(map[Parameter]float64, len(m))
	var overall float64
	for p, v := range m {
		spec, ok := e.catalog.Spec(p)
		if !ok {
			e.logger.Warn("skipping unknown parameter", "parameter", string(p))
			continue
		}
		qi, _ := e.catalog.Rate(p, v)
		scores[p] = qi
		contributions[p] = qi * spec.Weight
		overall += qi * spec.Weight
	}

	return Result{
		Overall:       overall,
		Scores:        scores,
		Contributions: contributions,
		Report:        e.Report(m, overall),
	}
}

func keyOrder(name string) int {
	if i, ok := parameterOrder[Parameter(name)]; ok {
		return i
	}
	return len(Parameters)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
