package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aquametrics/aquascore/internal/quality"
)

type EvaluateHandler struct {
	eval     *quality.Evaluator
	renderer ChartRenderer
	logger   *slog.Logger
}

func NewEvaluateHandler(eval *quality.Evaluator, renderer ChartRenderer, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{eval: eval, renderer: renderer, logger: logger}
}

// wireNames maps the JSON field names of the public API to canonical
// parameter names. Fields whose display name has no spaces or punctuation
// ("pH", "BOD", ...) are used as-is on the wire.
var wireNames = map[string]quality.Parameter{
	"DissolvedOxygen":      quality.DissolvedOxygen,
	"TotalDissolvedSolids": quality.TotalDissolvedSolids,
	"TotalColiforms":       quality.TotalColiforms,
	"Ecoli":                quality.EColi,
}

type EvaluateResponse struct {
	EvaluationID  string                        `json:"evaluation_id"`
	QualityScore  float64                       `json:"quality_score"`
	Report        string                        `json:"report"`
	Contributions map[quality.Parameter]float64 `json:"contributions"`
	Graph         string                        `json:"graph,omitempty"`
}

// Evaluate scores one measurement submission.
// POST /api/v1/evaluate
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// translate wire aliases to canonical display names
	data := make(map[string]any, len(raw))
	for name, v := range raw {
		if p, ok := wireNames[name]; ok {
			name = string(p)
		}
		data[name] = v
	}

	if err := h.eval.Validate(data); err != nil {
		writeValidationError(w, err)
		return
	}

	measurements := h.eval.Measurements(data)
	result := h.eval.Evaluate(measurements)

	resp := EvaluateResponse{
		EvaluationID:  uuid.New().String(),
		QualityScore:  result.Overall,
		Report:        result.Report,
		Contributions: result.Contributions,
	}

	if len(result.Contributions) > 0 {
		title := fmt.Sprintf("Overall Quality Score: %.2f (Parameter Contributions)", result.Overall)
		graph, err := h.renderer.Render(result.Contributions, title)
		if err != nil {
			// the score and report still stand without the image
			h.logger.Error("chart render failed", "error", err)
		} else {
			resp.Graph = graph
		}
	}

	h.logger.Info("evaluation complete",
		"evaluation_id", resp.EvaluationID,
		"quality_score", resp.QualityScore,
		"parameters", len(measurements),
	)
	writeJSON(w, http.StatusOK, resp)
}

// ParameterInfo is one catalog entry as exposed by the API.
type ParameterInfo struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Ideal    float64 `json:"ideal"`
	GoodLow  float64 `json:"good_low"`
	GoodHigh float64 `json:"good_high"`
	PoorLow  float64 `json:"poor_low"`
	PoorHigh float64 `json:"poor_high"`
	Weight   float64 `json:"weight"`
	Strategy string  `json:"strategy"`
}

// Parameters lists the rating catalog in canonical order.
// GET /api/v1/parameters
func (h *EvaluateHandler) Parameters(w http.ResponseWriter, r *http.Request) {
	out := make([]ParameterInfo, 0, len(quality.Parameters))
	for _, p := range quality.Parameters {
		spec, ok := h.eval.Catalog().Spec(p)
		if !ok {
			continue
		}
		out = append(out, ParameterInfo{
			Name:     string(p),
			Unit:     spec.Unit,
			Ideal:    spec.Ideal,
			GoodLow:  spec.GoodLow,
			GoodHigh: spec.GoodHigh,
			PoorLow:  spec.PoorLow,
			PoorHigh: spec.PoorHigh,
			Weight:   spec.Weight,
			Strategy: spec.Strategy.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeValidationError maps the quality error taxonomy to a 400 response
// naming the offending parameter.
func writeValidationError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": err.Error()}

	var unknown *quality.UnknownParameterError
	var missing *quality.MissingValueError
	var nonNumeric *quality.NonNumericValueError
	switch {
	case errors.As(err, &unknown):
		body["parameter"] = unknown.Name
	case errors.As(err, &missing):
		body["parameter"] = missing.Parameter
	case errors.As(err, &nonNumeric):
		body["parameter"] = nonNumeric.Parameter
	}

	writeJSON(w, http.StatusBadRequest, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
