package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquametrics/aquascore/internal/quality"
)

// stubRenderer stands in for the chart collaborator.
type stubRenderer struct {
	calls int
	title string
	fail  bool
}

func (s *stubRenderer) Render(contributions map[quality.Parameter]float64, title string) (string, error) {
	s.calls++
	s.title = title
	if s.fail {
		return "", assert.AnError
	}
	return "base64-png", nil
}

func setupTestRouter(t *testing.T) (http.Handler, *stubRenderer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eval := quality.NewEvaluator(quality.DefaultCatalog(), logger)
	renderer := &stubRenderer{}
	return NewRouter(eval, renderer, "", 120, logger), renderer
}

func postEvaluate(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/evaluate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEvaluateAllIdeal(t *testing.T) {
	router, renderer := setupTestRouter(t)

	body := `{
		"Temperature": 20, "pH": 7.0, "Turbidity": 0, "DissolvedOxygen": 8,
		"Conductivity": 200, "TotalDissolvedSolids": 250, "Nitrate": 2,
		"Phosphate": 0.05, "TotalColiforms": 0, "Ecoli": 0, "BOD": 1,
		"COD": 10, "Hardness": 150, "Alkalinity": 100, "Iron": 0.1
	}`
	w := postEvaluate(t, router, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.InDelta(t, 100.0, resp.QualityScore, 1e-6)
	assert.Contains(t, resp.Report, "Excellent water quality")
	assert.NotEmpty(t, resp.EvaluationID)
	assert.Equal(t, "base64-png", resp.Graph)
	assert.Len(t, resp.Contributions, 15)
	assert.Equal(t, 1, renderer.calls)
	assert.Contains(t, renderer.title, "Overall Quality Score: 100.00")
}

// A single submitted parameter contributes only its own weighted share: the
// remaining weights are not rescaled.
func TestEvaluateSingleParameterNoRenormalization(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := postEvaluate(t, router, `{"Turbidity": 3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	// Qi(Turbidity, 3) = 25, weight 0.09
	assert.InDelta(t, 2.25, resp.QualityScore, 1e-9)
	assert.Contains(t, resp.Report, "Very poor water quality")
}

func TestEvaluateValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		parameter string
	}{
		{"unknown parameter", `{"Foo": 1.0}`, "Foo"},
		{"missing value", `{"pH": null}`, "pH"},
		{"non-numeric value", `{"pH": "x"}`, "pH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, renderer := setupTestRouter(t)

			w := postEvaluate(t, router, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.parameter, resp["parameter"])
			assert.NotEmpty(t, resp["error"])
			assert.Zero(t, renderer.calls)
		})
	}
}

func TestEvaluateInvalidBody(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := postEvaluate(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateEmptyBodyScoresZero(t *testing.T) {
	router, renderer := setupTestRouter(t)

	w := postEvaluate(t, router, `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Zero(t, resp.QualityScore)
	assert.Empty(t, resp.Graph)
	assert.Zero(t, renderer.calls)
}

func TestEvaluateSurvivesRenderFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eval := quality.NewEvaluator(quality.DefaultCatalog(), logger)
	router := NewRouter(eval, &stubRenderer{fail: true}, "", 120, logger)

	w := postEvaluate(t, router, `{"pH": 7.0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EvaluateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Graph)
	assert.InDelta(t, 10.0, resp.QualityScore, 1e-9)
}

func TestParametersEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/parameters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var params []ParameterInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&params))
	require.Len(t, params, 15)

	assert.Equal(t, "Temperature", params[0].Name)
	assert.Equal(t, "symmetric", params[0].Strategy)
	assert.Equal(t, "pH", params[1].Name)
	assert.Equal(t, "Iron", params[14].Name)
	assert.Equal(t, "monotonic", params[14].Strategy)

	var sum float64
	for _, p := range params {
		sum += p.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eval := quality.NewEvaluator(quality.DefaultCatalog(), logger)
	router := NewRouter(eval, &stubRenderer{}, "", 2, logger)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/parameters", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest("GET", "/api/v1/parameters", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := NewMetricsRouter()
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewMetricsRouter()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
