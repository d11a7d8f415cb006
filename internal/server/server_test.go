package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"housing-prediction-api/internal/demographics"
	"housing-prediction-api/internal/handler"
	"housing-prediction-api/internal/model"
	"housing-prediction-api/internal/observability"
	"housing-prediction-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArtifact = `{
  "intercept": 100000,
  "coefficients": {"age": 1000, "income": 2},
  "categories": {
    "gender": {"weights": {"F": 500, "M": 250}},
    "education": {"weights": {"Bachelors": 10000, "PhD": 30000}, "default": -5000}
  }
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := demographics.Load(strings.NewReader(
		"zipcode,gender,education,median_home_value\n98101,F,Bachelors,650000\n",
	))
	require.NoError(t, err)

	m, err := model.Parse([]byte(testArtifact))
	require.NoError(t, err)

	svc := service.NewPredictionService(table, m, observability.NewMetricsForTesting(), clockwork.NewRealClock())
	return New(":0", handler.NewPredictHandler(svc), handler.NewHealthHandler(table, m.Kind()))
}

func post(t *testing.T, s *Server, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestServer_Predict(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "minimal request completed from demographics",
			path:           "/predict-minimal",
			body:           `{"age":34,"income":75000,"zipcode":"98101"}`,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"prediction": float64(100000 + 34000 + 150000 + 500 + 10000),
				"metadata": map[string]interface{}{
					"age":               float64(34),
					"income":            float64(75000),
					"zipcode":           "98101",
					"gender":            "F",
					"education":         "Bachelors",
					"median_home_value": "650000",
				},
			},
		},
		{
			name:           "minimal request with unknown zipcode",
			path:           "/predict-minimal",
			body:           `{"age":34,"income":75000,"zipcode":"00000"}`,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"prediction": float64(100000 + 34000 + 150000 - 5000),
				"metadata": map[string]interface{}{
					"age":       float64(34),
					"income":    float64(75000),
					"zipcode":   "00000",
					"gender":    "unknown",
					"education": "unknown",
				},
			},
		},
		{
			name:           "full request values win over demographics",
			path:           "/predict",
			body:           `{"age":40,"income":50000,"zipcode":"98101","gender":"M","education":"PhD"}`,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"prediction": float64(100000 + 40000 + 100000 + 250 + 30000),
				"metadata": map[string]interface{}{
					"age":               float64(40),
					"income":            float64(50000),
					"zipcode":           "98101",
					"gender":            "M",
					"education":         "PhD",
					"median_home_value": "650000",
				},
			},
		},
		{
			name:           "full request with unknown zipcode is not an error",
			path:           "/predict",
			body:           `{"age":40,"income":50000,"zipcode":"11111","gender":"M","education":"PhD"}`,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"prediction": float64(100000 + 40000 + 100000 + 250 + 30000),
				"metadata": map[string]interface{}{
					"age":       float64(40),
					"income":    float64(50000),
					"zipcode":   "11111",
					"gender":    "M",
					"education": "PhD",
				},
			},
		},
		{
			name:           "padded zipcode resolves like the trimmed one",
			path:           "/predict-minimal",
			body:           `{"age":34,"income":75000,"zipcode":" 98101 "}`,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"prediction": float64(100000 + 34000 + 150000 + 500 + 10000),
				"metadata": map[string]interface{}{
					"age":               float64(34),
					"income":            float64(75000),
					"zipcode":           "98101",
					"gender":            "F",
					"education":         "Bachelors",
					"median_home_value": "650000",
				},
			},
		},
		{
			name:           "overflowing minimal prediction is an internal error",
			path:           "/predict-minimal",
			body:           `{"age":34,"income":1e308,"zipcode":"98101"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
		{
			name:           "overflowing full prediction is an internal error",
			path:           "/predict",
			body:           `{"age":40,"income":-1e308,"zipcode":"98101","gender":"M","education":"PhD"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
		{
			name:           "negative zipcode is rejected",
			path:           "/predict-minimal",
			body:           `{"age":34,"income":75000,"zipcode":-98101}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: map[string]interface{}{
				"error": "request validation failed",
				"details": []interface{}{
					map[string]interface{}{"field": "zipcode", "message": "must be a string, got number -98101"},
				},
			},
		},
		{
			name:           "full schema rejects a minimal body",
			path:           "/predict",
			body:           `{"age":34,"income":75000,"zipcode":"98101"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: map[string]interface{}{
				"error": "request validation failed",
				"details": []interface{}{
					map[string]interface{}{"field": "gender", "message": "field is required"},
					map[string]interface{}{"field": "education", "message": "field is required"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, s, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestServer_ConcurrentRequests(t *testing.T) {
	s := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := `{"age":34,"income":75000,"zipcode":"98101"}`
			if i%2 == 0 {
				body = `{"age":34,"income":75000,"zipcode":"00000"}`
			}

			req := httptest.NewRequest(http.MethodPost, "/predict-minimal", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}(i)
	}
	wg.Wait()
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		contains       string
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK, contains: `"demographics_rows":1`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK, contains: "go_goroutines"},
		{name: "swagger doc", method: http.MethodGet, path: "/swagger/doc.json", expectedStatus: http.StatusOK, contains: "/predict-minimal"},
		{name: "wrong method", method: http.MethodGet, path: "/predict", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}
