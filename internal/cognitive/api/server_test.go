package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/engine"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/tasks"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, queueCapacity int) (*Server, *engine.TaskQueue, *engine.ResultStore) {
	t.Helper()
	logger := logging.NewNoOpLogger()
	queue := engine.NewTaskQueue(queueCapacity)
	results := engine.NewResultStore()

	srv := NewServer(Config{Port: "0"}, Dependencies{
		Logger:     logger,
		Dispatcher: tasks.NewTaskProcessor(logger),
		Queue:      queue,
		Results:    results,
		Collector:  metrics.NewCollector(),
	})
	return srv, queue, results
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestProcessTask_RiskScoring(t *testing.T) {
	srv, _, results := newTestServer(t, 4)

	w := doJSON(t, srv, http.MethodPost, "/api/tasks/process", map[string]interface{}{
		"task_id":   11,
		"task_type": "risk_scoring",
		"data": map[string]interface{}{
			"contract_address": "0xA",
			"code_complexity":  0.7,
			"audited":          false,
			"tx_volume":        50,
		},
		"requester": "0xreq",
		"reward":    10,
		"deadline":  100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(TraceIDHeader))

	var resp types.ProcessTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(11), resp.TaskID)
	assert.Equal(t, "high", resp.Result.Prediction["risk_level"])
	assert.InDelta(t, 0.78, resp.Result.Prediction["risk_score"], 1e-9)
	assert.Equal(t, 0.88, resp.Result.ConfidenceScore)
	assert.Equal(t, uint64(180), resp.Result.ComputationTimeMs)

	_, stored := results.GetResult(11)
	assert.True(t, stored)
}

func TestProcessTask_MarketPredictionHugePrices(t *testing.T) {
	srv, _, results := newTestServer(t, 4)

	w := doJSON(t, srv, http.MethodPost, "/api/tasks/process", map[string]interface{}{
		"task_id":   12,
		"task_type": "market_prediction",
		"data":      map[string]interface{}{"prices": []float64{1e308, 1e308}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.Bytes())

	var resp types.ProcessTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1e308, resp.Result.Prediction["predicted_price"])
	assert.Equal(t, "bullish", resp.Result.Prediction["trend"])

	stored, ok := results.GetResult(12)
	require.True(t, ok)
	_, err := json.Marshal(stored)
	assert.NoError(t, err)
}

func TestProcessTask_Errors(t *testing.T) {
	srv, _, _ := newTestServer(t, 4)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"unknown task type", map[string]interface{}{"task_id": 1, "task_type": "weather", "data": map[string]interface{}{}}, http.StatusBadRequest},
		{"missing prices", map[string]interface{}{"task_id": 2, "task_type": "market_prediction", "data": map[string]interface{}{}}, http.StatusUnprocessableEntity},
		{"missing contract", map[string]interface{}{"task_id": 3, "task_type": "risk_scoring", "data": map[string]interface{}{}}, http.StatusUnprocessableEntity},
		{"malformed body", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodPost, "/api/tasks/process", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestEnqueueTask_AndQueueFull(t *testing.T) {
	srv, queue, _ := newTestServer(t, 1)
	task := map[string]interface{}{"task_id": 5, "task_type": "anomaly_detection", "data": map[string]interface{}{"transactions": []interface{}{}}}

	w := doJSON(t, srv, http.MethodPost, "/api/tasks", task)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp types.EnqueueTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Queued)
	assert.Equal(t, 1, resp.Pending)
	assert.Equal(t, 1, queue.Len())

	w = doJSON(t, srv, http.MethodPost, "/api/tasks", task)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetResult(t *testing.T) {
	srv, _, results := newTestServer(t, 1)

	w := doJSON(t, srv, http.MethodGet, "/api/tasks/abc/result", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/tasks/99/result", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, results.SubmitResult(context.Background(), 99, &types.ReasoningResult{ConfidenceScore: 0.5}))
	w = doJSON(t, srv, http.MethodGet, "/api/tasks/99/result", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t, 1)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = doJSON(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "polyneurons_cognitive")
}

func TestTraceMiddleware_PropagatesHeader(t *testing.T) {
	srv, _, _ := newTestServer(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(TraceIDHeader, "trace-123")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(TraceIDHeader))
}
