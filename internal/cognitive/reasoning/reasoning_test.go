package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

// decode builds a payload the way it arrives from the API.
func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var data interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestMarketPredictor_Predict(t *testing.T) {
	predictor := NewMarketPredictor(logging.NewNoOpLogger())

	tests := []struct {
		name               string
		payload            string
		expectedPrice      float64
		expectedConfidence float64
		expectedTrend      string
	}{
		{
			name:               "seven prices",
			payload:            `{"prices": [1.2, 1.3, 1.25, 1.4, 1.35, 1.5, 1.45]}`,
			expectedPrice:      (1.2 + 1.3 + 1.25 + 1.4 + 1.35 + 1.5 + 1.45) / 7,
			expectedConfidence: 0.85,
			expectedTrend:      TrendBullish,
		},
		{
			name:               "only the last seven count",
			payload:            `{"prices": [100, 100, 1, 2, 3, 4, 5, 6, 7]}`,
			expectedPrice:      4,
			expectedConfidence: 0.85,
			expectedTrend:      TrendBullish,
		},
		{
			name:               "fewer than seven",
			payload:            `{"prices": [10, 20]}`,
			expectedPrice:      15,
			expectedConfidence: 0.85,
			expectedTrend:      TrendBullish,
		},
		{
			name:               "non numeric entries lower confidence",
			payload:            `{"prices": [10, "n/a", 20, null]}`,
			expectedPrice:      15,
			expectedConfidence: 0.5 * 0.85,
			expectedTrend:      TrendBullish,
		},
		{
			name:               "empty series",
			payload:            `{"prices": []}`,
			expectedPrice:      0.0,
			expectedConfidence: 0.0,
			expectedTrend:      TrendBearish,
		},
		{
			name:               "huge prices do not overflow",
			payload:            `{"prices": [1e308, 1e308]}`,
			expectedPrice:      1e308,
			expectedConfidence: 0.85,
			expectedTrend:      TrendBullish,
		},
		{
			name:               "huge prices of opposite sign",
			payload:            `{"prices": [1e308, -1e308]}`,
			expectedPrice:      0.0,
			expectedConfidence: 0.85,
			expectedTrend:      TrendBearish,
		},
		{
			name:               "no numeric entries in window",
			payload:            `{"prices": ["a", "b"]}`,
			expectedPrice:      0.0,
			expectedConfidence: 0.0,
			expectedTrend:      TrendBearish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := predictor.Compute(context.Background(), decode(t, tt.payload))
			require.NoError(t, err)

			assert.InDelta(t, tt.expectedPrice, result.Prediction["predicted_price"], 1e-9)
			assert.InDelta(t, tt.expectedConfidence, result.ConfidenceScore, 1e-9)
			assert.InDelta(t, tt.expectedConfidence, result.Prediction["confidence"], 1e-9)
			assert.Equal(t, tt.expectedTrend, result.Prediction["trend"])
			assert.Equal(t, uint64(150), result.ComputationTimeMs)
			assert.GreaterOrEqual(t, result.ConfidenceScore, 0.0)
			assert.LessOrEqual(t, result.ConfidenceScore, 1.0)
		})
	}
}

func TestMarketPredictor_InvalidInput(t *testing.T) {
	predictor := NewMarketPredictor(logging.NewNoOpLogger())

	for _, payload := range []string{`{}`, `{"prices": 12}`, `{"prices": "1,2,3"}`, `[1, 2, 3]`, `null`} {
		t.Run(payload, func(t *testing.T) {
			result, err := predictor.Compute(context.Background(), decode(t, payload))
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
		})
	}
}

func TestMarketPredictor_AcceptsGoIntegers(t *testing.T) {
	predictor := NewMarketPredictor(logging.NewNoOpLogger())
	data := map[string]interface{}{"prices": []interface{}{2, int64(4), uint32(6)}}

	result, err := predictor.Compute(context.Background(), data)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, result.Prediction["predicted_price"], 1e-9)
}

func TestAnomalyDetector_Detect(t *testing.T) {
	detector := NewAnomalyDetector(logging.NewNoOpLogger())

	payload := `{"transactions": [
		{"value": 100, "gas": 21000},
		{"value": 5000, "gas": 800000},
		{"value": 50, "gas": 30000}
	]}`

	result, err := detector.Compute(context.Background(), decode(t, payload))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Prediction["anomalies_detected"])
	assert.Equal(t, []int{1}, result.Prediction["anomaly_indices"])
	assert.Equal(t, SeverityLow, result.Prediction["severity"])
	assert.InDelta(t, 0.75, result.ConfidenceScore, 1e-9)
	assert.Equal(t, uint64(200), result.ComputationTimeMs)
}

func TestAnomalyDetector_Scores(t *testing.T) {
	tests := []struct {
		name     string
		tx       interface{}
		expected float64
	}{
		{"normal", map[string]interface{}{"value": 10.0, "gas": 21000.0}, 0.15},
		{"high value only", map[string]interface{}{"value": 5000.0, "gas": 21000.0}, 0.45},
		{"high gas only", map[string]interface{}{"value": 10.0, "gas": 900000.0}, 0.45},
		{"both high", map[string]interface{}{"value": 5000.0, "gas": 900000.0}, 0.75},
		{"boundaries are not high", map[string]interface{}{"value": 1000.0, "gas": 500000.0}, 0.15},
		{"missing fields", map[string]interface{}{}, 0.15},
		{"not an object", "garbage", 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, anomalyScore(tt.tx), 1e-9)
		})
	}
}

func TestAnomalyDetector_NoAnomalies(t *testing.T) {
	detector := NewAnomalyDetector(logging.NewNoOpLogger())

	result, err := detector.Compute(context.Background(), decode(t, `{"transactions": []}`))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Prediction["anomalies_detected"])
	assert.Equal(t, []int{}, result.Prediction["anomaly_indices"])
	assert.Equal(t, SeverityLow, result.Prediction["severity"])
	assert.Equal(t, 0.95, result.ConfidenceScore)

	encoded, err := json.Marshal(result.Prediction)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"anomaly_indices":[]`)
}

func TestAnomalyDetector_HighSeverity(t *testing.T) {
	detector := NewAnomalyDetector(logging.NewNoOpLogger())

	build := func(n int) interface{} {
		txs := make([]interface{}, n)
		for i := range txs {
			txs[i] = map[string]interface{}{"value": 2000.0, "gas": 600000.0}
		}
		return map[string]interface{}{"transactions": txs}
	}

	result, err := detector.Compute(context.Background(), build(5))
	require.NoError(t, err)
	assert.Equal(t, SeverityLow, result.Prediction["severity"])

	result, err = detector.Compute(context.Background(), build(6))
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, result.Prediction["severity"])
	assert.Equal(t, 6, result.Prediction["anomalies_detected"])
}

func TestAnomalyDetector_InvalidInput(t *testing.T) {
	detector := NewAnomalyDetector(logging.NewNoOpLogger())

	for _, payload := range []string{`{}`, `{"transactions": {}}`, `{"transactions": 3}`} {
		t.Run(payload, func(t *testing.T) {
			_, err := detector.Compute(context.Background(), decode(t, payload))
			assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
		})
	}
}

func TestRiskScorer_Score(t *testing.T) {
	scorer := NewRiskScorer(logging.NewNoOpLogger())

	tests := []struct {
		name          string
		payload       string
		expectedScore float64
		expectedLevel string
	}{
		{
			name:          "unaudited low volume",
			payload:       `{"contract_address": "0xA", "code_complexity": 0.7, "audited": false, "tx_volume": 50}`,
			expectedScore: 0.78,
			expectedLevel: RiskHigh,
		},
		{
			name:          "defaults",
			payload:       `{"contract_address": "0xA"}`,
			expectedScore: 0.7,
			expectedLevel: RiskHigh,
		},
		{
			name:          "audited high volume",
			payload:       `{"contract_address": "0xA", "code_complexity": 0.2, "audited": true, "tx_volume": 5000}`,
			expectedScore: 0.08,
			expectedLevel: RiskLow,
		},
		{
			name:          "audited low volume",
			payload:       `{"contract_address": "0xA", "code_complexity": 0.5, "audited": true, "tx_volume": 10}`,
			expectedScore: 0.4,
			expectedLevel: RiskMedium,
		},
		{
			name:          "clamped at one",
			payload:       `{"contract_address": "0xA", "code_complexity": 50}`,
			expectedScore: 1.0,
			expectedLevel: RiskCritical,
		},
		{
			name:          "clamped at zero",
			payload:       `{"contract_address": "0xA", "code_complexity": -50, "audited": true, "tx_volume": 1000}`,
			expectedScore: 0.0,
			expectedLevel: RiskLow,
		},
		{
			name:          "wrong typed optionals use defaults",
			payload:       `{"contract_address": "0xA", "code_complexity": "high", "audited": "yes", "tx_volume": null}`,
			expectedScore: 0.7,
			expectedLevel: RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Compute(context.Background(), decode(t, tt.payload))
			require.NoError(t, err)

			score := result.Prediction["risk_score"].(float64)
			assert.InDelta(t, tt.expectedScore, score, 1e-9)
			assert.Equal(t, tt.expectedLevel, result.Prediction["risk_level"])
			assert.Equal(t, "0xA", result.Prediction["contract"])
			assert.Equal(t, 0.88, result.ConfidenceScore)
			assert.Equal(t, uint64(180), result.ComputationTimeMs)
		})
	}
}

func TestRiskScorer_ScoreAlwaysInUnitRange(t *testing.T) {
	for _, complexity := range []float64{-1e300, -5, 0, 0.3, 1, 7, 1e300, math.Inf(1), math.Inf(-1), math.NaN()} {
		for _, audited := range []bool{true, false} {
			for _, volume := range []float64{-1e9, 0, 99.99, 100, 1e12} {
				score := riskScore(complexity, audited, volume)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	}
}

func TestRiskLevel_Boundaries(t *testing.T) {
	assert.Equal(t, RiskLow, riskLevel(0.29))
	assert.Equal(t, RiskMedium, riskLevel(0.3))
	assert.Equal(t, RiskHigh, riskLevel(0.6))
	assert.Equal(t, RiskCritical, riskLevel(0.8))
	assert.Equal(t, RiskCritical, riskLevel(1.0))
}

func TestRiskScorer_MissingContractAddress(t *testing.T) {
	scorer := NewRiskScorer(logging.NewNoOpLogger())

	for _, payload := range []string{`{}`, `{"contract_address": 42}`, `{"code_complexity": 0.9}`} {
		t.Run(payload, func(t *testing.T) {
			_, err := scorer.Compute(context.Background(), decode(t, payload))
			assert.True(t, errors.Is(err, pkgerrors.ErrMissingField))
			assert.Contains(t, err.Error(), "contract_address")
		})
	}
}

func TestStrategies_DoNotMutateInput(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNoOpLogger()
	raw := `{"prices": [1, 2, 3], "transactions": [{"value": 5000, "gas": 900000}], "contract_address": "0xB"}`

	data := decode(t, raw)
	before, err := json.Marshal(data)
	require.NoError(t, err)

	for _, strategy := range []Strategy{NewMarketPredictor(logger), NewAnomalyDetector(logger), NewRiskScorer(logger)} {
		_, err := strategy.Compute(ctx, data)
		require.NoError(t, err)
	}

	after, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}
