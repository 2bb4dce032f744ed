package reasoning

import (
	"context"

	"github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

const (
	anomalyThreshold         = 0.7
	highValueThreshold       = 1000.0
	highGasThreshold         = 500000.0
	noAnomalyConfidence      = 0.95
	highSeverityCount        = 5
	anomalyComputationTimeMs = 200

	SeverityHigh = "high"
	SeverityLow  = "low"
)

// AnomalyDetector flags transactions with an unusual value or gas usage.
type AnomalyDetector struct {
	logger logging.Logger
}

func NewAnomalyDetector(logger logging.Logger) *AnomalyDetector {
	return &AnomalyDetector{logger: logger}
}

func (d *AnomalyDetector) TaskType() string {
	return types.TaskTypeAnomalyDetection
}

func (d *AnomalyDetector) Compute(ctx context.Context, data interface{}) (*types.ReasoningResult, error) {
	d.logger.Debug("Running anomaly detection")

	rawTransactions, _ := field(data, "transactions")
	transactions, ok := asSlice(rawTransactions)
	if !ok {
		return nil, errors.NewInvalidInput("transactions must be an array")
	}

	anomalies := make([]int, 0)
	var scoreSum float64
	for idx, tx := range transactions {
		score := anomalyScore(tx)
		if score > anomalyThreshold {
			anomalies = append(anomalies, idx)
			scoreSum += score
		}
	}

	confidence := noAnomalyConfidence
	if len(anomalies) > 0 {
		confidence = scoreSum / float64(len(anomalies))
	}

	severity := SeverityLow
	if len(anomalies) > highSeverityCount {
		severity = SeverityHigh
	}

	return &types.ReasoningResult{
		Prediction: map[string]interface{}{
			"anomalies_detected": len(anomalies),
			"anomaly_indices":    anomalies,
			"severity":           severity,
		},
		ConfidenceScore:   confidence,
		ComputationTimeMs: anomalyComputationTimeMs,
	}, nil
}

// anomalyScore averages a value signal and a gas signal. Missing fields count as 0.
func anomalyScore(tx interface{}) float64 {
	value := floatOr(tx, "value", 0.0)
	gas := floatOr(tx, "gas", 0.0)

	valueScore := 0.2
	if value > highValueThreshold {
		valueScore = 0.8
	}
	gasScore := 0.1
	if gas > highGasThreshold {
		gasScore = 0.7
	}
	return (valueScore + gasScore) / 2.0
}
