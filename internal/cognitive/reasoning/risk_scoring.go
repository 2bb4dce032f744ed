package reasoning

import (
	"context"
	"math"

	"github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

const (
	defaultCodeComplexity = 0.5
	lowVolumeThreshold    = 100.0
	riskConfidence        = 0.88
	riskComputationTimeMs = 180

	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// RiskScorer rates a smart contract from its complexity, audit status and volume.
type RiskScorer struct {
	logger logging.Logger
}

func NewRiskScorer(logger logging.Logger) *RiskScorer {
	return &RiskScorer{logger: logger}
}

func (s *RiskScorer) TaskType() string {
	return types.TaskTypeRiskScoring
}

func (s *RiskScorer) Compute(ctx context.Context, data interface{}) (*types.ReasoningResult, error) {
	s.logger.Debug("Running risk scoring analysis")

	rawAddress, _ := field(data, "contract_address")
	contractAddress, ok := rawAddress.(string)
	if !ok {
		return nil, errors.NewMissingField("contract_address")
	}

	complexity := floatOr(data, "code_complexity", defaultCodeComplexity)
	volume := floatOr(data, "tx_volume", 0.0)
	audited := false
	if rawAudited, ok := field(data, "audited"); ok {
		if b, ok := rawAudited.(bool); ok {
			audited = b
		}
	}

	score := riskScore(complexity, audited, volume)

	return &types.ReasoningResult{
		Prediction: map[string]interface{}{
			"contract":   contractAddress,
			"risk_score": score,
			"risk_level": riskLevel(score),
			"factors": map[string]interface{}{
				"code_complexity": complexity,
				"audited":         audited,
				"tx_volume":       volume,
			},
		},
		ConfidenceScore:   riskConfidence,
		ComputationTimeMs: riskComputationTimeMs,
	}, nil
}

// riskScore is clamped to [0, 1]. A NaN input scores as maximal risk.
func riskScore(complexity float64, audited bool, volume float64) float64 {
	risk := complexity * 0.4
	if !audited {
		risk += 0.3
	}
	if volume < lowVolumeThreshold {
		risk += 0.2
	}
	if math.IsNaN(risk) {
		return 1.0
	}
	return math.Max(0.0, math.Min(risk, 1.0))
}

func riskLevel(score float64) string {
	switch {
	case score < 0.3:
		return RiskLow
	case score < 0.6:
		return RiskMedium
	case score < 0.8:
		return RiskHigh
	default:
		return RiskCritical
	}
}
