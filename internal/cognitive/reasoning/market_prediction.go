package reasoning

import (
	"context"

	"github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

const (
	smaPeriod               = 7
	marketConfidenceWeight  = 0.85
	marketComputationTimeMs = 150

	TrendBullish = "bullish"
	TrendBearish = "bearish"
)

// MarketPredictor forecasts the next price as the simple moving average of the
// most recent prices.
type MarketPredictor struct {
	logger logging.Logger
}

func NewMarketPredictor(logger logging.Logger) *MarketPredictor {
	return &MarketPredictor{logger: logger}
}

func (p *MarketPredictor) TaskType() string {
	return types.TaskTypeMarketPrediction
}

func (p *MarketPredictor) Compute(ctx context.Context, data interface{}) (*types.ReasoningResult, error) {
	p.logger.Debug("Running market prediction analysis")

	rawPrices, _ := field(data, "prices")
	prices, ok := asSlice(rawPrices)
	if !ok {
		return nil, errors.NewInvalidInput("prices must be an array")
	}

	prediction := simpleMovingAverage(prices, smaPeriod)
	confidence := priceConfidence(prices)

	// A positive average is always bullish; only an empty series reads bearish.
	trend := TrendBearish
	if prediction > 0 {
		trend = TrendBullish
	}

	return &types.ReasoningResult{
		Prediction: map[string]interface{}{
			"predicted_price": prediction,
			"confidence":      confidence,
			"trend":           trend,
		},
		ConfidenceScore:   confidence,
		ComputationTimeMs: marketComputationTimeMs,
	}, nil
}

// simpleMovingAverage averages the numeric entries among the last period entries.
// The running mean stays finite for any finite inputs.
func simpleMovingAverage(prices []interface{}, period int) float64 {
	var mean float64
	var count int
	for i := len(prices) - 1; i >= 0 && i >= len(prices)-period; i-- {
		if price, ok := asFloat(prices[i]); ok {
			count++
			k := float64(count)
			mean += price/k - mean/k
		}
	}
	return mean
}

// priceConfidence scales the share of numeric entries in the whole series.
func priceConfidence(prices []interface{}) float64 {
	if len(prices) == 0 {
		return 0.0
	}
	var valid int
	for _, price := range prices {
		if _, ok := asFloat(price); ok {
			valid++
		}
	}
	return float64(valid) / float64(len(prices)) * marketConfidenceWeight
}
