package proof

import (
	"context"
	"fmt"
	"time"

	"github.com/polyneurons/polyneurons-backend/internal/validator/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/cryptography"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// Generator turns a task id into a proof of reasoning: the hash of the id and
// the hash of the computed output.
type Generator struct {
	prover string
	logger logging.Logger
	now    func() time.Time
}

func NewGenerator(prover string, logger logging.Logger) *Generator {
	return &Generator{
		prover: prover,
		logger: logger,
		now:    time.Now,
	}
}

func (g *Generator) Prover() string {
	return g.prover
}

// Generate builds an unverified proof with zero confirmations.
func (g *Generator) Generate(ctx context.Context, taskID string) (types.ProofOfReasoning, error) {
	g.logger.Info("Generating proof of reasoning", "task_id", taskID)

	inputHash := cryptography.HashString(taskID)

	output, err := g.ComputeReasoning(ctx, taskID)
	if err != nil {
		return types.ProofOfReasoning{}, fmt.Errorf("reasoning for task %s: %w", taskID, err)
	}
	outputHash := cryptography.HashString(output)

	metrics.ProofsGeneratedTotal.Inc()
	g.logger.Info("Proof generated", "task_id", taskID, "input_hash", inputHash, "output_hash", outputHash)

	return types.ProofOfReasoning{
		InputHash:     inputHash,
		OutputHash:    outputHash,
		Prover:        g.prover,
		Timestamp:     uint64(g.now().Unix()),
		Verified:      false,
		Confirmations: 0,
	}, nil
}

// ComputeReasoning produces the output whose hash is committed to.
// The computation is simulated.
func (g *Generator) ComputeReasoning(ctx context.Context, taskID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "reasoning_result_" + taskID, nil
}

// ValidatePeerProof accepts any well-formed proof. Computation correctness is
// not checked; only the hash encoding is.
func (g *Generator) ValidatePeerProof(ctx context.Context, inputHash, outputHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	g.logger.Debug("Validating peer proof", "input_hash", inputHash, "output_hash", outputHash)
	return cryptography.IsHashHex(inputHash) && cryptography.IsHashHex(outputHash), nil
}
