package proof

import (
	"context"
	"fmt"

	"github.com/polyneurons/polyneurons-backend/internal/validator/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// RegistrySubmitter publishes a generated hash pair to the proof registry.
type RegistrySubmitter interface {
	SubmitToRegistry(ctx context.Context, inputHash, outputHash string) error
}

// Pipeline generates a proof for a task and submits it.
type Pipeline struct {
	generator *Generator
	submitter RegistrySubmitter
	logger    logging.Logger
}

func NewPipeline(generator *Generator, submitter RegistrySubmitter, logger logging.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		submitter: submitter,
		logger:    logger,
	}
}

func (p *Pipeline) Run(ctx context.Context, taskID string) (types.ProofOfReasoning, error) {
	proof, err := p.generator.Generate(ctx, taskID)
	if err != nil {
		return types.ProofOfReasoning{}, err
	}

	if err := p.submitter.SubmitToRegistry(ctx, proof.InputHash, proof.OutputHash); err != nil {
		metrics.ProofSubmissionsTotal.WithLabelValues("failure").Inc()
		return proof, fmt.Errorf("failed to submit proof for task %s: %w", taskID, err)
	}

	metrics.ProofSubmissionsTotal.WithLabelValues("success").Inc()
	p.logger.Info("Proof submitted to registry", "task_id", taskID, "proof_id", proof.InputHash)
	return proof, nil
}
