// Package consensus holds the proof-of-reasoning registry: proofs keyed by
// input hash, the validator roster, the confirmation threshold and the
// reward split.
package consensus

import (
	"errors"
	"sort"
	"sync"

	"github.com/polyneurons/polyneurons-backend/internal/consensus/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

const (
	ProverReward       uint64 = 700
	ValidatorRewardPot uint64 = 300
)

var ErrInvalidThreshold = errors.New("required confirmations must be at least 1")

type Engine struct {
	mu                    sync.RWMutex
	proofs                map[string]*types.ProofOfReasoning
	validators            []string
	requiredConfirmations uint32
	logger                logging.Logger
}

func NewEngine(requiredConfirmations uint32, logger logging.Logger) (*Engine, error) {
	if requiredConfirmations < 1 {
		return nil, ErrInvalidThreshold
	}
	return &Engine{
		proofs:                make(map[string]*types.ProofOfReasoning),
		validators:            make([]string, 0),
		requiredConfirmations: requiredConfirmations,
		logger:                logger,
	}, nil
}

func (e *Engine) RequiredConfirmations() uint32 {
	return e.requiredConfirmations
}

// AddValidator appends to the roster. Duplicates are kept.
func (e *Engine) AddValidator(validator string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.validators = append(e.validators, validator)
	metrics.RegisteredValidators.Set(float64(len(e.validators)))
	e.logger.Info("Validator added", "validator", validator, "roster_size", len(e.validators))
}

// Validators returns a copy of the roster in insertion order.
func (e *Engine) Validators() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, len(e.validators))
	copy(out, e.validators)
	return out
}

// SubmitProof stores the proof under its input hash, replacing any earlier
// record for the same hash in full.
func (e *Engine) SubmitProof(proof types.ProofOfReasoning) {
	e.mu.Lock()
	defer e.mu.Unlock()

	previous, replaced := e.proofs[proof.InputHash]
	stored := proof
	e.proofs[proof.InputHash] = &stored

	if replaced {
		metrics.ProofsSubmittedTotal.WithLabelValues("replaced").Inc()
		e.logger.Warn("Proof replaced",
			"proof_id", proof.InputHash,
			"previous_prover", previous.Prover,
			"previous_confirmations", previous.Confirmations,
			"prover", proof.Prover,
		)
	} else {
		metrics.ProofsSubmittedTotal.WithLabelValues("new").Inc()
		e.logger.Info("Proof submitted", "proof_id", proof.InputHash, "prover", proof.Prover)
	}
	e.updateVerifiedGauge()
}

// ValidateProof records one confirmation and reports whether the proof has
// reached consensus. Unknown ids return false. Every call on a known proof
// counts, so calls past the threshold keep incrementing and keep returning true.
func (e *Engine) ValidateProof(proofID string, validator string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	proof, ok := e.proofs[proofID]
	if !ok {
		metrics.ValidationsTotal.WithLabelValues("unknown_proof").Inc()
		e.logger.Debug("Validation for unknown proof ignored", "proof_id", proofID, "validator", validator)
		return false
	}

	proof.Confirmations++
	if proof.Confirmations < e.requiredConfirmations {
		metrics.ValidationsTotal.WithLabelValues("pending").Inc()
		e.logger.Debug("Proof confirmation recorded",
			"proof_id", proofID,
			"validator", validator,
			"confirmations", proof.Confirmations,
			"required", e.requiredConfirmations,
		)
		return false
	}

	if !proof.Verified {
		proof.Verified = true
		metrics.ProofsVerifiedTotal.Inc()
		e.updateVerifiedGauge()
		e.logger.Info("Proof reached consensus", "proof_id", proofID, "confirmations", proof.Confirmations)
	}
	metrics.ValidationsTotal.WithLabelValues("consensus").Inc()
	return true
}

// GetProof returns a copy of the proof stored under proofID.
func (e *Engine) GetProof(proofID string) (types.ProofOfReasoning, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	proof, ok := e.proofs[proofID]
	if !ok {
		return types.ProofOfReasoning{}, false
	}
	return *proof, true
}

// GetVerifiedProofs returns copies of every verified proof, sorted by input hash.
func (e *Engine) GetVerifiedProofs() []types.ProofOfReasoning {
	e.mu.RLock()
	defer e.mu.RUnlock()

	verified := make([]types.ProofOfReasoning, 0)
	for _, proof := range e.proofs {
		if e.isVerified(proof) {
			verified = append(verified, *proof)
		}
	}
	sort.Slice(verified, func(i, j int) bool {
		return verified[i].InputHash < verified[j].InputHash
	})
	return verified
}

// CalculateRewards splits rewards for a verified proof: the prover gets
// ProverReward and every roster entry gets ValidatorRewardPot/confirmations,
// later entries overwriting earlier ones for the same identity (the prover's
// included). Missing or unverified proofs yield an empty map.
func (e *Engine) CalculateRewards(proofID string) map[string]uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rewards := make(map[string]uint64)
	proof, ok := e.proofs[proofID]
	if !ok || !e.isVerified(proof) {
		metrics.RewardCalculationsTotal.WithLabelValues("empty").Inc()
		return rewards
	}

	rewards[proof.Prover] = ProverReward
	share := ValidatorRewardPot / uint64(proof.Confirmations)
	for _, validator := range e.validators {
		rewards[validator] = share
	}

	metrics.RewardCalculationsTotal.WithLabelValues("split").Inc()
	return rewards
}

// isVerified also requires the threshold, so a proof submitted with
// verified already set cannot bypass the vote count.
func (e *Engine) isVerified(proof *types.ProofOfReasoning) bool {
	return proof.Verified && proof.Confirmations >= e.requiredConfirmations
}

func (e *Engine) updateVerifiedGauge() {
	count := 0
	for _, proof := range e.proofs {
		if e.isVerified(proof) {
			count++
		}
	}
	metrics.VerifiedProofs.Set(float64(count))
}
