package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/polyneurons/polyneurons-backend/pkg/cryptography"
	pkghttp "github.com/polyneurons/polyneurons-backend/pkg/http"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// ConsensusClient talks to the consensus API on behalf of one prover key.
type ConsensusClient struct {
	baseURL    string
	httpClient pkghttp.JSONClient
	privateKey string
	prover     string
	logger     logging.Logger
	now        func() time.Time
}

func NewConsensusClient(baseURL string, privateKey string, httpClient pkghttp.JSONClient, logger logging.Logger) (*ConsensusClient, error) {
	prover, err := cryptography.AddressFromPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid prover key: %w", err)
	}
	return &ConsensusClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		privateKey: privateKey,
		prover:     prover,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Prover returns the address proofs are submitted under.
func (c *ConsensusClient) Prover() string {
	return c.prover
}

// SubmitToRegistry signs the hash pair and posts it as a fresh proof.
func (c *ConsensusClient) SubmitToRegistry(ctx context.Context, inputHash, outputHash string) error {
	signature, err := cryptography.SignMessage(cryptography.ProofMessage(inputHash, outputHash), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign proof: %w", err)
	}

	req := types.SubmitProofRequest{
		Proof: types.ProofOfReasoning{
			InputHash:  inputHash,
			OutputHash: outputHash,
			Prover:     c.prover,
			Timestamp:  uint64(c.now().Unix()),
		},
		Signature: signature,
	}

	c.logger.Debug("Submitting proof", "proof_id", inputHash, "prover", c.prover)
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/api/proofs", req, nil); err != nil {
		return fmt.Errorf("failed to submit proof %s: %w", inputHash, err)
	}
	return nil
}

// ValidateProof casts a vote as validator and reports whether the proof is at consensus.
func (c *ConsensusClient) ValidateProof(ctx context.Context, proofID, validator string) (bool, error) {
	var resp types.ValidateProofResponse
	endpoint := fmt.Sprintf("%s/api/proofs/%s/validate", c.baseURL, url.PathEscape(proofID))
	if err := c.httpClient.PostJSON(ctx, endpoint, types.ValidateProofRequest{Validator: validator}, &resp); err != nil {
		return false, fmt.Errorf("failed to validate proof %s: %w", proofID, err)
	}
	return resp.Consensus, nil
}

func (c *ConsensusClient) GetProof(ctx context.Context, proofID string) (*types.ProofOfReasoning, error) {
	var proof types.ProofOfReasoning
	endpoint := fmt.Sprintf("%s/api/proofs/%s", c.baseURL, url.PathEscape(proofID))
	if err := c.httpClient.GetJSON(ctx, endpoint, &proof); err != nil {
		return nil, fmt.Errorf("failed to fetch proof %s: %w", proofID, err)
	}
	return &proof, nil
}

func (c *ConsensusClient) GetRewards(ctx context.Context, proofID string) (map[string]uint64, error) {
	var resp types.RewardsResponse
	endpoint := fmt.Sprintf("%s/api/proofs/%s/rewards", c.baseURL, url.PathEscape(proofID))
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch rewards for %s: %w", proofID, err)
	}
	if resp.Rewards == nil {
		resp.Rewards = make(map[string]uint64)
	}
	return resp.Rewards, nil
}
