package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polyneurons/polyneurons-backend/internal/consensus"
	"github.com/polyneurons/polyneurons-backend/pkg/cryptography"
	"github.com/polyneurons/polyneurons-backend/pkg/env"
	pkgerrors "github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

type ProofHandler struct {
	logger logging.Logger
	engine *consensus.Engine
}

func NewProofHandler(logger logging.Logger, engine *consensus.Engine) *ProofHandler {
	return &ProofHandler{logger: logger, engine: engine}
}

// SubmitProof stores a proof. When a signature is attached it must recover
// to the claimed prover address.
func (h *ProofHandler) SubmitProof(c *gin.Context) {
	traceID := getTraceID(c)

	var req types.SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Proof.InputHash) == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: "proof.input_hash is required"})
		return
	}

	if req.Signature != "" {
		if !env.IsValidEthAddress(req.Proof.Prover) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: "signed proofs need an address as prover"})
			return
		}
		message := cryptography.ProofMessage(req.Proof.InputHash, req.Proof.OutputHash)
		ok, err := cryptography.VerifySignature(message, req.Signature, req.Proof.Prover)
		if err != nil || !ok {
			details := "signature does not recover to prover"
			if err != nil {
				details = err.Error()
			}
			h.logger.Warn("Rejected proof with bad signature", "trace_id", traceID, "proof_id", req.Proof.InputHash, "prover", req.Proof.Prover)
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: pkgerrors.ErrInvalidProverSig, Details: details})
			return
		}
	}

	h.engine.SubmitProof(req.Proof)
	c.JSON(http.StatusCreated, req.Proof)
}

func (h *ProofHandler) GetProof(c *gin.Context) {
	proof, ok := h.engine.GetProof(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: pkgerrors.ErrProofNotFound})
		return
	}
	c.JSON(http.StatusOK, proof)
}

// ValidateProof records a vote. Unknown proofs answer consensus=false.
func (h *ProofHandler) ValidateProof(c *gin.Context) {
	var req types.ValidateProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrInvalidRequestBody, Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Validator) == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: pkgerrors.ErrMissingIdentity})
		return
	}

	proofID := c.Param("id")
	c.JSON(http.StatusOK, types.ValidateProofResponse{
		ProofID:   proofID,
		Validator: req.Validator,
		Consensus: h.engine.ValidateProof(proofID, req.Validator),
	})
}

func (h *ProofHandler) GetVerifiedProofs(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.GetVerifiedProofs())
}

func (h *ProofHandler) GetRewards(c *gin.Context) {
	proofID := c.Param("id")
	c.JSON(http.StatusOK, types.RewardsResponse{
		ProofID: proofID,
		Rewards: h.engine.CalculateRewards(proofID),
	})
}

func getTraceID(c *gin.Context) string {
	traceID, exists := c.Get("trace_id")
	if !exists {
		return ""
	}
	if s, ok := traceID.(string); ok {
		return s
	}
	return ""
}
