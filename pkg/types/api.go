package types

// Cognitive API

type ProcessTaskResponse struct {
	TaskID uint64           `json:"task_id"`
	Result *ReasoningResult `json:"result,omitempty"`
}

type EnqueueTaskResponse struct {
	TaskID  uint64 `json:"task_id"`
	Queued  bool   `json:"queued"`
	Pending int    `json:"pending"`
}

// Consensus API

type SubmitProofRequest struct {
	Proof ProofOfReasoning `json:"proof"`
	// Signature is the prover's signature over "<input_hash>:<output_hash>". Optional.
	Signature string `json:"signature,omitempty"`
}

type AddValidatorRequest struct {
	Validator string `json:"validator"`
}

type ValidateProofRequest struct {
	Validator string `json:"validator"`
}

type ValidateProofResponse struct {
	ProofID   string `json:"proof_id"`
	Validator string `json:"validator"`
	Consensus bool   `json:"consensus"`
}

type RewardsResponse struct {
	ProofID string            `json:"proof_id"`
	Rewards map[string]uint64 `json:"rewards"`
}

type ValidatorsResponse struct {
	Validators            []string `json:"validators"`
	RequiredConfirmations uint32   `json:"required_confirmations"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
