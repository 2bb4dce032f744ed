package errors

const (
	ErrInvalidRequestBody  = "Invalid request body"
	ErrInvalidTaskID       = "Invalid task id"
	ErrTaskQueueFull       = "Task queue is full"
	ErrResultNotFound      = "Result not found"
	ErrProofNotFound       = "Proof not found"
	ErrInvalidProverSig    = "Prover signature does not match"
	ErrMissingIdentity     = "Validator identity is required"
	ErrTaskProcessingError = "Task processing failed"
)
