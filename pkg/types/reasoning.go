package types

// Task type tags understood by the task dispatcher.
const (
	TaskTypeMarketPrediction = "market_prediction"
	TaskTypeAnomalyDetection = "anomaly_detection"
	TaskTypeRiskScoring      = "risk_scoring"
)

// ReasoningTask is handed to the dispatcher by the scheduler. Payload is whatever
// the requester attached, decoded from JSON.
type ReasoningTask struct {
	TaskID    uint64      `json:"task_id"`
	TaskType  string      `json:"task_type"`
	Data      interface{} `json:"data"`
	Requester string      `json:"requester"`
	Reward    uint64      `json:"reward"`
	Deadline  uint64      `json:"deadline"`
}

type ReasoningResult struct {
	Prediction        map[string]interface{} `json:"prediction"`
	ConfidenceScore   float64                `json:"confidence_score"`
	ComputationTimeMs uint64                 `json:"computation_time_ms"`
}

// ProofOfReasoning is keyed by InputHash in the consensus registry.
type ProofOfReasoning struct {
	InputHash     string `json:"input_hash"`
	OutputHash    string `json:"output_hash"`
	Prover        string `json:"prover"`
	Timestamp     uint64 `json:"timestamp"`
	Verified      bool   `json:"verified"`
	Confirmations uint32 `json:"confirmations"`
}
