package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/polyneurons/polyneurons-backend/pkg/cryptography"
	"github.com/polyneurons/polyneurons-backend/pkg/env"
)

type Config struct {
	devMode bool

	// Prover key; the prover identity is its address
	proverPrivateKey string
	proverAddress    string

	// Consensus API
	consensusAPIURL string
	requestTimeout  time.Duration

	// Loops
	reasoningSchedule string
	blockSchedule     string

	// Optional chain RPC for the block loop
	chainRPCURL string

	// Task ids assigned at startup
	assignedTasks []string

	// Prometheus listener; empty disables it
	metricsPort string
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:           env.GetEnvBool("DEV_MODE", false),
		proverPrivateKey:  env.GetEnvString("PROVER_PRIVATE_KEY", ""),
		consensusAPIURL:   env.GetEnvString("CONSENSUS_API_URL", "http://localhost:9011"),
		requestTimeout:    env.GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		reasoningSchedule: env.GetEnvString("REASONING_SCHEDULE", "@every 15s"),
		blockSchedule:     env.GetEnvString("BLOCK_SCHEDULE", "@every 2s"),
		chainRPCURL:       env.GetEnvString("CHAIN_RPC_URL", ""),
		assignedTasks:     env.GetEnvList("ASSIGNED_TASKS"),
		metricsPort:       env.GetEnvString("VALIDATOR_METRICS_PORT", ""),
	}
	if err := validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	address, err := cryptography.AddressFromPrivateKey(cfg.proverPrivateKey)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.proverAddress = address
	return nil
}

func validateConfig() error {
	if !env.IsValidPrivateKey(cfg.proverPrivateKey) {
		return fmt.Errorf("invalid prover private key")
	}
	if !env.IsValidURL(cfg.consensusAPIURL) {
		return fmt.Errorf("invalid consensus api url: %s", cfg.consensusAPIURL)
	}
	if cfg.requestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if env.IsEmpty(cfg.reasoningSchedule) {
		return fmt.Errorf("reasoning schedule must not be empty")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetProverPrivateKey() string {
	return cfg.proverPrivateKey
}

func GetProverAddress() string {
	return cfg.proverAddress
}

func GetConsensusAPIURL() string {
	return cfg.consensusAPIURL
}

func GetRequestTimeout() time.Duration {
	return cfg.requestTimeout
}

func GetReasoningSchedule() string {
	return cfg.reasoningSchedule
}

func GetBlockSchedule() string {
	return cfg.blockSchedule
}

func GetChainRPCURL() string {
	return cfg.chainRPCURL
}

func GetAssignedTasks() []string {
	out := make([]string, len(cfg.assignedTasks))
	copy(out, cfg.assignedTasks)
	return out
}

func GetMetricsPort() string {
	return cfg.metricsPort
}
