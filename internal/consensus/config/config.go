package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/polyneurons/polyneurons-backend/pkg/env"
)

type Config struct {
	devMode bool

	// Consensus API Port
	apiPort string

	// Confirmation threshold
	requiredConfirmations uint32

	// Validator roster: file entries first, then VALIDATORS
	rosterFile string
	validators []string
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:               env.GetEnvBool("DEV_MODE", false),
		apiPort:               env.GetEnvString("CONSENSUS_API_PORT", "9011"),
		requiredConfirmations: env.GetEnvUint32("REQUIRED_CONFIRMATIONS", 3),
		rosterFile:            env.GetEnvString("VALIDATOR_ROSTER_FILE", ""),
	}

	if cfg.rosterFile != "" {
		roster, err := LoadRoster(cfg.rosterFile)
		if err != nil {
			return err
		}
		cfg.validators = append(cfg.validators, roster.Identities()...)
		// The environment wins over the roster file.
		if _, set := os.LookupEnv("REQUIRED_CONFIRMATIONS"); roster.RequiredConfirmations > 0 && !set {
			cfg.requiredConfirmations = roster.RequiredConfirmations
		}
	}
	cfg.validators = append(cfg.validators, env.GetEnvList("VALIDATORS")...)

	if err := validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.devMode {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func validateConfig() error {
	if port, err := strconv.Atoi(cfg.apiPort); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid consensus api port: %s", cfg.apiPort)
	}
	if cfg.requiredConfirmations < 1 {
		return fmt.Errorf("required confirmations must be at least 1")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetAPIPort() string {
	return cfg.apiPort
}

func GetRequiredConfirmations() uint32 {
	return cfg.requiredConfirmations
}

func GetRosterFile() string {
	return cfg.rosterFile
}

// GetValidators returns the configured roster, duplicates included.
func GetValidators() []string {
	out := make([]string, len(cfg.validators))
	copy(out, cfg.validators)
	return out
}
