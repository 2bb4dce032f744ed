package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/polyneurons/polyneurons-backend/pkg/env"
)

type Config struct {
	devMode bool

	// Cognitive API Port
	apiPort string

	// Engine poll loop
	taskPollSchedule  string
	taskQueueCapacity int
}

var cfg Config

// Init loads .env when present and reads the cognitive engine settings.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:           env.GetEnvBool("DEV_MODE", false),
		apiPort:           env.GetEnvString("COGNITIVE_API_PORT", "9010"),
		taskPollSchedule:  env.GetEnvString("TASK_POLL_SCHEDULE", "@every 10s"),
		taskQueueCapacity: env.GetEnvInt("TASK_QUEUE_CAPACITY", 256),
	}
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
		return fmt.Errorf("invalid cognitive api port: %s", cfg.apiPort)
	}
	if env.IsEmpty(cfg.taskPollSchedule) {
		return fmt.Errorf("task poll schedule must not be empty")
	}
	if cfg.taskQueueCapacity < 1 {
		return fmt.Errorf("invalid task queue capacity: %d", cfg.taskQueueCapacity)
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetAPIPort() string {
	return cfg.apiPort
}

func GetTaskPollSchedule() string {
	return cfg.taskPollSchedule
}

func GetTaskQueueCapacity() int {
	return cfg.taskQueueCapacity
}
