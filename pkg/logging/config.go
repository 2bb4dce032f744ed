package logging

import (
	"os"
	"path/filepath"
)

const (
	BaseDataDir   = "data"
	LogsDir       = "logs"
	LogFileFormat = "2006-01-02" // one file per day
	TimeFormat    = "2006-01-02 15:04:05"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorWhite   = "\033[37m"
)

// ProcessName names the service a logger belongs to. It also names the log directory.
type ProcessName string

const (
	CognitiveProcess ProcessName = "cognitive"
	ConsensusProcess ProcessName = "consensus"
	ValidatorProcess ProcessName = "validator"
	TestProcess      ProcessName = "test"
)

type LoggerConfig struct {
	ProcessName   ProcessName
	IsDevelopment bool
}

// getBaseDataDir resolves the data directory. POLYNEURONS_DATA_DIR wins, then the
// directory holding go.mod (so tests run from any package share one data dir), then "data".
func getBaseDataDir() string {
	if dir := os.Getenv("POLYNEURONS_DATA_DIR"); dir != "" {
		return dir
	}

	wd, err := os.Getwd()
	if err != nil {
		return BaseDataDir
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, BaseDataDir)
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return BaseDataDir
}
