package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup parses key with parse. Unset or unparsable variables fall back to
// defaultValue, and the fallback is reported on stdout since loggers are built
// from this configuration.
func lookup[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		fmt.Printf("Environment variable %s not found, using default value: %v\n", key, defaultValue)
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		fmt.Printf("Environment variable %s is not valid, using default value: %v\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookup(key, defaultValue, func(raw string) (string, error) { return raw, nil })
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, strconv.ParseBool)
}

func GetEnvInt(key string, defaultValue int) int {
	return lookup(key, defaultValue, strconv.Atoi)
}

// GetEnvUint32 rejects negative and out-of-range values.
func GetEnvUint32(key string, defaultValue uint32) uint32 {
	return lookup(key, defaultValue, func(raw string) (uint32, error) {
		parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
		return uint32(parsed), err
	})
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, time.ParseDuration)
}

// GetEnvList splits a comma-separated variable, trimming blanks and dropping empty items.
func GetEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
