package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:      maxRetries,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		JitterFactor:    0.1,
		LogRetryAttempt: true,
	}
}

func TestRetry(t *testing.T) {
	logger := logging.NewNoOpLogger()

	tests := []struct {
		name          string
		failures      int
		maxRetries    int
		expectError   bool
		expectedCalls int
	}{
		{"success on first try", 0, 3, false, 1},
		{"success after retries", 2, 3, false, 3},
		{"failure after all retries", 5, 2, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			result, err := Retry(context.Background(), func() (string, error) {
				calls++
				if calls <= tt.failures {
					return "", errors.New("operation failed")
				}
				return "success", nil
			}, fastConfig(tt.maxRetries), logger)

			assert.Equal(t, tt.expectedCalls, calls)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "operation failed after 2 attempts")
				assert.Empty(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "success", result)
			}
		})
	}
}

func TestRetry_PermanentErrorStops(t *testing.T) {
	sentinel := errors.New("bad request")
	calls := 0

	err := RetryFunc(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, fastConfig(5), logging.NewNoOpLogger())

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestRetry_ShouldRetryPredicate(t *testing.T) {
	calls := 0
	config := fastConfig(5)
	config.ShouldRetry = func(err error, attempt int) bool { return attempt < 2 }

	err := RetryFunc(context.Background(), func() error {
		calls++
		return errors.New("boom")
	}, config, logging.NewNoOpLogger())

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, func() (int, error) { return 1, nil }, fastConfig(3), logging.NewNoOpLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_InvalidConfig(t *testing.T) {
	_, err := Retry(context.Background(), func() (int, error) { return 1, nil }, &Config{}, logging.NewNoOpLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid retry config")
}

func TestCalculateNextDelay(t *testing.T) {
	assert.Equal(t, 20*time.Millisecond, CalculateNextDelay(10*time.Millisecond, 2.0, time.Second))
	assert.Equal(t, 15*time.Millisecond, CalculateNextDelay(10*time.Millisecond, 2.0, 15*time.Millisecond))
}

func TestCalculateDelayWithJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 20; i++ {
		d := CalculateDelayWithJitter(base, 0.5)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/2+time.Nanosecond)
	}
	assert.Equal(t, base, CalculateDelayWithJitter(base, 0))
}
