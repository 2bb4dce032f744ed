package reasoning

import (
	"context"
	"encoding/json"

	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// Strategy is one kind of reasoning computation. Implementations hold no mutable state
// and may be shared by any number of concurrent callers. They never modify data.
type Strategy interface {
	TaskType() string
	Compute(ctx context.Context, data interface{}) (*types.ReasoningResult, error)
}

// field looks up key in a JSON object. Anything that is not an object has no fields.
func field(data interface{}, key string) (interface{}, bool) {
	object, ok := data.(map[string]interface{})
	if !ok {
		return nil, false
	}
	value, ok := object[key]
	return value, ok
}

func asSlice(value interface{}) ([]interface{}, bool) {
	slice, ok := value.([]interface{})
	return slice, ok
}

// asFloat accepts any JSON number, including the integer forms callers build by hand.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func floatOr(data interface{}, key string, defaultValue float64) float64 {
	value, ok := field(data, key)
	if !ok {
		return defaultValue
	}
	if f, ok := asFloat(value); ok {
		return f
	}
	return defaultValue
}
