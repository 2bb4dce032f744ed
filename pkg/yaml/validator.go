package yaml

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validator checks `validate` struct tags on decoded configuration.
// Supported rules: required, min=N, max=N.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates a configuration struct, descending into nested
// structs and slices of structs.
func (v *Validator) ValidateConfig(config interface{}) error {
	value := reflect.ValueOf(config)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("config must be a struct")
	}
	return v.validateStruct(value)
}

func (v *Validator) validateStruct(structValue reflect.Value) error {
	structType := structValue.Type()

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		fieldType := structType.Field(i)
		if !field.CanInterface() {
			continue
		}

		if tag := fieldType.Tag.Get("validate"); tag != "" {
			for _, rule := range strings.Split(tag, ",") {
				if rule = strings.TrimSpace(rule); rule == "" {
					continue
				}
				if err := v.applyRule(field, fieldType.Name, rule); err != nil {
					return fmt.Errorf("field %s: %w", fieldType.Name, err)
				}
			}
		}

		switch field.Kind() {
		case reflect.Struct:
			if err := v.validateStruct(field); err != nil {
				return fmt.Errorf("nested field %s: %w", fieldType.Name, err)
			}
		case reflect.Slice:
			for j := 0; j < field.Len(); j++ {
				elem := field.Index(j)
				if elem.Kind() == reflect.Ptr {
					elem = elem.Elem()
				}
				if elem.Kind() != reflect.Struct {
					continue
				}
				if err := v.validateStruct(elem); err != nil {
					return fmt.Errorf("%s[%d]: %w", fieldType.Name, j, err)
				}
			}
		}
	}
	return nil
}

func (v *Validator) applyRule(field reflect.Value, name, rule string) error {
	ruleName, ruleValue, _ := strings.Cut(rule, "=")

	switch ruleName {
	case "required":
		if field.IsZero() {
			return fmt.Errorf("required field %s cannot be empty", name)
		}
	case "min", "max":
		bound, err := strconv.ParseFloat(ruleValue, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value for field %s: %s", ruleName, name, ruleValue)
		}
		size, ok := measure(field)
		if !ok {
			return fmt.Errorf("%s rule not supported on field %s", ruleName, name)
		}
		if ruleName == "min" && size < bound {
			return fmt.Errorf("value %v for field %s is less than minimum %v", size, name, bound)
		}
		if ruleName == "max" && size > bound {
			return fmt.Errorf("value %v for field %s is greater than maximum %v", size, name, bound)
		}
	default:
		return fmt.Errorf("unknown validation rule: %s", ruleName)
	}
	return nil
}

// measure returns the number a min/max rule compares against: the value for
// numbers and the length for strings and slices.
func measure(field reflect.Value) (float64, bool) {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint()), true
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	case reflect.String, reflect.Slice, reflect.Map:
		return float64(field.Len()), true
	default:
		return 0, false
	}
}
