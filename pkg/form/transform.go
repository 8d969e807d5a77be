package form

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FieldType is the simplified enum for leaf value kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
)

// ParseFieldType normalises a type name. Unknown names report false.
func ParseFieldType(raw string) (FieldType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "string", "text":
		return FieldTypeString, true
	case "integer", "int":
		return FieldTypeInteger, true
	case "number", "float", "decimal":
		return FieldTypeNumber, true
	case "boolean", "bool", "checkbox":
		return FieldTypeBoolean, true
	case "object", "compound":
		return FieldTypeObject, true
	default:
		return "", false
	}
}

// TransformerFor returns the built-in transformer for a leaf type. Object
// fields have no transformer; their data is assembled from children.
func TransformerFor(t FieldType) Transformer {
	switch t {
	case FieldTypeInteger:
		return IntegerTransformer
	case FieldTypeNumber:
		return NumberTransformer
	case FieldTypeBoolean:
		return BooleanTransformer
	case FieldTypeString:
		return StringTransformer
	default:
		return nil
	}
}

// StringTransformer accepts scalars and renders numbers and booleans as text.
func StringTransformer(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int, int64, int32, uint, uint64:
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("expected a scalar, got %s", describe(raw))
}

// IntegerTransformer accepts integers, integral floats and numeric strings.
// Empty strings become nil.
func IntegerTransformer(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("expected an integer, got %v", v)
		}
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return nil, fmt.Errorf("integer %v overflows", v)
		}
		return int64(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", v)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("expected an integer, got %s", describe(raw))
}

// NumberTransformer accepts numbers and numeric strings as float64.
func NumberTransformer(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", v)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("expected a number, got %s", describe(raw))
}

// BooleanTransformer accepts booleans and the usual checkbox spellings.
func BooleanTransformer(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false, nil
		case "1", "true", "on", "yes":
			return true, nil
		}
		return nil, fmt.Errorf("expected a boolean, got %q", v)
	}
	return nil, fmt.Errorf("expected a boolean, got %s", describe(raw))
}

func describe(value any) string {
	if value == nil {
		return "null"
	}
	if _, ok := value.(interface{ Keys() []string }); ok {
		return "a mapping"
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map:
		return "a mapping"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return fmt.Sprintf("%T", value)
	}
}
