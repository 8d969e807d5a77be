package constraint

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Codes produced by the built-in checkers.
const (
	CodeBlank             = "IS_BLANK"
	CodeTooShort          = "TOO_SHORT"
	CodeTooLong           = "TOO_LONG"
	CodeTooLow            = "TOO_LOW"
	CodeTooHigh           = "TOO_HIGH"
	CodeInvalidCharacters = "INVALID_CHARACTERS"
	CodeRegexFailed       = "REGEX_FAILED"
	CodeNoSuchChoice      = "NO_SUCH_CHOICE"
)

// Parameter keys shared by messages.
const (
	ParamValue = "{{ value }}"
	ParamLimit = "{{ limit }}"
)

// NotBlank rejects nil, empty strings, false, and empty collections.
type NotBlank struct {
	Message string
}

func (NotBlank) Name() string { return "NotBlank" }

func (c NotBlank) Check(value any) []Violation {
	if !isBlank(value) {
		return nil
	}
	msg := orDefault(c.Message, "This value should not be blank.")
	return []Violation{NewViolation(msg, map[string]string{ParamValue: FormatValue(value)}, CodeBlank)}
}

// Length bounds the rune count of string values. Zero bounds are ignored.
// Nil and empty strings are left to NotBlank.
type Length struct {
	Min int
	Max int
}

func (Length) Name() string { return "Length" }

func (c Length) Check(value any) []Violation {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	count := utf8.RuneCountInString(s)
	if c.Max > 0 && count > c.Max {
		params := map[string]string{ParamValue: FormatValue(s), ParamLimit: strconv.Itoa(c.Max)}
		return []Violation{NewViolation("This value is too long. It should have {{ limit }} characters or less.", params, CodeTooLong)}
	}
	if c.Min > 0 && count < c.Min {
		params := map[string]string{ParamValue: FormatValue(s), ParamLimit: strconv.Itoa(c.Min)}
		return []Violation{NewViolation("This value is too short. It should have {{ limit }} characters or more.", params, CodeTooShort)}
	}
	return nil
}

// Range bounds numeric values. Nil bounds are open.
type Range struct {
	Min *float64
	Max *float64
}

func (Range) Name() string { return "Range" }

func (c Range) Check(value any) []Violation {
	if value == nil {
		return nil
	}
	number, ok := toFloat(value)
	if !ok {
		params := map[string]string{ParamValue: FormatValue(value)}
		return []Violation{NewViolation("This value should be a valid number.", params, CodeInvalidCharacters)}
	}
	if c.Min != nil && number < *c.Min {
		params := map[string]string{ParamValue: FormatValue(value), ParamLimit: FormatValue(*c.Min)}
		return []Violation{NewViolation("This value should be {{ limit }} or more.", params, CodeTooLow)}
	}
	if c.Max != nil && number > *c.Max {
		params := map[string]string{ParamValue: FormatValue(value), ParamLimit: FormatValue(*c.Max)}
		return []Violation{NewViolation("This value should be {{ limit }} or less.", params, CodeTooHigh)}
	}
	return nil
}

// Regex requires string values to match Pattern.
type Regex struct {
	Pattern *regexp.Regexp
	Message string
}

func (Regex) Name() string { return "Regex" }

func (c Regex) Check(value any) []Violation {
	s, ok := value.(string)
	if !ok || s == "" || c.Pattern == nil {
		return nil
	}
	if c.Pattern.MatchString(s) {
		return nil
	}
	msg := orDefault(c.Message, "This value is not valid.")
	return []Violation{NewViolation(msg, map[string]string{ParamValue: FormatValue(s)}, CodeRegexFailed)}
}

// Choice restricts values to a fixed set. Numbers compare by value regardless
// of their concrete type.
type Choice struct {
	Choices []any
}

func (Choice) Name() string { return "Choice" }

func (c Choice) Check(value any) []Violation {
	if value == nil {
		return nil
	}
	for _, choice := range c.Choices {
		if sameValue(choice, value) {
			return nil
		}
	}
	params := map[string]string{ParamValue: FormatValue(value)}
	return []Violation{NewViolation("The value you selected is not a valid choice.", params, CodeNoSuchChoice)}
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func sameValue(a, b any) bool {
	_, aString := a.(string)
	_, bString := b.(string)
	if !aString && !bString {
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if aok && bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
