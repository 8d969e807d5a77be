package constraint

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Codes synthesized by the form validator.
const (
	CodeNotSynchronized = "NOT_SYNCHRONIZED"
	CodeNoSuchField     = "NO_SUCH_FIELD"
)

// Violation records a single failed rule.
type Violation struct {
	Message         string            `json:"message"`
	MessageTemplate string            `json:"messageTemplate"`
	Parameters      map[string]string `json:"parameters,omitempty"`
	Path            string            `json:"path,omitempty"`
	InvalidValue    any               `json:"invalidValue,omitempty"`
	Code            string            `json:"code"`
	Cause           error             `json:"-"`
	Constraint      Constraint        `json:"-"`
}

// NewViolation builds a violation with its message rendered from template and
// params.
func NewViolation(template string, params map[string]string, code string) Violation {
	return Violation{
		Message:         Interpolate(template, params),
		MessageTemplate: template,
		Parameters:      params,
		Code:            code,
	}
}

// Interpolate replaces every parameter key found in template with its value.
// Longer keys are replaced first so overlapping placeholders stay intact.
func Interpolate(template string, params map[string]string) string {
	if len(params) == 0 || template == "" {
		return template
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) == len(keys[j]) {
			return keys[i] < keys[j]
		}
		return len(keys[i]) > len(keys[j])
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, params[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatValue renders value the way it appears in message parameters: strings
// are quoted, nil is "null", composite values collapse to "array" or "object".
func FormatValue(value any) string {
	if value == nil {
		return "null"
	}
	switch v := value.(type) {
	case string:
		return `"` + v + `"`
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// List is an ordered collection of violations.
type List []Violation

// Add appends v.
func (l *List) Add(v Violation) {
	*l = append(*l, v)
}

// Len reports the number of violations.
func (l List) Len() int {
	return len(l)
}

// ByCode returns the violations carrying code, in order.
func (l List) ByCode(code string) List {
	var out List
	for _, v := range l {
		if v.Code == code {
			out = append(out, v)
		}
	}
	return out
}

// ByPath returns the violations attached to path, in order.
func (l List) ByPath(path string) List {
	var out List
	for _, v := range l {
		if v.Path == path {
			out = append(out, v)
		}
	}
	return out
}

// Messages groups rendered messages by path. Violations on the root form are
// keyed by the empty string, matching the form-level bucket renderers use.
func (l List) Messages() map[string][]string {
	if len(l) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, v := range l {
		out[v.Path] = append(out[v.Path], v.Message)
	}
	return out
}
