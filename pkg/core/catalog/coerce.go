package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Diagnostic records a raw field that was replaced by a sentinel during
// catalog or order construction. Diagnostics are informational; they never
// abort a run.
type Diagnostic struct {
	Entity string `json:"entity"` // "sku", "box", "order" or "family"
	ID     string `json:"id"`
	Field  string `json:"field"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s=%v: %s", d.Entity, d.ID, d.Field, d.Value, d.Reason)
}

const (
	reasonMissing     = "missing"
	reasonNotNumeric  = "not numeric"
	reasonNotPositive = "not positive"
	reasonNegative    = "negative"
	reasonFraction    = "fractional quantity truncated"
	reasonNotBool     = "not a 0/1 flag"
	reasonTooLarge    = "quantity too large"
)

// toFloat converts a decoded JSON value to a float. Strings are accepted when
// they hold a number, with either '.' or ',' as decimal separator.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// positive reads field from raw and returns it when it is a number > 0.
// Otherwise it returns fallback and a diagnostic.
func positive(entity, id, field string, raw map[string]any, fallback float64) (float64, *Diagnostic) {
	v, ok := raw[field]
	if !ok || v == nil {
		return fallback, &Diagnostic{Entity: entity, ID: id, Field: field, Reason: reasonMissing}
	}
	f, ok := toFloat(v)
	if !ok {
		return fallback, &Diagnostic{Entity: entity, ID: id, Field: field, Value: v, Reason: reasonNotNumeric}
	}
	if f <= 0 {
		return fallback, &Diagnostic{Entity: entity, ID: id, Field: field, Value: v, Reason: reasonNotPositive}
	}
	return f, nil
}

// flag reads a 0/1 (or boolean) field. Anything else yields false.
func flag(entity, id, field string, raw map[string]any) (bool, *Diagnostic) {
	v, ok := raw[field]
	if !ok || v == nil {
		return false, &Diagnostic{Entity: entity, ID: id, Field: field, Reason: reasonMissing}
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	f, ok := toFloat(v)
	switch {
	case ok && f == 1:
		return true, nil
	case ok && f == 0:
		return false, nil
	default:
		return false, &Diagnostic{Entity: entity, ID: id, Field: field, Value: v, Reason: reasonNotBool}
	}
}

// identifier converts a JSON scalar used as an id (family ids are often
// numeric) to its string form. Integral floats print without a fraction.
func identifier(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case json.Number:
		return x.String(), true
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}
