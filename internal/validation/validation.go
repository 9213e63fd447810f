// Package validation holds shape checks for untyped JSON request bodies.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"slices"
)

var ErrInvalid = errors.New("invalid input")

// ParseObject accepts only a JSON object. Empty, malformed, null, array and
// scalar bodies are rejected with ErrInvalid.
func ParseObject(body []byte) (map[string]any, error) {
	if IsEmptyBody(body) {
		return nil, ErrInvalid
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, ErrInvalid
	}
	if obj == nil {
		return nil, ErrInvalid
	}
	return obj, nil
}

func IsEmptyBody(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func NonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func Number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// Integer accepts numbers with no fractional part, so 11.0 passes and 25.5 does not.
func Integer(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.Trunc(f) != f {
		return 0, false
	}
	return f, true
}

// HasExactKeys reports whether obj holds every key and nothing else.
func HasExactKeys(obj map[string]any, keys ...string) bool {
	if len(obj) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

func OnlyKeys(obj map[string]any, allowed []string) bool {
	for k := range obj {
		if !slices.Contains(allowed, k) {
			return false
		}
	}
	return true
}
