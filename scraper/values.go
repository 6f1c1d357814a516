package scraper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dig walks decoded JSON through nested objects by key.
func Dig(v any, path ...string) (any, error) {
	for _, key := range path {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q: not an object: %w", key, ErrMissing)
		}
		v, ok = obj[key]
		if !ok || v == nil {
			return nil, fmt.Errorf("%q: %w", key, ErrMissing)
		}
	}
	return v, nil
}

// Float converts a decoded JSON number or numeric string.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("%T is not a number", v)
}

// Int converts a decoded JSON integer or integer string.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	return 0, fmt.Errorf("%T is not an integer", v)
}

// String returns a decoded JSON string.
func String(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%T is not a string", v)
	}
	return s, nil
}

// DecodeJSON decodes s keeping numbers as json.Number.
func DecodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
