package feed

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// RawMatch is one record of the Get1x2_VZip "Value" array, kept as a generic document.
// No key is guaranteed to be present, so every accessor takes or implies a default.
type RawMatch map[string]any

// String returns the string stored under key, or def when the key is absent or not a string.
func (m RawMatch) String(key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Text renders a scalar value (string or number) as display text.
func (m RawMatch) Text(key, def string) string {
	v, ok := m[key]
	if !ok {
		return def
	}
	if s, ok := ScalarText(v); ok {
		return s
	}
	return def
}

// Map returns the nested document under key. Missing or mistyped values yield nil, which reads as empty.
func (m RawMatch) Map(key string) RawMatch {
	return AsRecord(m[key])
}

// Records returns the list under key, keeping only document elements.
func (m RawMatch) Records(key string) []RawMatch {
	list, ok := m[key].([]any)
	if !ok {
		if typed, ok := m[key].([]RawMatch); ok {
			return typed
		}
		if typed, ok := m[key].([]map[string]any); ok {
			out := make([]RawMatch, 0, len(typed))
			for _, item := range typed {
				out = append(out, RawMatch(item))
			}
			return out
		}
		return nil
	}
	out := make([]RawMatch, 0, len(list))
	for _, item := range list {
		if rec := AsRecord(item); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// Int returns the value under key only when it is integer-typed.
// A float such as 90.5 (or the JSON literal 90.0) is reported as not present.
func (m RawMatch) Int(key string) (int64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// Float returns any numeric value under key.
func (m RawMatch) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return AsFloat(v)
}

// ID returns the feed match identifier (key "I"). Integral floats such as 5.0 count,
// so records decoded without UseNumber keep their ids.
func (m RawMatch) ID() (int64, bool) {
	if i, ok := m.Int("I"); ok {
		return i, true
	}
	f, ok := m.Float("I")
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// AsRecord converts a nested document value into a RawMatch, or nil.
func AsRecord(v any) RawMatch {
	switch doc := v.(type) {
	case RawMatch:
		return doc
	case map[string]any:
		return RawMatch(doc)
	default:
		return nil
	}
}

// AsInt reports integer-typed values: Go integer kinds and JSON numbers written without
// a fraction or exponent.
func AsInt(v any) (int64, bool) {
	v = canonicalNumber(v)
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case json.Number:
		if strings.ContainsAny(string(n), ".eE") {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// AsFloat reports any numeric value as float64. Strings are not numbers.
func AsFloat(v any) (float64, bool) {
	v = canonicalNumber(v)
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		if i, ok := AsInt(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ScalarText renders strings and numbers the way the feed wrote them.
func ScalarText(v any) (string, bool) {
	v = canonicalNumber(v)
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		if i, ok := AsInt(v); ok {
			return strconv.FormatInt(i, 10), true
		}
		return "", false
	}
}

// FindByID returns the first record whose "I" equals id.
func FindByID(records []RawMatch, id int64) (RawMatch, bool) {
	for _, rec := range records {
		if got, ok := rec.ID(); ok && got == id {
			return rec, true
		}
	}
	return nil, false
}

// canonicalNumber folds jsoniter's own number type into json.Number.
func canonicalNumber(v any) any {
	if n, ok := v.(jsoniter.Number); ok {
		return json.Number(n)
	}
	return v
}
