// Package normalize converts the upstream API's drifting JSON shapes
// into the canonical records of pkg/models. Every function here is a
// pure transformation of decoded JSON values (map[string]any trees).
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// PickFirst probes keys in priority order and returns the first value
// that is present, non-nil and non-empty. Alias lists tolerate upstream
// renames without branching at the call sites.
func PickFirst(row map[string]any, keys []string, fallback any) any {
	if row == nil {
		return fallback
	}
	for _, key := range keys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value
	}
	return fallback
}

// Text coerces a scalar to a trimmed string. Maps, slices and nil
// become "". Whole floats render without a fractional part so numeric
// upstream ids stay stable ("12", not "12.000000").
func Text(value any) string {
	return strings.TrimSpace(Stringify(value))
}

// Stringify is Text without trimming.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// Lower is Text lowercased.
func Lower(value any) string {
	return strings.ToLower(Text(value))
}

var trueWords = map[string]bool{"1": true, "true": true, "yes": true, "on": true, "enabled": true, "active": true}
var falseWords = map[string]bool{"0": true, "false": true, "no": true, "off": true, "disabled": true, "inactive": true}

// BoolLike interprets the upstream's many truthiness spellings.
func BoolLike(value any, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v > 0
	case int:
		return v > 0
	case string:
		word := strings.ToLower(strings.TrimSpace(v))
		if trueWords[word] {
			return true
		}
		if falseWords[word] {
			return false
		}
	}
	return fallback
}

// Float parses decimal-ish input ("1,234.56", 12, "0.9") into a float.
// Returns false for anything non-numeric.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// IsNumeric reports whether the value is a number or a numeric string.
func IsNumeric(value any) bool {
	_, ok := Float(value)
	return ok
}

// AsMap returns the value as a JSON object, or nil.
func AsMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

// FlattenPairs reduces an id→title pairs payload to a string map,
// skipping nested values and empty keys.
func FlattenPairs(value any) map[string]string {
	pairs := map[string]string{}
	m := AsMap(value)
	for key, title := range m {
		if key == "" {
			continue
		}
		if _, nested := title.(map[string]any); nested {
			continue
		}
		if _, nested := title.([]any); nested {
			continue
		}
		pairs[key] = Stringify(title)
	}
	return pairs
}

// FlattenConfig folds a nested config object into dotted-path keys with
// scalar leaves.
func FlattenConfig(value any, prefix string) map[string]any {
	out := map[string]any{}
	m := AsMap(value)
	for key, item := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := item.(map[string]any); ok {
			for k, v := range FlattenConfig(nested, path) {
				if _, exists := out[k]; !exists {
					out[k] = v
				}
			}
			continue
		}
		switch item.(type) {
		case nil, []any:
			continue
		default:
			out[path] = item
		}
	}
	return out
}

var limitationKeyPattern = regexp.MustCompile(`(?i)(max|limit|quota|database|db|addon|subdomain|domain|email|mailbox|ftp|cron|disk|inode|bandwidth|traffic|ram|cpu|site|website|account)`)

// ExtractLimitations keeps the quota-like entries of a flattened
// config: keys matching the resource vocabulary with scalar values.
func ExtractLimitations(config any) map[string]any {
	limits := map[string]any{}
	for key, value := range FlattenConfig(config, "") {
		if !limitationKeyPattern.MatchString(key) {
			continue
		}
		switch value.(type) {
		case bool, float64, int, string:
			limits[key] = value
		}
	}
	return limits
}
