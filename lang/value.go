package lang

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// noValue is the type of the NoValue marker.
type noValue struct{}

// String renders the marker the way transcripts print it.
func (noValue) String() string { return "none" }

// NoValue is the designated marker for a call that runs to completion
// without an explicit return. It is a value like any other: it can be
// bound to names, passed as an argument, and printed.
//
//nolint:gochecknoglobals
var NoValue = noValue{}

// IsNoValue reports whether v is the NoValue marker.
func IsNoValue(v any) bool {
	_, ok := v.(noValue)

	return ok
}

// FormatValue formats a runtime value the way an interactive transcript
// would print it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil, noValue:
		return "none"

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case string:
		return val

	case *Function:
		return "<function " + val.Name + ">"

	case []any:
		return formatSlice(val)

	case map[string]any:
		return formatMap(val)

	default:
		return fmt.Sprintf("%v", val)
	}
}

// QuoteValue formats a runtime value with strings quoted, suitable for
// echoing results and trace arguments unambiguously.
func QuoteValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}

	return FormatValue(v)
}

// formatSlice formats a slice as a bracketed list.
func formatSlice(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = QuoteValue(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// formatMap formats a map with deterministic key ordering.
func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(m))
	for _, k := range keys {
		parts = append(parts, k+": "+QuoteValue(m[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
