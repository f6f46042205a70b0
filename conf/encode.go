package conf

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Encode writes the canonical textual form of a record to w: scalar keys
// first, then groups, both in sorted order, with two-space indentation.
// The output reparses to an identical record.
func Encode(w io.Writer, record map[string]any) error {
	return encodeGroup(w, record, 0)
}

// Format returns the canonical textual form of a record as a string.
func Format(record map[string]any) (string, error) {
	var b strings.Builder
	if err := Encode(&b, record); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encodeGroup(w io.Writer, group map[string]any, depth int) error {
	indent := strings.Repeat("  ", depth)

	var scalars, groups []string
	for key, v := range group {
		if _, ok := v.(map[string]any); ok {
			groups = append(groups, key)
		} else {
			scalars = append(scalars, key)
		}
	}
	sort.Strings(scalars)
	sort.Strings(groups)

	for _, key := range scalars {
		s, err := formatValue(group[key])
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		if _, err := fmt.Fprintf(w, "%s%s = %s\n", indent, key, s); err != nil {
			return err
		}
	}
	for _, key := range groups {
		if _, err := fmt.Fprintf(w, "%s%s {\n", indent, key); err != nil {
			return err
		}
		if err := encodeGroup(w, group[key].(map[string]any), depth+1); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s}\n", indent); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return formatFloat(x), nil
	case string:
		if needsQuoting(x) {
			return strconv.Quote(x), nil
		}
		return x, nil
	case []any:
		return formatSequence(x)
	case []int:
		items := make([]any, len(x))
		for i, n := range x {
			items[i] = n
		}
		return formatSequence(items)
	case []float64:
		items := make([]any, len(x))
		for i, f := range x {
			items[i] = f
		}
		return formatSequence(items)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return formatSequence(items)
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func formatSequence(items []any) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := formatValue(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// formatFloat keeps integral floats distinguishable from ints so the value
// reparses with its original type.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// needsQuoting reports whether a string would not survive a round trip as a
// bare word.
func needsQuoting(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return true
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if strings.ContainsAny(s, " \t\"#,[]{}=\\") {
		return true
	}
	// Control characters and other non-printables (newlines above all)
	// would split or corrupt the line.
	for _, r := range s {
		if !strconv.IsPrint(r) {
			return true
		}
	}
	return false
}
