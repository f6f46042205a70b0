package conf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SyntaxError reports malformed input, with the 1-based line it occurred on.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Msg)
}

// ParseFile reads and parses the configuration file at path.
func ParseFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a configuration document from r and returns it as a nested
// map. Scalars become int, float64, bool or string; sequences become []any;
// groups become nested map[string]any.
func Parse(r io.Reader) (map[string]any, error) {
	root := map[string]any{}
	stack := []map[string]any{root}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}

		cur := stack[len(stack)-1]

		switch {
		case line == "}":
			if len(stack) == 1 {
				return nil, &SyntaxError{Line: lineno, Msg: "unmatched '}'"}
			}
			stack = stack[:len(stack)-1]

		case strings.HasSuffix(line, "{"):
			name := strings.TrimSpace(strings.TrimSuffix(line, "{"))
			if !validKey(name) {
				return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("invalid group name %q", name)}
			}
			if _, exists := cur[name]; exists {
				return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("duplicate key %q", name)}
			}
			child := map[string]any{}
			cur[name] = child
			stack = append(stack, child)

		default:
			key, raw, ok := strings.Cut(line, "=")
			if !ok {
				return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("expected 'key = value' or 'name {', got %q", line)}
			}
			key = strings.TrimSpace(key)
			if !validKey(key) {
				return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("invalid key %q", key)}
			}
			if _, exists := cur[key]; exists {
				return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("duplicate key %q", key)}
			}
			value, err := parseValue(strings.TrimSpace(raw), lineno)
			if err != nil {
				return nil, err
			}
			cur[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if len(stack) > 1 {
		return nil, &SyntaxError{Line: lineno, Msg: "unclosed group at end of input"}
	}

	return root, nil
}

// stripComment removes a trailing '# ...' comment, leaving quoted strings
// intact. Backslash escapes inside quotes do not toggle the quote state.
func stripComment(line string) string {
	inQuote := false
	escaped := false
	for i, r := range line {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

func validKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func parseValue(raw string, lineno int) (any, error) {
	if raw == "" {
		return nil, &SyntaxError{Line: lineno, Msg: "missing value after '='"}
	}

	if strings.HasPrefix(raw, "[") {
		if !strings.HasSuffix(raw, "]") {
			return nil, &SyntaxError{Line: lineno, Msg: "unterminated sequence"}
		}
		return parseSequence(raw[1:len(raw)-1], lineno)
	}

	if strings.HasPrefix(raw, "\"") {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil, &SyntaxError{Line: lineno, Msg: fmt.Sprintf("malformed string %s", raw)}
		}
		return s, nil
	}

	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}

	// Bare string (paths, enum tags).
	return raw, nil
}

func parseSequence(body string, lineno int) (any, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return []any{}, nil
	}

	items := []any{}
	for _, part := range splitTopLevel(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, &SyntaxError{Line: lineno, Msg: "empty element in sequence"}
		}
		v, err := parseValue(part, lineno)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// splitTopLevel splits on commas outside quotes.
func splitTopLevel(s string) []string {
	var parts []string
	inQuote := false
	escaped := false
	start := 0
	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
