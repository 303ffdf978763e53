package scad

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedValue reports an argument value outside the closed value
// union: bool, int, float64, string, and sequences of these.
var ErrUnsupportedValue = errors.New("unsupported argument value")

// FormatValue converts a value to its OpenSCAD source representation.
// Numbers keep their shortest exact decimal form; strings are quoted and
// escaped; sequences become bracketed comma-separated lists.
func FormatValue(value any) (string, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return quoteString(v), nil
	case []any:
		return formatSequence(v)
	case []float64:
		items := make([]any, len(v))
		for i, f := range v {
			items[i] = f
		}
		return formatSequence(items)
	case []int:
		items := make([]any, len(v))
		for i, n := range v {
			items[i] = n
		}
		return formatSequence(items)
	case [][]float64:
		items := make([]any, len(v))
		for i, row := range v {
			items[i] = row
		}
		return formatSequence(items)
	case [][]int:
		items := make([]any, len(v))
		for i, row := range v {
			items[i] = row
		}
		return formatSequence(items)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

func formatSequence(items []any) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := FormatValue(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// quoteString renders s as a double-quoted OpenSCAD string literal,
// escaping quotes, backslashes and control characters.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatArguments renders an ordered argument list as the comma-separated
// interior of a command call. Arguments with nil values are omitted.
func formatArguments(args []Argument) (string, error) {
	var parts []string
	for _, a := range args {
		if a.Value == nil {
			continue
		}
		s, err := FormatValue(a.Value)
		if err != nil {
			return "", fmt.Errorf("argument %s: %w", a.Name, err)
		}
		parts = append(parts, a.Name+"="+s)
	}
	return strings.Join(parts, ", "), nil
}
