package render

import (
	"errors"
	"fmt"
	"strings"
)

// f-string segments: either a literal run or a single variable reference.
type fstringSegment struct {
	literal  string
	variable string
}

var (
	// ErrUnclosedPlaceholder is returned when a { has no matching }.
	ErrUnclosedPlaceholder = errors.New("unclosed placeholder in template")

	// ErrEmptyPlaceholder is returned for a bare {} placeholder.
	ErrEmptyPlaceholder = errors.New("empty placeholder in template")

	// ErrSingleRightBrace is returned for a } with no opening brace.
	// Literal braces must be escaped as {{ and }}.
	ErrSingleRightBrace = errors.New("single '}' in template")
)

// parseFString tokenizes an f-string template. {name} is a variable
// reference, {{ and }} are escapes for literal braces.
func parseFString(tmpl string) ([]fstringSegment, error) {
	var segments []fstringSegment
	var literal strings.Builder

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end == -1 {
				return nil, ErrUnclosedPlaceholder
			}

			name := strings.TrimSpace(tmpl[i+1 : i+1+end])
			if name == "" {
				return nil, ErrEmptyPlaceholder
			}

			if literal.Len() > 0 {
				segments = append(segments, fstringSegment{literal: literal.String()})
				literal.Reset()
			}
			segments = append(segments, fstringSegment{variable: name})
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, ErrSingleRightBrace
		default:
			literal.WriteByte(tmpl[i])
			i++
		}
	}

	if literal.Len() > 0 {
		segments = append(segments, fstringSegment{literal: literal.String()})
	}

	return segments, nil
}

// renderFString renders an f-string template. Every referenced variable
// must be present in values.
func renderFString(tmpl string, values map[string]any) (string, error) {
	segments, err := parseFString(tmpl)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segments {
		if seg.variable == "" {
			sb.WriteString(seg.literal)
			continue
		}

		value, ok := values[seg.variable]
		if !ok {
			return "", fmt.Errorf("missing value for template variable %q", seg.variable)
		}
		fmt.Fprintf(&sb, "%v", value)
	}

	return sb.String(), nil
}

// parseFStringVariables returns the variable names referenced by an
// f-string template, in order of first appearance.
func parseFStringVariables(tmpl string) ([]string, error) {
	segments, err := parseFString(tmpl)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var vars []string
	for _, seg := range segments {
		if seg.variable != "" && !seen[seg.variable] {
			seen[seg.variable] = true
			vars = append(vars, seg.variable)
		}
	}

	return vars, nil
}
