package pitchprofile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProfile classifies documents rejected by parsing or validation.
	// Use errors.Is(err, ErrInvalidProfile) instead of string matching.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrUnsupportedFormat is returned for profile files that are not YAML.
	ErrUnsupportedFormat = errors.New("unsupported profile format")
)

// Problem is a single defect found while parsing a document.
type Problem struct {
	Path    string // Key path, e.g. team[1].years_experience
	Line    int    // 0 when unknown
	Message string
}

func (p Problem) String() string {
	var b strings.Builder
	if p.Path != "" {
		b.WriteString(p.Path)
		b.WriteString(": ")
	}
	b.WriteString(p.Message)
	if p.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", p.Line)
	}
	return b.String()
}

// ParseError reports every structural defect of a document.
type ParseError struct {
	Problems []Problem
}

func (e *ParseError) Error() string {
	if len(e.Problems) == 1 {
		return "parse profile: " + e.Problems[0].String()
	}
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("parse profile: %d problems: %s", len(e.Problems), strings.Join(msgs, "; "))
}

func (e *ParseError) Unwrap() error { return ErrInvalidProfile }

// ValidationError carries the content errors of a well-formed document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProfile }
