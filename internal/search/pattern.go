// Package search turns raw query input into task filters and highlighted output.
//
// Everything in this package runs synchronously on the caller's goroutine. Session is the
// only mutable state; Pattern values are immutable once compiled.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedPattern is wrapped by SyntaxError.
var ErrMalformedPattern = errors.New("malformed pattern")

// SyntaxError reports a /pattern/ literal the regexp engine rejected.
type SyntaxError struct {
	Input string
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Input, e.Err)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrMalformedPattern, e.Err}
}

// Scope selects which task fields a pattern is evaluated against.
type Scope int

const (
	// ScopeAll matches against the joined searchable text of a task.
	ScopeAll Scope = iota
	// ScopeTag matches against the tag field alone.
	ScopeTag
)

// Field names a rendered task field.
type Field string

const (
	FieldTitle    Field = "title"
	FieldTag      Field = "tag"
	FieldDueDate  Field = "dueDate"
	FieldDuration Field = "duration"
)

// Pattern is a compiled, reusable matcher. Change flags by compiling again.
type Pattern struct {
	re            *regexp.Regexp
	source        string
	caseSensitive bool
	scope         Scope
	fallback      bool
}

// Source is the expression the pattern was compiled from, without flags.
func (p *Pattern) Source() string { return p.source }

// CaseSensitive reports whether letter case is significant.
func (p *Pattern) CaseSensitive() bool { return p.caseSensitive }

// Scope reports which fields the pattern applies to.
func (p *Pattern) Scope() Scope { return p.scope }

// Fallback reports whether the pattern is a literal stand-in for a malformed literal.
func (p *Pattern) Fallback() bool { return p.fallback }

// AppliesTo reports whether matches of p should be shown in field f.
func (p *Pattern) AppliesTo(f Field) bool {
	return p.scope == ScopeAll || f == FieldTag
}

// MatchString reports whether p matches anywhere in s.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String renders the pattern as /source/flags.
func (p *Pattern) String() string {
	if p.caseSensitive {
		return "/" + p.source + "/"
	}
	return "/" + p.source + "/i"
}

const literalDelim = "/"

// isPatternLiteral reports whether s is written as /expr/ with a non-empty expr.
func isPatternLiteral(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, literalDelim) && strings.HasSuffix(s, literalDelim)
}

// Compile builds a pattern from raw user input. Empty or whitespace-only input returns a
// nil pattern and a nil error. Input written as /expr/ is compiled as a regular expression
// and may fail with a *SyntaxError; anything else is matched as literal text and never fails.
func Compile(raw string, caseSensitive bool) (*Pattern, error) {
	in := strings.TrimSpace(raw)
	if in == "" {
		return nil, nil
	}
	if !isPatternLiteral(in) {
		return Literal(in, caseSensitive), nil
	}
	expr := in[1 : len(in)-1]
	re, err := regexp.Compile(withFlags(expr, caseSensitive))
	if err != nil {
		return nil, &SyntaxError{Input: in, Err: err}
	}
	return &Pattern{re: re, source: expr, caseSensitive: caseSensitive}, nil
}

// CompileFallback is Compile with graceful degradation: a malformed literal is replaced by
// a literal match of the whole raw input. The returned pattern is always usable (nil only
// for empty input); a non-nil error is advisory and reports the fallback.
func CompileFallback(raw string, caseSensitive bool) (*Pattern, error) {
	p, err := Compile(raw, caseSensitive)
	if err == nil {
		return p, nil
	}
	lit := Literal(strings.TrimSpace(raw), caseSensitive)
	lit.fallback = true
	return lit, err
}

// Literal builds a pattern matching text verbatim.
func Literal(text string, caseSensitive bool) *Pattern {
	expr := regexp.QuoteMeta(text)
	return &Pattern{
		re:            regexp.MustCompile(withFlags(expr, caseSensitive)),
		source:        expr,
		caseSensitive: caseSensitive,
	}
}

func withFlags(expr string, caseSensitive bool) string {
	if caseSensitive {
		return expr
	}
	return "(?i)" + expr
}
