package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the error types below through errors.Is.
var (
	ErrParse         = errors.New("parse error")
	ErrReference     = errors.New("reference error")
	ErrValidation    = errors.New("validation error")
	ErrResourceLimit = errors.New("resource limit exceeded")
	ErrConfig        = errors.New("configuration error")
)

// ParseError reports a schema document, attribute or input document that
// could not be decoded.
type ParseError struct {
	Path    string // file path or source name, if known
	Line    int    // 1-based; 0 when unknown
	Column  int    // 1-based; 0 when unknown
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Path != "" {
		b.WriteString(" in " + e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	return withDetail(&b, e.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref or definition name that does not name an
// object definition.
type ReferenceError struct {
	Ref     string
	Message string
	Cause   error
}

func (e *ReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("reference error")
	if e.Ref != "" {
		b.WriteString(": " + e.Ref)
	}
	return withDetail(&b, e.Message, e.Cause)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ResourceLimitError reports an input larger than a configured maximum,
// such as an oversized request body.
type ResourceLimitError struct {
	Resource string // e.g. "body_size"
	Limit    int64
	Actual   int64 // 0 when the input was cut off before its size was known
	Message  string
}

func (e *ResourceLimitError) Error() string {
	var b strings.Builder
	b.WriteString("resource limit exceeded")
	if e.Resource != "" {
		b.WriteString(": " + e.Resource)
	}
	switch {
	case e.Limit > 0 && e.Actual > 0:
		fmt.Fprintf(&b, " (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		fmt.Fprintf(&b, " (limit: %d)", e.Limit)
	}
	return withDetail(&b, e.Message, nil)
}

func (e *ResourceLimitError) Unwrap() error { return nil }

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports an invalid option, a malformed route template or
// other bad caller input.
type ConfigError struct {
	Option  string
	Value   any // offending value; nil when not meaningful
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Option != "" {
		b.WriteString(" for " + e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	return withDetail(&b, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func withDetail(b *strings.Builder, msg string, cause error) string {
	if msg != "" {
		b.WriteString(": " + msg)
	}
	if cause != nil {
		b.WriteString(": " + cause.Error())
	}
	return b.String()
}
