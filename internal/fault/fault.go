package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine error.
type Kind int

const (
	// Grammar marks a malformed path, reference or variant token.
	Grammar Kind = iota + 1
	// Resolution marks a missing component, layout, editable or value.
	Resolution
	// Consistency marks duplicate editables and circular references.
	Consistency
	// Structural marks a malformed variable definition source.
	Structural
)

func (k Kind) String() string {
	switch k {
	case Grammar:
		return "grammar"
	case Resolution:
		return "resolution"
	case Consistency:
		return "consistency"
	case Structural:
		return "structural"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single concrete error type raised by the engine.
type Error struct {
	Kind    Kind
	Message string
	// Subject is the offending raw string: a path, a reference, a token.
	Subject string
	// File is the declaring source file, when known.
	File string
	// Trace is the expansion stack of a circular reference.
	Trace []string
	// Hint is a close match for an unknown name.
	Hint string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error: ")
	b.WriteString(e.Message)
	if e.Subject != "" {
		fmt.Fprintf(&b, " |%s|", e.Subject)
	}
	if e.File != "" {
		fmt.Fprintf(&b, " in |%s|", e.File)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Hint)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Trace) > 0 {
		b.WriteString(". Trace stack follows:")
		for _, entry := range e.Trace {
			b.WriteString("\n\t- ")
			b.WriteString(entry)
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InFile returns a copy of e attributed to file. An already attributed error
// keeps its original file.
func (e *Error) InFile(file string) *Error {
	if e.File != "" {
		return e
	}
	c := *e
	c.File = file
	return &c
}

// New creates an error of the given kind.
func New(kind Kind, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether any error in err's chain is an engine error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Attribute stamps file on err when it is an engine error without a file.
// Other errors are returned unchanged.
func Attribute(err error, file string) error {
	var e *Error
	if errors.As(err, &e) && e.File == "" {
		return e.InFile(file)
	}
	return err
}
