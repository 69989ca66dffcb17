package rdf

import (
	"errors"
	"fmt"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeNoRootElement indicates that no RDF root element was found.
	ErrCodeNoRootElement ErrorCode = "NO_ROOT_ELEMENT"
	// ErrCodeMissingNamespace indicates an element or attribute without a namespace.
	ErrCodeMissingNamespace ErrorCode = "MISSING_NAMESPACE"
	// ErrCodeDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// ErrCodeBaseRequired indicates a relative reference with no base IRI in scope.
	ErrCodeBaseRequired ErrorCode = "BASE_REQUIRED"
	// ErrCodeResolution indicates a reference that could not be resolved.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILED"
	// ErrCodeInvalidStatement indicates an ill-typed statement in the output.
	ErrCodeInvalidStatement ErrorCode = "INVALID_STATEMENT"
	// ErrCodeInvalidIRI indicates an invalid IRI was encountered.
	ErrCodeInvalidIRI ErrorCode = "INVALID_IRI"
	// ErrCodeStructural indicates a malformed or non-conformant document shape.
	ErrCodeStructural ErrorCode = "STRUCTURAL"
)

var (
	// ErrNoRootElement indicates that no RDF root element was found.
	ErrNoRootElement = errors.New("rdfxml: no RDF root element found")
	// ErrDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrDepthExceeded = errors.New("rdfxml: nesting depth exceeded configured limit")
	// ErrMissingNamespace indicates an element or attribute without a namespace.
	ErrMissingNamespace = errors.New("rdfxml: element or attribute has no namespace")
	// ErrUnknownParseType indicates an unrecognized rdf:parseType value.
	ErrUnknownParseType = errors.New("rdfxml: unknown rdf:parseType value")
	// ErrInvalidStatement indicates an ill-typed statement in decoder output.
	ErrInvalidStatement = errors.New("rdfxml: invalid statement")
	// ErrPredicateNotCompactable indicates a predicate IRI with no valid
	// XML qname form.
	ErrPredicateNotCompactable = errors.New("rdfxml: predicate IRI has no qname form")
)

// Code returns the error code for an error, or ErrCodeStructural if unknown.
// Returns the empty string for nil errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var baseErr *BaseRequiredError
	if errors.As(err, &baseErr) {
		return ErrCodeBaseRequired
	}

	switch {
	case errors.Is(err, ErrNoRootElement):
		return ErrCodeNoRootElement
	case errors.Is(err, ErrMissingNamespace):
		return ErrCodeMissingNamespace
	case errors.Is(err, ErrDepthExceeded):
		return ErrCodeDepthExceeded
	case errors.Is(err, ErrInvalidStatement):
		return ErrCodeInvalidStatement
	}

	var structErr *StructuralError
	if errors.As(err, &structErr) {
		underlying := Code(structErr.Err)
		if underlying != ErrCodeStructural && underlying != "" {
			return underlying
		}
		return ErrCodeStructural
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return ErrCodeResolution
	}

	return ErrCodeStructural
}

// StructuralError reports a malformed or non-conformant document shape.
// Element names the offending element when known.
type StructuralError struct {
	Element string // qualified or local element name (empty if unknown)
	Err     error  // underlying error
}

func (e *StructuralError) Error() string {
	if e.Element == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (element %s)", e.Err.Error(), e.Element)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// BaseRequiredError reports a relative or local reference encountered with
// no base IRI in scope. It carries the unresolved reference and the
// enclosing element name for diagnostics.
type BaseRequiredError struct {
	Reference string // the unresolved reference or rdf:ID value
	Element   string // enclosing element name
}

func (e *BaseRequiredError) Error() string {
	return fmt.Sprintf("rdfxml: no base IRI in scope to resolve %q (element %s)", e.Reference, e.Element)
}

// ResolutionError reports a reference that could not be turned into an
// absolute IRI for a reason other than a missing base.
type ResolutionError struct {
	Reference string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("rdfxml: cannot resolve reference %q: %v", e.Reference, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// structural wraps err with the offending element name.
func structural(element string, err error) error {
	return &StructuralError{Element: element, Err: err}
}

// structuralf builds a StructuralError from a format string.
func structuralf(element, format string, args ...any) error {
	return &StructuralError{Element: element, Err: fmt.Errorf("rdfxml: "+format, args...)}
}
