package rdf

// DefaultMaxDepth is the default nesting depth limit for decoding.
const DefaultMaxDepth = 256

// WarnFunc receives a warning for every recovered deviation. Warnings are
// never silent: when no handler is configured they are still collected and
// returned by the WithWarnings call variants.
type WarnFunc func(message string)

// IRIFunc is an identifier-construction hook. Every IRI the decoder
// produces is passed through it; returning an error aborts the decode.
// The returned string replaces the produced IRI.
type IRIFunc func(iri string) (string, error)

// Option configures codec behavior.
type Option func(*Options)

// Options configures decoder/encoder behavior. The zero value uses
// defaults; construct via Decode/Encode option arguments.
type Options struct {
	// BaseIRI is the document base used to resolve relative references
	// (decode) and to relativize or declare the base (encode).
	BaseIRI string

	// Strict rejects non-conformant constructs instead of recovering with
	// a warning.
	Strict bool

	// NormalizeWhitespace trims and collapses whitespace in literal text.
	NormalizeWhitespace bool

	// ValidateOutput runs a post-pass checking every decoded statement is
	// well-typed.
	ValidateOutput bool

	// StrictIRIValidation validates every produced IRI against RFC 3986/3987
	// syntax.
	StrictIRIValidation bool

	// MaxDepth bounds element nesting during decode. 0 means unlimited.
	MaxDepth int

	// Pretty enables indented output.
	Pretty bool

	// Indent is the indentation unit when Pretty is set (default two spaces).
	Indent string

	// TypedElements prefers typed node elements over rdf:Description plus an
	// explicit rdf:type statement.
	TypedElements bool

	// IncludeBase declares the base IRI on the root element via xml:base.
	IncludeBase bool

	// Prefixes maps namespace prefixes to namespace IRIs for encoding.
	Prefixes map[string]string

	// Compactor overrides the default prefix-map compaction service.
	Compactor Compactor

	// IRIFunc is the identifier-construction hook.
	IRIFunc IRIFunc

	// Warn receives recovered-deviation warnings.
	Warn WarnFunc
}

// OptBaseIRI sets the document base IRI.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptStrict rejects non-conformant constructs instead of recovering.
func OptStrict() Option {
	return func(opts *Options) {
		opts.Strict = true
	}
}

// OptNormalizeWhitespace trims and collapses whitespace in literal text.
func OptNormalizeWhitespace() Option {
	return func(opts *Options) {
		opts.NormalizeWhitespace = true
	}
}

// OptValidateOutput enables the decoded-statement validation post-pass.
func OptValidateOutput() Option {
	return func(opts *Options) {
		opts.ValidateOutput = true
	}
}

// OptStrictIRIValidation validates every produced IRI during decoding.
func OptStrictIRIValidation() Option {
	return func(opts *Options) {
		opts.StrictIRIValidation = true
	}
}

// OptMaxDepth sets the maximum nesting depth. 0 disables the limit.
func OptMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

// OptPretty enables indented output with the default indent.
func OptPretty(pretty bool) Option {
	return func(opts *Options) {
		opts.Pretty = pretty
	}
}

// OptIndent enables indented output with an explicit indent unit.
func OptIndent(indent string) Option {
	return func(opts *Options) {
		opts.Pretty = true
		opts.Indent = indent
	}
}

// OptTypedElements prefers typed node elements over rdf:Description.
func OptTypedElements() Option {
	return func(opts *Options) {
		opts.TypedElements = true
	}
}

// OptIncludeBase declares the base IRI on the root element.
func OptIncludeBase() Option {
	return func(opts *Options) {
		opts.IncludeBase = true
	}
}

// OptPrefixes sets the namespace prefix map used for encoding.
func OptPrefixes(prefixes map[string]string) Option {
	return func(opts *Options) {
		opts.Prefixes = prefixes
	}
}

// OptCompactor overrides the IRI compaction service used for encoding.
func OptCompactor(c Compactor) Option {
	return func(opts *Options) {
		opts.Compactor = c
	}
}

// OptIRIFunc installs an identifier-construction hook.
func OptIRIFunc(fn IRIFunc) Option {
	return func(opts *Options) {
		opts.IRIFunc = fn
	}
}

// OptWarningHandler routes recovered-deviation warnings to fn.
func OptWarningHandler(fn WarnFunc) Option {
	return func(opts *Options) {
		opts.Warn = fn
	}
}

func defaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		Indent:   "  ",
	}
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Indent == "" {
		options.Indent = "  "
	}
	return options
}
