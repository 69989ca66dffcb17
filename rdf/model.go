package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI. Equality is by value.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node. Labels are canonicalized per
// decode or encode call through the call-scoped registry, so two nodes
// denote the same graph node only within the document that produced them.
type BlankNode struct {
	// ID is the blank node label.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node label prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" && l.Datatype.Value != xsdString {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// NewLiteral returns a plain string literal with datatype xsd:string.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: IRI{Value: xsdString}}
}

// NewLangLiteral returns a language-tagged literal with datatype
// rdf:langString.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Datatype: IRI{Value: rdfLangString}, Lang: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	if datatype.Value == "" {
		return NewLiteral(lexical)
	}
	return Literal{Lexical: lexical, Datatype: datatype}
}

// Triple is an RDF statement. Subjects are IRIs or blank nodes, predicates
// are IRIs, objects are any term.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String returns an N-Triples-like rendering of the statement.
func (t Triple) String() string {
	return fmt.Sprintf("%s <%s> %s .", renderTermString(t.S), t.P.Value, renderTermString(t.O))
}

func renderTermString(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "<" + v.Value + ">"
	case nil:
		return "<nil>"
	default:
		return v.String()
	}
}
