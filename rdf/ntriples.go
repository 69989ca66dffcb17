package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DecodeNTriples parses N-Triples input into a statement list in line
// order. Blank node labels are kept verbatim; they share the document
// scope of one call like RDF/XML node identifiers.
func DecodeNTriples(r io.Reader) ([]Triple, error) {
	var triples []Triple
	scanner := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := scanner.ReadString('\n')
		done := err == io.EOF
		if err != nil && !done {
			return nil, err
		}
		lineNo++
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			triple, graph, perr := parseNTLine(trimmed)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			if graph {
				// A graph label marks a named-graph quad; the triple model
				// has no place for it.
				return nil, fmt.Errorf("line %d: ntriples: graph term not allowed", lineNo)
			}
			triples = append(triples, triple)
		}
		if done {
			return triples, nil
		}
	}
}

// EncodeNTriples writes a statement list as N-Triples, one statement per
// line.
func EncodeNTriples(w io.Writer, statements []Triple) error {
	writer := bufio.NewWriter(w)
	for _, t := range statements {
		if t.S == nil || t.P.Value == "" || t.O == nil {
			return fmt.Errorf("ntriples: missing statement fields in %s", t)
		}
		line := renderNTTerm(t.S) + " " + renderNTIRI(t.P) + " " + renderNTTerm(t.O) + " .\n"
		if _, err := writer.WriteString(line); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// parseNTLine parses one statement line. The graph flag reports a fourth
// term before the terminating dot, which appears when the line came from
// N-Quads output.
func parseNTLine(line string) (Triple, bool, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Triple{}, false, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Triple{}, false, err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Triple{}, false, err
	}
	graph := cursor.parseOptionalTerm() != nil
	cursor.skipWS()
	if !cursor.consume('.') {
		return Triple{}, false, cursor.errorf("expected '.' at end of statement")
	}
	return Triple{S: subject, P: predicate, O: object}, graph, nil
}

type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseSubject() (Term, error) {
	c.skipWS()
	return c.parseTerm(false)
}

func (c *ntCursor) parseObject() (Term, error) {
	c.skipWS()
	return c.parseTerm(true)
}

func (c *ntCursor) parseOptionalTerm() Term {
	c.skipWS()
	if c.pos >= len(c.input) || c.input[c.pos] == '.' {
		return nil
	}
	term, _ := c.parseTerm(false)
	return term
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token")
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	c.skipWS()
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		c.pos++
	}
	if c.pos >= len(c.input) {
		return IRI{}, c.errorf("unterminated IRI")
	}
	value := c.input[start:c.pos]
	c.pos++
	return IRI{Value: value}, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.skipWS()
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	var builder strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '"' {
			c.pos++
			break
		}
		if ch == '\\' {
			if c.pos+1 >= len(c.input) {
				return Literal{}, c.errorf("unterminated escape")
			}
			next := c.input[c.pos+1]
			switch next {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			case 'r':
				builder.WriteByte('\r')
			case '"':
				builder.WriteByte('"')
			case '\\':
				builder.WriteByte('\\')
			default:
				builder.WriteByte(next)
			}
			c.pos += 2
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	lexical := builder.String()
	c.skipWS()
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}
		return NewLangLiteral(lexical, c.input[start:c.pos]), nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return NewTypedLiteral(lexical, dt), nil
	}
	return NewLiteral(lexical), nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("ntriples: "+format, args...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.':
		return true
	default:
		return false
	}
}

func renderNTIRI(iri IRI) string {
	return "<" + iri.Value + ">"
}

func renderNTTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderNTIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		if value.Lang != "" {
			return fmt.Sprintf("%q@%s", value.Lexical, value.Lang)
		}
		if value.Datatype.Value != "" && value.Datatype.Value != xsdString {
			return fmt.Sprintf("%q^^%s", value.Lexical, renderNTIRI(value.Datatype))
		}
		return fmt.Sprintf("%q", value.Lexical)
	default:
		return ""
	}
}
