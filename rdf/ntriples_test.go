package rdf

import (
	"strings"
	"testing"
)

func TestDecodeNTriplesBasic(t *testing.T) {
	input := `# comment
<http://example.org/s> <http://example.org/p> "hello" .

<http://example.org/s> <http://example.org/q> <http://example.org/o> .
_:b0 <http://example.org/p> "bonjour"@fr .
<http://example.org/s> <http://example.org/n> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://example.org/s> <http://example.org/esc> "line\nbreak \"quoted\"" .
`
	triples, err := DecodeNTriples(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(triples) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(triples))
	}
	if triples[0].O.(Literal) != NewLiteral("hello") {
		t.Fatalf("plain literal %v", triples[0].O)
	}
	if triples[1].O.(IRI).Value != "http://example.org/o" {
		t.Fatalf("IRI object %v", triples[1].O)
	}
	if triples[2].S.(BlankNode).ID != "b0" {
		t.Fatalf("blank subject %v", triples[2].S)
	}
	if triples[2].O.(Literal) != NewLangLiteral("bonjour", "fr") {
		t.Fatalf("lang literal %v", triples[2].O)
	}
	if triples[3].O.(Literal).Datatype.Value != XSDNamespace+"integer" {
		t.Fatalf("typed literal %v", triples[3].O)
	}
	if triples[4].O.(Literal).Lexical != "line\nbreak \"quoted\"" {
		t.Fatalf("escapes %q", triples[4].O.(Literal).Lexical)
	}
}

func TestDecodeNTriplesErrors(t *testing.T) {
	cases := map[string]string{
		"missing dot":     `<http://example.org/s> <http://example.org/p> "v"`,
		"literal subject": `"lit" <http://example.org/p> "v" .`,
		"blank predicate": `<http://example.org/s> _:b <http://example.org/o> .`,
		"graph term":      `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .`,
	}
	for name, input := range cases {
		if _, err := DecodeNTriples(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error for %q", name, input)
		}
	}
}

func TestEncodeNTriples(t *testing.T) {
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri(testNS + "p"), O: NewLiteral("v")},
		{S: BlankNode{ID: "b1"}, P: iri(testNS + "p"), O: NewLangLiteral("v", "en")},
		{S: iri("http://example.org/s"), P: iri(testNS + "n"), O: NewTypedLiteral("1", IRI{Value: XSDNamespace + "int"})},
	}
	var b strings.Builder
	if err := EncodeNTriples(&b, statements); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := `<http://example.org/s> <http://example.org/p> "v" .
_:b1 <http://example.org/p> "v"@en .
<http://example.org/s> <http://example.org/n> "1"^^<http://www.w3.org/2001/XMLSchema#int> .
`
	if b.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestNTriplesRoundTrip(t *testing.T) {
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri(testNS + "p"), O: NewLiteral("line\nbreak")},
		{S: iri("http://example.org/s"), P: iri(testNS + "q"), O: BlankNode{ID: "b1"}},
		{S: BlankNode{ID: "b1"}, P: iri(testNS + "r"), O: NewLangLiteral("v", "en")},
	}
	var b strings.Builder
	if err := EncodeNTriples(&b, statements); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeNTriples(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded) != len(statements) {
		t.Fatalf("expected %d statements, got %d", len(statements), len(decoded))
	}
	for i := range statements {
		if tripleKey(decoded[i]) != tripleKey(statements[i]) {
			t.Fatalf("statement %d differs: %v vs %v", i, decoded[i], statements[i])
		}
	}
}

func TestDecodeNTriplesNoTrailingNewline(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "v" .`
	triples, err := DecodeNTriples(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(triples) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(triples))
	}
}
