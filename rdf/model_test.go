package rdf

import "testing"

func TestTermKinds(t *testing.T) {
	if (IRI{Value: "http://example.org/"}).Kind() != TermIRI {
		t.Fatalf("expected TermIRI")
	}
	if (BlankNode{ID: "b1"}).Kind() != TermBlankNode {
		t.Fatalf("expected TermBlankNode")
	}
	if NewLiteral("v").Kind() != TermLiteral {
		t.Fatalf("expected TermLiteral")
	}
}

func TestLiteralConstructors(t *testing.T) {
	plain := NewLiteral("hello")
	if plain.Datatype.Value != xsdString || plain.Lang != "" {
		t.Fatalf("plain literal got %+v", plain)
	}

	tagged := NewLangLiteral("bonjour", "fr")
	if tagged.Datatype.Value != rdfLangString || tagged.Lang != "fr" {
		t.Fatalf("lang literal got %+v", tagged)
	}

	typed := NewTypedLiteral("42", IRI{Value: XSDNamespace + "integer"})
	if typed.Datatype.Value != XSDNamespace+"integer" {
		t.Fatalf("typed literal got %+v", typed)
	}

	// Empty datatype falls back to xsd:string.
	fallback := NewTypedLiteral("v", IRI{})
	if fallback.Datatype.Value != xsdString {
		t.Fatalf("expected xsd:string fallback, got %+v", fallback)
	}
}

func TestTermString(t *testing.T) {
	if got := (BlankNode{ID: "x"}).String(); got != "_:x" {
		t.Fatalf("blank node string %q", got)
	}
	if got := NewLangLiteral("v", "en").String(); got != `"v"@en` {
		t.Fatalf("lang literal string %q", got)
	}
	if got := NewLiteral("v").String(); got != `"v"` {
		t.Fatalf("plain literal string %q", got)
	}
	typed := NewTypedLiteral("1", IRI{Value: XSDNamespace + "int"})
	if got := typed.String(); got != `"1"^^<`+XSDNamespace+`int>` {
		t.Fatalf("typed literal string %q", got)
	}
}

func TestTripleString(t *testing.T) {
	tr := Triple{
		S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"},
		O: NewLiteral("v"),
	}
	want := `<http://example.org/s> <http://example.org/p> "v" .`
	if got := tr.String(); got != want {
		t.Fatalf("triple string %q, want %q", got, want)
	}
}

func TestNodeTableIdentity(t *testing.T) {
	nodes := newNodeTable()
	a := nodes.node("alpha")
	b := nodes.node("alpha")
	if a != b {
		t.Fatalf("same label produced distinct nodes: %v vs %v", a, b)
	}
	if c := nodes.node("beta"); c == a {
		t.Fatalf("distinct labels produced the same node")
	}
}

func TestNodeTableFreshAvoidsDocumentLabels(t *testing.T) {
	nodes := newNodeTable()
	doc := nodes.node("b1")
	fresh := nodes.fresh()
	if fresh == doc {
		t.Fatalf("fresh node collided with document label")
	}
	if fresh.ID == "b1" {
		t.Fatalf("fresh node reused document label")
	}
}

func TestNodeTableLateDocumentLabel(t *testing.T) {
	nodes := newNodeTable()
	fresh := nodes.fresh() // takes b1
	doc := nodes.node("b1")
	if fresh == doc {
		t.Fatalf("document label merged with earlier generated node")
	}
	if again := nodes.node("b1"); again != doc {
		t.Fatalf("document label lost its identity after remapping")
	}
}
