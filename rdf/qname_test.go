package rdf

import "testing"

func TestSplitIRIForQName(t *testing.T) {
	ns, local, ok := splitIRIForQName("http://example.org/vocab#name")
	if !ok || ns != "http://example.org/vocab#" || local != "name" {
		t.Fatalf("got %q %q %v", ns, local, ok)
	}

	ns, local, ok = splitIRIForQName("http://example.org/vocab/name")
	if !ok || ns != "http://example.org/vocab/" || local != "name" {
		t.Fatalf("got %q %q %v", ns, local, ok)
	}

	if _, _, ok := splitIRIForQName("http://example.org/vocab/"); ok {
		t.Fatal("trailing separator has no local part")
	}
	if _, _, ok := splitIRIForQName("http://example.org/vocab#1bad"); ok {
		t.Fatal("local part starting with a digit is not a qname")
	}
	if _, _, ok := splitIRIForQName("urn:example:name"); ok {
		t.Fatal("IRI without separator has no qname form")
	}
}

func TestMembershipIndex(t *testing.T) {
	if n, ok := membershipIndex(RDFNamespace + "_1"); !ok || n != 1 {
		t.Fatalf("got %d %v", n, ok)
	}
	if n, ok := membershipIndex(RDFNamespace + "_42"); !ok || n != 42 {
		t.Fatalf("got %d %v", n, ok)
	}
	if _, ok := membershipIndex(RDFNamespace + "_0"); ok {
		t.Fatal("index zero is not a membership predicate")
	}
	if _, ok := membershipIndex(RDFNamespace + "first"); ok {
		t.Fatal("rdf:first is not a membership predicate")
	}
	if _, ok := membershipIndex("http://example.org/_1"); ok {
		t.Fatal("membership predicates live in the RDF namespace")
	}
}

func TestIsValidXMLName(t *testing.T) {
	for _, good := range []string{"a", "node-1", "_x", "A.b"} {
		if !isValidXMLName(good) {
			t.Fatalf("%q should be a valid name", good)
		}
	}
	for _, bad := range []string{"", "1a", "a b", "-x"} {
		if isValidXMLName(bad) {
			t.Fatalf("%q should not be a valid name", bad)
		}
	}
}

func TestValidateIRI(t *testing.T) {
	if err := ValidateIRI("http://example.org/path#frag"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateIRI(""); err == nil {
		t.Fatal("empty IRI should fail")
	}
	if err := ValidateIRI("http://example.org/<bad>"); err == nil {
		t.Fatal("raw angle brackets should fail")
	}
	if err := ValidateIRI("http://example.org/\x01"); err == nil {
		t.Fatal("control character should fail")
	}
}
