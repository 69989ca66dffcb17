package rdf

import (
	"strings"
	"testing"
)

func iri(v string) IRI { return IRI{Value: v} }

func TestClassifyListLink(t *testing.T) {
	link := BlankNode{ID: "l1"}
	statements := []Triple{
		{S: link, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: link, P: iri(rdfRest), O: iri(rdfNil)},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(link)) != classListLink {
		t.Fatal("expected list link classification")
	}
}

func TestClassifyListLinkRejectsExtras(t *testing.T) {
	link := BlankNode{ID: "l1"}
	statements := []Triple{
		{S: link, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: link, P: iri(rdfRest), O: iri(rdfNil)},
		{S: link, P: iri("http://example.org/extra"), O: NewLiteral("x")},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(link)) == classListLink {
		t.Fatal("extra statement should break the link shape")
	}
}

func TestClassifyListLinkRequiresBlankSubject(t *testing.T) {
	subj := iri("http://example.org/s")
	statements := []Triple{
		{S: subj, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: subj, P: iri(rdfRest), O: iri(rdfNil)},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(subj)) == classListLink {
		t.Fatal("named subject should not match the link shape")
	}
}

func TestClassifyContainer(t *testing.T) {
	bag := BlankNode{ID: "c1"}
	statements := []Triple{
		{S: bag, P: iri(rdfType), O: iri(rdfBag)},
		{S: bag, P: iri(RDFNamespace + "_2"), O: NewLiteral("two")},
		{S: bag, P: iri(RDFNamespace + "_1"), O: NewLiteral("one")},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(bag)) != classContainer {
		t.Fatal("expected container classification")
	}
	items := idx.groups[termKey(bag)].containerItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].O.(Literal).Lexical != "one" || items[1].O.(Literal).Lexical != "two" {
		t.Fatalf("items not ordered by index: %v", items)
	}
}

func TestClassifyContainerRejectsForeignPredicate(t *testing.T) {
	bag := BlankNode{ID: "c1"}
	statements := []Triple{
		{S: bag, P: iri(rdfType), O: iri(rdfSeq)},
		{S: bag, P: iri(RDFNamespace + "_1"), O: NewLiteral("one")},
		{S: bag, P: iri("http://example.org/p"), O: NewLiteral("x")},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(bag)) == classContainer {
		t.Fatal("foreign predicate should break the container shape")
	}
}

func TestClassifyContainerRequiresDenseIndices(t *testing.T) {
	gapped := BlankNode{ID: "c1"}
	statements := []Triple{
		{S: gapped, P: iri(rdfType), O: iri(rdfBag)},
		{S: gapped, P: iri(RDFNamespace + "_2"), O: NewLiteral("two")},
	}
	idx := buildIndex(statements)
	if idx.classify(termKey(gapped)) == classContainer {
		t.Fatal("an index gap should break the container shape")
	}

	duplicated := BlankNode{ID: "c2"}
	statements = []Triple{
		{S: duplicated, P: iri(rdfType), O: iri(rdfSeq)},
		{S: duplicated, P: iri(RDFNamespace + "_1"), O: NewLiteral("one")},
		{S: duplicated, P: iri(RDFNamespace + "_1"), O: NewLiteral("other")},
	}
	idx = buildIndex(statements)
	if idx.classify(termKey(duplicated)) == classContainer {
		t.Fatal("a duplicated index should break the container shape")
	}
}

func TestClassifyReification(t *testing.T) {
	rec := iri("http://example.org/doc#r1")
	statements := []Triple{
		{S: rec, P: iri(rdfType), O: iri(rdfStatement)},
		{S: rec, P: iri(rdfSubject), O: iri("http://example.org/s")},
		{S: rec, P: iri(rdfPredicate), O: iri("http://example.org/p")},
		{S: rec, P: iri(rdfObject), O: NewLiteral("v")},
		{S: rec, P: iri("http://example.org/asserted"), O: NewLiteral("yes")},
	}
	idx := buildIndex(statements)
	key := termKey(rec)
	if idx.classify(key) != classReification {
		t.Fatal("expected reification classification")
	}

	stmt, ok := idx.groups[key].reification()
	if !ok {
		t.Fatal("expected reified statement")
	}
	if stmt.S.(IRI).Value != "http://example.org/s" || stmt.P.Value != "http://example.org/p" {
		t.Fatalf("reified statement %v", stmt)
	}

	frag, ok := idx.groups[key].reificationFragment("http://example.org/doc")
	if !ok || frag != "r1" {
		t.Fatalf("fragment %q %v", frag, ok)
	}
	if _, ok := idx.groups[key].reificationFragment("http://other.example/doc"); ok {
		t.Fatal("foreign base should not produce a fragment")
	}
}

func TestReificationRejectsDuplicateComponents(t *testing.T) {
	rec := iri("http://example.org/doc#r1")
	statements := []Triple{
		{S: rec, P: iri(rdfType), O: iri(rdfStatement)},
		{S: rec, P: iri(rdfSubject), O: iri("http://example.org/s")},
		{S: rec, P: iri(rdfSubject), O: iri("http://example.org/s2")},
		{S: rec, P: iri(rdfPredicate), O: iri("http://example.org/p")},
		{S: rec, P: iri(rdfObject), O: NewLiteral("v")},
	}
	idx := buildIndex(statements)
	if _, ok := idx.groups[termKey(rec)].reification(); ok {
		t.Fatal("duplicate rdf:subject should break the shape")
	}
}

func TestCollectChainsOrder(t *testing.T) {
	l1, l2, l3 := BlankNode{ID: "l1"}, BlankNode{ID: "l2"}, BlankNode{ID: "l3"}
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri("http://example.org/items"), O: l1},
		{S: l1, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: l1, P: iri(rdfRest), O: l2},
		{S: l2, P: iri(rdfFirst), O: iri("http://example.org/b")},
		{S: l2, P: iri(rdfRest), O: l3},
		{S: l3, P: iri(rdfFirst), O: iri("http://example.org/c")},
		{S: l3, P: iri(rdfRest), O: iri(rdfNil)},
	}
	idx := buildIndex(statements)
	chains, consumed := collectChains(idx, func(string) {})
	ch, ok := chains[termKey(l1)]
	if !ok {
		t.Fatal("chain not detected")
	}
	want := []string{"http://example.org/a", "http://example.org/b", "http://example.org/c"}
	if len(ch.items) != len(want) {
		t.Fatalf("chain has %d items", len(ch.items))
	}
	for i, item := range ch.items {
		if item.(IRI).Value != want[i] {
			t.Fatalf("item %d = %v, want %s", i, item, want[i])
		}
	}
	for _, link := range []BlankNode{l1, l2, l3} {
		if !consumed[termKey(link)] {
			t.Fatalf("link %v not consumed", link)
		}
	}
}

func TestCollectChainsCycle(t *testing.T) {
	l1, l2 := BlankNode{ID: "l1"}, BlankNode{ID: "l2"}
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri("http://example.org/items"), O: l1},
		{S: l1, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: l1, P: iri(rdfRest), O: l2},
		{S: l2, P: iri(rdfFirst), O: iri("http://example.org/b")},
		{S: l2, P: iri(rdfRest), O: l1},
	}
	idx := buildIndex(statements)
	var warnings []string
	chains, _ := collectChains(idx, func(msg string) { warnings = append(warnings, msg) })
	if len(chains) != 0 {
		t.Fatalf("cyclic chain should not be collected: %v", chains)
	}
	found := false
	for _, msg := range warnings {
		if strings.Contains(msg, "cyclic") || strings.Contains(msg, "not part of a valid chain") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cycle warning, got %v", warnings)
	}
}

func TestCollectChainsNonNilEnd(t *testing.T) {
	l1 := BlankNode{ID: "l1"}
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri("http://example.org/items"), O: l1},
		{S: l1, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: l1, P: iri(rdfRest), O: iri("http://example.org/notnil")},
	}
	idx := buildIndex(statements)
	var warnings []string
	chains, _ := collectChains(idx, func(msg string) { warnings = append(warnings, msg) })
	if len(chains) != 0 {
		t.Fatal("chain ending off rdf:nil should not be collected")
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning")
	}
}

func TestCollectChainsDanglingTail(t *testing.T) {
	l1, l2 := BlankNode{ID: "l1"}, BlankNode{ID: "l2"}
	statements := []Triple{
		{S: iri("http://example.org/s"), P: iri("http://example.org/items"), O: l1},
		{S: l1, P: iri(rdfFirst), O: iri("http://example.org/a")},
		{S: l1, P: iri(rdfRest), O: l2},
	}
	idx := buildIndex(statements)
	var warnings []string
	chains, _ := collectChains(idx, func(msg string) { warnings = append(warnings, msg) })
	if len(chains) != 0 {
		t.Fatal("dangling chain should not be collected")
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning")
	}
}
