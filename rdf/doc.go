// Package rdf implements a bidirectional codec between RDF/XML documents
// and an in-memory triple graph.
//
// The model is triple-only: a Term is an IRI, a BlankNode, or a Literal,
// and a Triple is one (subject, predicate, object) statement. Decode turns
// an RDF/XML document into a statement list in document order; Encode
// groups a statement list by subject, reconstructs collections, containers
// and reification records, and writes an RDF/XML document.
//
// Example (decoding):
//
//	triples, err := rdf.Decode(strings.NewReader(input), rdf.OptBaseIRI("http://example.org/doc"))
//	if err != nil {
//	    // handle error
//	}
//	for _, t := range triples {
//	    // process t.S, t.P, t.O
//	}
//
// Example (encoding):
//
//	var buf bytes.Buffer
//	err := rdf.Encode(&buf, triples, rdf.OptPretty(true), rdf.OptPrefixes(map[string]string{
//	    "ex": "http://example.org/",
//	}))
//
// Both directions are pure call-and-return operations: all intermediate
// state (the blank node registry, recursion depth, per-subject caches) is
// scoped to a single call, so independent goroutines may decode and encode
// concurrently without synchronization.
//
// N-Triples (DecodeNTriples/EncodeNTriples) and JSON-LD
// (DecodeJSONLD/EncodeJSONLD) are provided as interchange surfaces over the
// same model.
package rdf
