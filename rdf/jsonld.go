package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"
)

// EncodeJSONLD writes a statement list as a JSON-LD document. The
// conversion goes through json-gold's RDF mapping; OptBaseIRI sets the
// document base and OptPretty/OptIndent control the JSON layout.
func EncodeJSONLD(w io.Writer, statements []Triple, opts ...Option) error {
	options := buildOptions(opts)

	var nt strings.Builder
	if err := EncodeNTriples(&nt, statements); err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions(options.BaseIRI)
	goldOpts.Format = "application/n-quads"
	doc, err := proc.FromRDF(nt.String(), goldOpts)
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}

	enc := json.NewEncoder(w)
	if options.Pretty {
		enc.SetIndent("", options.Indent)
	}
	return enc.Encode(doc)
}

// DecodeJSONLD parses a JSON-LD document into a statement list. Named
// graph content has no place in the triple model and is skipped.
func DecodeJSONLD(r io.Reader, opts ...Option) ([]Triple, error) {
	options := buildOptions(opts)

	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions(options.BaseIRI)
	result, err := proc.ToRDF(doc, goldOpts)
	if err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}

	serializer := &ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}
	nquads, ok := serialized.(string)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}

	var triples []Triple
	for lineNo, line := range strings.Split(nquads, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		triple, graph, err := parseNTLine(line)
		if err != nil {
			return nil, fmt.Errorf("jsonld: line %d: %w", lineNo+1, err)
		}
		if graph {
			continue
		}
		triples = append(triples, triple)
	}
	return triples, nil
}
