package rdf

// Namespaces used by the codec.
const (
	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	// XSDNamespace is the XML Schema datatypes namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	// XMLNamespace is the namespace of xml:base and xml:lang.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// Well-known RDF IRIs.
const (
	rdfType       = RDFNamespace + "type"
	rdfFirst      = RDFNamespace + "first"
	rdfRest       = RDFNamespace + "rest"
	rdfNil        = RDFNamespace + "nil"
	rdfStatement  = RDFNamespace + "Statement"
	rdfSubject    = RDFNamespace + "subject"
	rdfPredicate  = RDFNamespace + "predicate"
	rdfObject     = RDFNamespace + "object"
	rdfBag        = RDFNamespace + "Bag"
	rdfSeq        = RDFNamespace + "Seq"
	rdfAlt        = RDFNamespace + "Alt"
	rdfLangString = RDFNamespace + "langString"
	rdfXMLLiteral = RDFNamespace + "XMLLiteral"

	xsdString = XSDNamespace + "string"
)

// isContainerType reports whether iri names one of the three container
// classes.
func isContainerType(iri string) bool {
	return iri == rdfBag || iri == rdfSeq || iri == rdfAlt
}

// Syntax terms of the RDF namespace. These never denote node or property
// element names; most double as syntax attributes (rdf:about, rdf:ID, ...).
var rdfSyntaxTerms = map[string]bool{
	"RDF":             true,
	"ID":              true,
	"about":           true,
	"parseType":       true,
	"resource":        true,
	"nodeID":          true,
	"datatype":        true,
	"aboutEach":       true,
	"aboutEachPrefix": true,
	"bagID":           true,
}

// isForbiddenNodeElement reports whether local is an RDF-namespace name
// that must not appear as a node element.
func isForbiddenNodeElement(local string) bool {
	return rdfSyntaxTerms[local] || local == "li"
}

// isForbiddenPropertyElement reports whether local is an RDF-namespace
// name that must not appear as a property element. rdf:li is allowed; it
// is rewritten to a membership predicate.
func isForbiddenPropertyElement(local string) bool {
	return rdfSyntaxTerms[local] || local == "Description"
}

// isSyntaxAttr reports whether an RDF-namespace attribute is part of the
// RDF/XML syntax rather than an abbreviated property.
func isSyntaxAttr(local string) bool {
	return rdfSyntaxTerms[local] && local != "RDF"
}
