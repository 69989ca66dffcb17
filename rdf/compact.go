package rdf

import "fmt"

// IRIRole identifies the position an IRI is being compacted for.
type IRIRole uint8

const (
	// RoleSubject compacts an IRI for an rdf:about attribute.
	RoleSubject IRIRole = iota
	// RolePredicate compacts an IRI into a property element qname.
	RolePredicate
	// RoleType compacts an IRI into a typed node element qname.
	RoleType
	// RoleObject compacts an IRI for an rdf:resource attribute.
	RoleObject
	// RoleDatatype compacts an IRI for an rdf:datatype attribute.
	RoleDatatype
)

// CompactKind identifies the form a compaction produced.
type CompactKind uint8

const (
	// CompactPrefixed is a prefix:local qname form.
	CompactPrefixed CompactKind = iota
	// CompactRelative is a base-relative reference.
	CompactRelative
	// CompactFull is the full IRI, unchanged.
	CompactFull
	// CompactSpecial marks an IRI that should not have needed compaction
	// for its role, such as a predicate with no qname form. The encoder
	// treats it as a warning condition.
	CompactSpecial
)

// CompactedIRI is the result of one compaction.
type CompactedIRI struct {
	Kind   CompactKind
	Prefix string // prefix for CompactPrefixed
	Local  string // local part for CompactPrefixed
	Value  string // reference for CompactRelative/CompactFull/CompactSpecial
}

// QName returns the prefix:local rendering of a prefixed compaction.
func (c CompactedIRI) QName() string {
	if c.Prefix == "" {
		return c.Local
	}
	return c.Prefix + ":" + c.Local
}

// Compactor chooses between prefixed, relative, and full identifier forms.
// The encoder makes no prefix decisions of its own.
type Compactor interface {
	Compact(iri string, role IRIRole) CompactedIRI
	// Prefixes returns every prefix binding the compactor has handed out,
	// for declaration on the document element.
	Prefixes() map[string]string
}

// prefixCompactor is the default Compactor: a configured prefix map plus
// automatically allocated nsN prefixes for namespaces that need a qname
// but have none configured.
type prefixCompactor struct {
	base     string
	nsToPref map[string]string
	declared map[string]string
	autoSeq  int
}

func newPrefixCompactor(base string, prefixes map[string]string) *prefixCompactor {
	c := &prefixCompactor{
		base:     base,
		nsToPref: map[string]string{RDFNamespace: "rdf"},
		declared: map[string]string{"rdf": RDFNamespace},
	}
	for prefix, ns := range prefixes {
		if prefix == "rdf" || ns == RDFNamespace {
			continue
		}
		c.nsToPref[ns] = prefix
		c.declared[prefix] = ns
	}
	return c
}

func (c *prefixCompactor) Compact(iri string, role IRIRole) CompactedIRI {
	switch role {
	case RolePredicate, RoleType:
		ns, local, ok := splitIRIForQName(iri)
		if !ok {
			return CompactedIRI{Kind: CompactSpecial, Value: iri}
		}
		prefix, ok := c.nsToPref[ns]
		if !ok {
			prefix = fmt.Sprintf("ns%d", c.autoSeq)
			c.autoSeq++
			c.nsToPref[ns] = prefix
			c.declared[prefix] = ns
		}
		return CompactedIRI{Kind: CompactPrefixed, Prefix: prefix, Local: local}
	case RoleDatatype:
		return CompactedIRI{Kind: CompactFull, Value: iri}
	default:
		if rel := relativizeIRI(c.base, iri); rel != iri {
			return CompactedIRI{Kind: CompactRelative, Value: rel}
		}
		return CompactedIRI{Kind: CompactFull, Value: iri}
	}
}

func (c *prefixCompactor) Prefixes() map[string]string {
	return c.declared
}
