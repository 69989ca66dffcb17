package rdf

// scope carries the in-scope base IRI and language tag while descending
// through nested elements. Both are inherited unless overridden locally by
// xml:base or xml:lang. scope is a value type threaded through the
// recursive calls; no ambient state.
type scope struct {
	base string
	lang string
}

// push derives the scope for el from the enclosing scope. An unresolvable
// or empty xml:base leaves the inherited base in place.
func (s scope) push(el *element) scope {
	child := s
	if base, ok := el.attr(XMLNamespace, "base"); ok && base != "" {
		if isAbsoluteIRI(base) {
			child.base = stripFragment(base)
		} else if s.base != "" {
			child.base = stripFragment(resolveIRI(s.base, base))
		}
	}
	if lang, ok := el.attr(XMLNamespace, "lang"); ok {
		child.lang = lang
	}
	return child
}

// stripFragment drops a fragment from a base IRI; fragments never
// participate in base resolution.
func stripFragment(iri string) string {
	for i := 0; i < len(iri); i++ {
		if iri[i] == '#' {
			return iri[:i]
		}
	}
	return iri
}
