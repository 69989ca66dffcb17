package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
func resolveIRI(baseStr, relative string) string {
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return joinLoose(baseStr, relative)
	}

	relURL, err := url.Parse(relative)
	if err != nil {
		return joinLoose(baseStr, relative)
	}

	// An absolute reference resolves to itself.
	if relURL.Scheme != "" {
		return relative
	}

	return baseURL.ResolveReference(relURL).String()
}

// joinLoose is the fallback concatenation when base or reference does not
// parse as a URL.
func joinLoose(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	lastSlash := strings.LastIndex(baseStr, "/")
	if lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}

// isAbsoluteIRI reports whether ref carries a scheme.
func isAbsoluteIRI(ref string) bool {
	colon := strings.Index(ref, ":")
	if colon <= 0 {
		return false
	}
	scheme := ref[:colon]
	for i := 0; i < len(scheme); i++ {
		ch := scheme[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.'):
		default:
			return false
		}
	}
	return true
}

// resolveReference turns ref into an absolute IRI against base. A relative
// ref with no base in scope fails with BaseRequiredError naming the
// enclosing element.
func resolveReference(base, ref, element string) (string, error) {
	if isAbsoluteIRI(ref) {
		return ref, nil
	}
	if base == "" {
		return "", &BaseRequiredError{Reference: ref, Element: element}
	}
	return resolveIRI(base, ref), nil
}

// relativizeIRI returns a reference for iri relative to base, or iri
// unchanged when no useful relative form exists. Only the fragment and
// trailing-segment shapes are produced; anything else stays absolute.
func relativizeIRI(base, iri string) string {
	if base == "" {
		return iri
	}
	if iri == base {
		return ""
	}
	if strings.HasPrefix(iri, base+"#") {
		return iri[len(base):]
	}
	slash := strings.LastIndex(base, "/")
	if authority := strings.Index(base, "://"); authority >= 0 && slash > authority+2 {
		dir := base[:slash+1]
		if strings.HasPrefix(iri, dir) {
			rest := iri[len(dir):]
			if rest != "" && !strings.ContainsAny(rest, "/?#") {
				return rest
			}
		}
	}
	return iri
}
