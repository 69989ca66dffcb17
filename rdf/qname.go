package rdf

import (
	"strconv"
	"strings"
)

// isQNameLocal reports whether value is usable as the local part of an XML
// qname (ASCII NCName subset).
func isQNameLocal(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if i == 0 {
			if !isNameStartChar(ch) {
				return false
			}
		} else if !isNameChar(ch) {
			return false
		}
	}
	return true
}

func isNameStartChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == '.'
}

// isValidXMLName reports whether value is usable as an rdf:ID or
// rdf:nodeID token.
func isValidXMLName(value string) bool {
	return isQNameLocal(value)
}

// splitIRIForQName splits an IRI into a namespace and a qname-safe local
// part at the last '#' or '/'.
func splitIRIForQName(iri string) (string, string, bool) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx <= 0 || idx+1 >= len(iri) {
		return "", "", false
	}
	ns := iri[:idx+1]
	local := iri[idx+1:]
	if !isQNameLocal(local) {
		return "", "", false
	}
	return ns, local, true
}

// parseContainerIndex parses a membership predicate local name of the form
// "_1", "_2", ... and returns its index.
func parseContainerIndex(local string) (int, bool) {
	if len(local) < 2 || local[0] != '_' {
		return 0, false
	}
	n, err := strconv.Atoi(local[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// membershipIndex returns the container index for a membership predicate
// IRI, or false when the IRI is not of the rdf:_n form.
func membershipIndex(iri string) (int, bool) {
	if !strings.HasPrefix(iri, RDFNamespace) {
		return 0, false
	}
	return parseContainerIndex(iri[len(RDFNamespace):])
}
