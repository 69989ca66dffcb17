package rdf

import (
	"sort"
	"strings"
)

// nodeClass is the structural classification of a subject.
type nodeClass uint8

const (
	classPlain nodeClass = iota
	classListLink
	classContainer
	classReification
)

// termKey returns a map key with value semantics for a term. Distinct
// term kinds never collide.
func termKey(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "i\x00" + v.Value
	case BlankNode:
		return "b\x00" + v.ID
	case Literal:
		return "l\x00" + v.Lang + "\x00" + v.Datatype.Value + "\x00" + v.Lexical
	default:
		return ""
	}
}

// subjectGroup is all statements sharing one subject plus memoized derived
// facts. Groups are rebuilt per encode call; they never outlive the
// statement list they were derived from.
type subjectGroup struct {
	subject    Term
	statements []Triple

	types      []IRI
	predCounts map[string]int
}

func newSubjectGroup(subject Term) *subjectGroup {
	return &subjectGroup{subject: subject, predCounts: map[string]int{}}
}

func (g *subjectGroup) add(t Triple) {
	g.statements = append(g.statements, t)
	g.predCounts[t.P.Value]++
	if t.P.Value == rdfType {
		if typ, ok := t.O.(IRI); ok {
			g.types = append(g.types, typ)
		}
	}
}

// singleType returns the declared type when exactly one type statement
// exists.
func (g *subjectGroup) singleType() (IRI, bool) {
	if len(g.types) == 1 && g.predCounts[rdfType] == 1 {
		return g.types[0], true
	}
	return IRI{}, false
}

// objectOf returns the object of the single statement with predicate pred.
func (g *subjectGroup) objectOf(pred string) (Term, bool) {
	if g.predCounts[pred] != 1 {
		return nil, false
	}
	for _, t := range g.statements {
		if t.P.Value == pred {
			return t.O, true
		}
	}
	return nil, false
}

// isListLink reports whether the group matches the two-statement
// collection-link shape: an anonymous subject carrying exactly one
// rdf:first and exactly one rdf:rest and nothing else.
func (g *subjectGroup) isListLink() bool {
	if _, ok := g.subject.(BlankNode); !ok {
		return false
	}
	return len(g.statements) == 2 &&
		g.predCounts[rdfFirst] == 1 &&
		g.predCounts[rdfRest] == 1
}

// containerType returns the container class when the group matches the
// container shape: an anonymous subject with exactly one Bag/Seq/Alt type
// and only numbered membership predicates besides it. The indices must be
// exactly 1..n with no gaps or duplicates, since the rdf:li form assigns
// membership predicates in document order.
func (g *subjectGroup) containerType() (IRI, bool) {
	if _, ok := g.subject.(BlankNode); !ok {
		return IRI{}, false
	}
	typ, ok := g.singleType()
	if !ok || !isContainerType(typ.Value) {
		return IRI{}, false
	}
	var indices []int
	for _, t := range g.statements {
		if t.P.Value == rdfType {
			continue
		}
		n, ok := membershipIndex(t.P.Value)
		if !ok {
			return IRI{}, false
		}
		indices = append(indices, n)
	}
	sort.Ints(indices)
	for i, n := range indices {
		if n != i+1 {
			return IRI{}, false
		}
	}
	return typ, true
}

// containerItems returns the membership statements ordered by index.
func (g *subjectGroup) containerItems() []Triple {
	var items []Triple
	for _, t := range g.statements {
		if _, ok := membershipIndex(t.P.Value); ok {
			items = append(items, t)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ni, _ := membershipIndex(items[i].P.Value)
		nj, _ := membershipIndex(items[j].P.Value)
		return ni < nj
	})
	return items
}

// reification returns the reified statement when the group matches the
// complete reification shape: an identifier subject with an rdf:Statement
// type and exactly one each of rdf:subject, rdf:predicate, rdf:object.
// Additional statements about the record are allowed; only the four
// component statements participate in the shape.
func (g *subjectGroup) reification() (Triple, bool) {
	if _, ok := g.subject.(IRI); !ok {
		return Triple{}, false
	}
	hasStatementType := false
	for _, typ := range g.types {
		if typ.Value == rdfStatement {
			hasStatementType = true
			break
		}
	}
	if !hasStatementType || g.predCounts[rdfType] != 1 {
		return Triple{}, false
	}
	s, okS := g.objectOf(rdfSubject)
	p, okP := g.objectOf(rdfPredicate)
	o, okO := g.objectOf(rdfObject)
	if !okS || !okP || !okO {
		return Triple{}, false
	}
	pred, ok := p.(IRI)
	if !ok {
		return Triple{}, false
	}
	switch s.(type) {
	case IRI, BlankNode:
	default:
		return Triple{}, false
	}
	return Triple{S: s, P: pred, O: o}, true
}

// reificationFragment returns the fragment of the record identifier when
// it matches base#fragment with a name-shaped fragment. Only then can the
// record round-trip through the compact rdf:ID form.
func (g *subjectGroup) reificationFragment(base string) (string, bool) {
	id, ok := g.subject.(IRI)
	if !ok || base == "" {
		return "", false
	}
	if !strings.HasPrefix(id.Value, base+"#") {
		return "", false
	}
	frag := id.Value[len(base)+1:]
	if !isValidXMLName(frag) {
		return "", false
	}
	return frag, true
}

// isReificationComponent reports whether pred is one of the four
// statements suppressed when a record is emitted in compact form.
func isReificationComponent(pred string) bool {
	return pred == rdfType || pred == rdfSubject || pred == rdfPredicate || pred == rdfObject
}

// graphIndex groups a statement list by subject and memoizes the
// cross-subject facts the encoder needs. All state is scoped to one
// encode call.
type graphIndex struct {
	groups map[string]*subjectGroup
	order  []string // subject keys in first-appearance order

	objRefs     map[string]int  // statements referencing each blank node as object
	restTargets map[string]bool // blank nodes that are the rest-target of a link node
}

func buildIndex(statements []Triple) *graphIndex {
	idx := &graphIndex{
		groups:      map[string]*subjectGroup{},
		objRefs:     map[string]int{},
		restTargets: map[string]bool{},
	}
	for _, t := range statements {
		key := termKey(t.S)
		group, ok := idx.groups[key]
		if !ok {
			group = newSubjectGroup(t.S)
			idx.groups[key] = group
			idx.order = append(idx.order, key)
		}
		group.add(t)
		if bnode, ok := t.O.(BlankNode); ok {
			idx.objRefs[termKey(bnode)]++
		}
	}
	for _, group := range idx.groups {
		if !group.isListLink() {
			continue
		}
		if rest, ok := group.objectOf(rdfRest); ok {
			if bnode, ok := rest.(BlankNode); ok {
				idx.restTargets[termKey(bnode)] = true
			}
		}
	}
	return idx
}

// classify returns the structural classification of a subject group.
func (idx *graphIndex) classify(key string) nodeClass {
	group, ok := idx.groups[key]
	if !ok {
		return classPlain
	}
	if group.isListLink() {
		return classListLink
	}
	if _, ok := group.containerType(); ok {
		return classContainer
	}
	if _, ok := group.reification(); ok {
		return classReification
	}
	return classPlain
}

// chain is one decoded collection: the ordered first-values and the link
// nodes that carry them.
type chain struct {
	items []Term
	nodes []string // link node keys in order
}

// collectChains finds every maximal valid collection chain. A chain starts
// at a link node that is never the rest-target of another link node and
// must terminate at rdf:nil; a cycle or a dangling tail invalidates the
// whole chain and its nodes stay ordinary resources.
func collectChains(idx *graphIndex, warn func(string)) (map[string]*chain, map[string]bool) {
	chains := map[string]*chain{}
	consumed := map[string]bool{}

	for _, key := range idx.order {
		group := idx.groups[key]
		if !group.isListLink() || idx.restTargets[key] {
			continue
		}
		ch, ok := followChain(idx, key, warn)
		if !ok {
			continue
		}
		chains[key] = ch
		for _, node := range ch.nodes {
			consumed[node] = true
		}
	}

	// Link nodes not consumed by any valid chain are either members of an
	// invalid chain reported above or part of a closed rest-cycle with no
	// start node.
	for _, key := range idx.order {
		group := idx.groups[key]
		if group.isListLink() && !consumed[key] && idx.restTargets[key] {
			warn("collection link node " + group.subject.String() + " is not part of a valid chain; treating as ordinary resource")
		}
	}

	return chains, consumed
}

func followChain(idx *graphIndex, start string, warn func(string)) (*chain, bool) {
	ch := &chain{}
	visited := map[string]bool{}
	key := start

	for {
		if visited[key] {
			warn("cyclic collection chain starting at " + idx.groups[start].subject.String() + "; treating nodes as ordinary resources")
			return nil, false
		}
		visited[key] = true
		group := idx.groups[key]
		ch.nodes = append(ch.nodes, key)

		first, _ := group.objectOf(rdfFirst)
		ch.items = append(ch.items, first)

		rest, _ := group.objectOf(rdfRest)
		switch next := rest.(type) {
		case IRI:
			if next.Value == rdfNil {
				return ch, true
			}
			warn("collection chain ends at non-nil resource <" + next.Value + ">; treating nodes as ordinary resources")
			return nil, false
		case BlankNode:
			nextKey := termKey(next)
			nextGroup, ok := idx.groups[nextKey]
			if !ok || !nextGroup.isListLink() {
				warn("collection chain has dangling tail at " + next.String() + "; treating nodes as ordinary resources")
				return nil, false
			}
			key = nextKey
		default:
			warn("collection chain has non-resource rest value; treating nodes as ordinary resources")
			return nil, false
		}
	}
}
