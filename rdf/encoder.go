package rdf

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Encode serializes a statement list as an RDF/XML document. Statement
// order is insignificant except where a collection or container ordering
// is reconstructed.
func Encode(w io.Writer, statements []Triple, opts ...Option) error {
	_, err := EncodeWithWarnings(w, statements, opts...)
	return err
}

// EncodeString is Encode into a string.
func EncodeString(statements []Triple, opts ...Option) (string, error) {
	var b strings.Builder
	if err := Encode(&b, statements, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeWithWarnings is Encode plus the recovered-deviation warnings
// collected during the call.
func EncodeWithWarnings(w io.Writer, statements []Triple, opts ...Option) ([]string, error) {
	e := newEncoder(buildOptions(opts), statements)
	root, err := e.document()
	if err != nil {
		return e.warnings, err
	}
	if err := writeDocument(w, root, e.opts); err != nil {
		return e.warnings, err
	}
	return e.warnings, nil
}

// encoder holds the per-call state of one encode invocation. The subject
// index, chain set, and reification map are derived caches recomputed for
// every call; they never outlive the statement list.
type encoder struct {
	opts       Options
	statements []Triple
	idx        *graphIndex
	compactor  Compactor

	chains     map[string]*chain
	chainNodes map[string]bool

	reifyFrag      map[string]string // statement key -> rdf:ID fragment
	reifyUsed      map[string]bool
	suppressRecord map[string]bool // record subject keys in compact form

	emitted  map[string]bool
	emitting map[string]bool
	warnings []string
}

func newEncoder(opts Options, statements []Triple) *encoder {
	e := &encoder{
		opts:           opts,
		statements:     statements,
		idx:            buildIndex(statements),
		reifyFrag:      map[string]string{},
		reifyUsed:      map[string]bool{},
		suppressRecord: map[string]bool{},
		emitted:        map[string]bool{},
		emitting:       map[string]bool{},
	}
	e.compactor = opts.Compactor
	if e.compactor == nil {
		e.compactor = newPrefixCompactor(opts.BaseIRI, opts.Prefixes)
	}
	e.chains, e.chainNodes = collectChains(e.idx, e.warn)
	e.pruneChains()
	e.detectReifications()
	return e
}

func (e *encoder) warn(msg string) {
	e.warnings = append(e.warnings, msg)
	if e.opts.Warn != nil {
		e.opts.Warn(msg)
	}
}

// pruneChains drops chains that cannot use the compact collection form:
// every link node must be referenced exactly once (the start by the owning
// property, interior nodes by their predecessor) and items must be node
// elements, never literals.
func (e *encoder) pruneChains() {
	for start, ch := range e.chains {
		ok := true
		for _, node := range ch.nodes {
			if e.idx.objRefs[node] != 1 {
				ok = false
				break
			}
		}
		if ok {
			for _, item := range ch.items {
				if _, isLit := item.(Literal); isLit {
					ok = false
					break
				}
			}
		}
		if ok {
			continue
		}
		e.warn("collection chain at " + e.idx.groups[start].subject.String() + " cannot use the compact form; emitting link nodes as ordinary resources")
		delete(e.chains, start)
		for _, node := range ch.nodes {
			delete(e.chainNodes, node)
		}
	}
}

// detectReifications finds complete reification records whose identifier
// fits the base#fragment shape and whose reified statement is present, so
// they can collapse into an rdf:ID attribute on that statement.
func (e *encoder) detectReifications() {
	present := map[string]bool{}
	for _, t := range e.statements {
		present[tripleKey(t)] = true
	}
	for _, key := range e.idx.order {
		group := e.idx.groups[key]
		rec, ok := group.reification()
		if !ok {
			continue
		}
		frag, ok := group.reificationFragment(e.opts.BaseIRI)
		if !ok {
			continue
		}
		stmtKey := tripleKey(rec)
		if !present[stmtKey] {
			continue
		}
		if _, taken := e.reifyFrag[stmtKey]; taken {
			continue
		}
		e.reifyFrag[stmtKey] = frag
		e.suppressRecord[key] = true
	}
}

func tripleKey(t Triple) string {
	return termKey(t.S) + "\x01" + t.P.Value + "\x01" + termKey(t.O)
}

// document builds the complete output tree: named subjects first, then
// anonymous subjects not already nested elsewhere.
func (e *encoder) document() (*outElem, error) {
	var body []*outElem

	appendSubject := func(key string) error {
		if e.emitted[key] || e.chainNodes[key] {
			return nil
		}
		group := e.idx.groups[key]
		if bnode, ok := group.subject.(BlankNode); ok {
			// Single-reference anonymous nodes are inlined at their
			// reference site instead.
			if e.idx.objRefs[termKey(bnode)] == 1 {
				return nil
			}
		}
		el, err := e.subjectElement(key, false)
		if err != nil {
			return err
		}
		if el != nil {
			body = append(body, el)
		}
		return nil
	}

	for _, key := range e.idx.order {
		if _, ok := e.idx.groups[key].subject.(IRI); ok {
			if err := appendSubject(key); err != nil {
				return nil, err
			}
		}
	}
	for _, key := range e.idx.order {
		if _, ok := e.idx.groups[key].subject.(BlankNode); ok {
			if err := appendSubject(key); err != nil {
				return nil, err
			}
		}
	}
	// Anything still unemitted (for example a node whose single reference
	// sat inside a suppressed reification record) gets its own element.
	for _, key := range e.idx.order {
		if !e.emitted[key] && !e.chainNodes[key] {
			el, err := e.subjectElement(key, false)
			if err != nil {
				return nil, err
			}
			if el != nil {
				body = append(body, el)
			}
		}
	}

	root := &outElem{name: "rdf:RDF"}
	for _, prefix := range sortedPrefixes(e.compactor.Prefixes()) {
		ns := e.compactor.Prefixes()[prefix]
		root.setAttr("xmlns:"+prefix, ns)
	}
	if e.opts.IncludeBase && e.opts.BaseIRI != "" {
		root.setAttr("xml:base", e.opts.BaseIRI)
	}
	root.children = body
	return root, nil
}

// sortedPrefixes orders prefix declarations with rdf first.
func sortedPrefixes(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for prefix := range prefixes {
		if prefix != "rdf" {
			keys = append(keys, prefix)
		}
	}
	sort.Strings(keys)
	return append([]string{"rdf"}, keys...)
}

// subjectElement materializes one subject group. inline elements omit the
// rdf:nodeID attribute because they sit at their only reference site.
func (e *encoder) subjectElement(key string, inline bool) (*outElem, error) {
	group := e.idx.groups[key]
	statements := e.remainingStatements(key, group)
	if len(statements) == 0 {
		// A fully suppressed reification record needs no element of its own.
		e.emitted[key] = true
		return nil, nil
	}

	e.emitted[key] = true
	e.emitting[key] = true
	defer delete(e.emitting, key)

	el, skipType := e.openElement(group)
	if !inline {
		if err := e.subjectAttr(el, group.subject); err != nil {
			return nil, err
		}
	}

	if e.idx.classify(key) == classContainer && skipType {
		for _, item := range group.containerItems() {
			if err := e.propertyChild(el, Triple{S: group.subject, P: IRI{Value: RDFNamespace + "li"}, O: item.O}, "rdf:li"); err != nil {
				return nil, err
			}
		}
		return el, nil
	}

	for _, t := range statements {
		if skipType && t.P.Value == rdfType {
			skipType = false // only the one consumed by the element name
			continue
		}
		if err := e.propertyChild(el, t, ""); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// remainingStatements filters out the four component statements of a
// record emitted in compact form.
func (e *encoder) remainingStatements(key string, group *subjectGroup) []Triple {
	if !e.suppressRecord[key] {
		return group.statements
	}
	var out []Triple
	for _, t := range group.statements {
		if isReificationComponent(t.P.Value) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// openElement chooses the element name: a container class element, a typed
// element when configured and possible, or rdf:Description. The boolean
// reports whether the type statement is consumed by the name.
func (e *encoder) openElement(group *subjectGroup) (*outElem, bool) {
	if typ, ok := group.containerType(); ok {
		c := e.compactor.Compact(typ.Value, RoleType)
		if c.Kind == CompactPrefixed {
			return &outElem{name: c.QName()}, true
		}
	}
	if e.opts.TypedElements {
		if typ, ok := group.singleType(); ok {
			c := e.compactor.Compact(typ.Value, RoleType)
			if c.Kind == CompactPrefixed {
				return &outElem{name: c.QName()}, true
			}
			e.warn("type IRI <" + typ.Value + "> has no qname form; using rdf:Description")
		}
	}
	return &outElem{name: "rdf:Description"}, false
}

func (e *encoder) subjectAttr(el *outElem, subject Term) error {
	switch s := subject.(type) {
	case IRI:
		c := e.compactor.Compact(s.Value, RoleSubject)
		el.setAttr("rdf:about", c.Value)
		return nil
	case BlankNode:
		el.setAttr("rdf:nodeID", s.ID)
		return nil
	default:
		return structural("", fmt.Errorf("rdfxml: unsupported subject type %T", subject))
	}
}

// propertyChild emits one statement as a property element under el.
// nameOverride replaces the compacted predicate qname (container li
// members).
func (e *encoder) propertyChild(el *outElem, t Triple, nameOverride string) error {
	name := nameOverride
	if name == "" {
		c := e.compactor.Compact(t.P.Value, RolePredicate)
		if c.Kind != CompactPrefixed {
			if e.opts.Strict {
				return structural("", fmt.Errorf("%w: %q", ErrPredicateNotCompactable, t.P.Value))
			}
			e.warn("predicate <" + t.P.Value + "> has no qname form; statement skipped")
			return nil
		}
		name = c.QName()
	}
	prop := &outElem{name: name}

	if frag, ok := e.reifyFrag[tripleKey(t)]; ok && !e.reifyUsed[tripleKey(t)] {
		e.reifyUsed[tripleKey(t)] = true
		prop.setAttr("rdf:ID", frag)
	}

	switch o := t.O.(type) {
	case IRI:
		c := e.compactor.Compact(o.Value, RoleObject)
		prop.setAttr("rdf:resource", c.Value)

	case Literal:
		if err := e.literalContent(prop, o); err != nil {
			return err
		}

	case BlankNode:
		if err := e.blankObject(prop, o); err != nil {
			return err
		}

	default:
		return structural("", fmt.Errorf("rdfxml: unsupported object type %T", t.O))
	}

	el.add(prop)
	return nil
}

func (e *encoder) literalContent(prop *outElem, lit Literal) error {
	if lit.Datatype.Value == rdfXMLLiteral {
		prop.setAttr("rdf:parseType", "Literal")
		prop.text = lit.Lexical
		prop.raw = true
		return nil
	}
	if lit.Lang != "" {
		prop.setAttr("xml:lang", lit.Lang)
	}
	if lit.Datatype.Value != "" && lit.Datatype.Value != xsdString && lit.Datatype.Value != rdfLangString {
		c := e.compactor.Compact(lit.Datatype.Value, RoleDatatype)
		prop.setAttr("rdf:datatype", c.Value)
	}
	prop.text = lit.Lexical
	return nil
}

// blankObject emits an anonymous object: a compact collection, a nested
// container or node element when this is its only reference, or a nodeID
// reference.
func (e *encoder) blankObject(prop *outElem, bnode BlankNode) error {
	key := termKey(bnode)

	if ch, ok := e.chains[key]; ok {
		prop.setAttr("rdf:parseType", "Collection")
		for _, node := range ch.nodes {
			e.emitted[node] = true
		}
		for _, item := range ch.items {
			itemEl, err := e.collectionItem(item)
			if err != nil {
				return err
			}
			prop.add(itemEl)
		}
		return nil
	}

	_, hasGroup := e.idx.groups[key]
	inlineable := hasGroup &&
		e.idx.objRefs[key] == 1 &&
		!e.emitted[key] &&
		!e.emitting[key] &&
		!e.chainNodes[key]

	if inlineable {
		nested, err := e.subjectElement(key, true)
		if err != nil {
			return err
		}
		if nested != nil {
			prop.add(nested)
		}
		return nil
	}

	prop.setAttr("rdf:nodeID", bnode.ID)
	return nil
}

// collectionItem emits one item of a compact collection. Literal items are
// rejected by pruneChains before this point.
func (e *encoder) collectionItem(item Term) (*outElem, error) {
	switch v := item.(type) {
	case IRI:
		el := &outElem{name: "rdf:Description"}
		c := e.compactor.Compact(v.Value, RoleSubject)
		el.setAttr("rdf:about", c.Value)
		return el, nil
	case BlankNode:
		key := termKey(v)
		if _, ok := e.idx.groups[key]; ok && e.idx.objRefs[key] == 1 && !e.emitted[key] && !e.emitting[key] {
			return e.subjectElement(key, true)
		}
		el := &outElem{name: "rdf:Description"}
		el.setAttr("rdf:nodeID", v.ID)
		return el, nil
	default:
		return nil, structural("", fmt.Errorf("rdfxml: collection item must be a resource, got %T", item))
	}
}
