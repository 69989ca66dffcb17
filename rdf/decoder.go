package rdf

import (
	"fmt"
	"io"
	"strings"
)

// Decode parses an RDF/XML document into a statement list in document
// order. It either fully succeeds or returns nothing: no partial results.
func Decode(r io.Reader, opts ...Option) ([]Triple, error) {
	triples, _, err := DecodeWithWarnings(r, opts...)
	return triples, err
}

// DecodeWithWarnings is Decode plus the recovered-deviation warnings
// collected during the call. The warning list is returned even when the
// decode fails.
func DecodeWithWarnings(r io.Reader, opts ...Option) ([]Triple, []string, error) {
	d := &decoder{
		opts:     buildOptions(opts),
		nodes:    newNodeTable(),
		langSeen: map[string]bool{},
	}
	triples, err := d.decode(r)
	if err != nil {
		return nil, d.warnings, err
	}
	return triples, d.warnings, nil
}

// decoder holds the per-call state of one decode invocation: the blank
// node registry, the recursion depth counter, and the collected warnings.
// Nothing leaks across calls.
type decoder struct {
	opts     Options
	triples  []Triple
	nodes    *nodeTable
	depth    int
	warnings []string
	langSeen map[string]bool
}

func (d *decoder) decode(r io.Reader) ([]Triple, error) {
	tree, err := parseTree(r, d.opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	root := findRoot(tree)
	if root == nil {
		return nil, ErrNoRootElement
	}

	sc := scope{base: stripFragment(d.opts.BaseIRI)}

	if root.space == RDFNamespace && root.local == "RDF" {
		sc = sc.push(root)
		for _, child := range root.children() {
			if _, err := d.nodeElement(child, sc); err != nil {
				return nil, err
			}
		}
	} else {
		// A document without an rdf:RDF wrapper consists of a single node
		// element carrying the RDF namespace declaration.
		if _, err := d.nodeElement(root, sc); err != nil {
			return nil, err
		}
	}

	if d.opts.ValidateOutput {
		if err := d.validateStatements(); err != nil {
			return nil, err
		}
	}
	return d.triples, nil
}

// findRoot locates the graph element: the rdf:RDF element by qualified
// name anywhere in the tree, or failing that the first element declaring
// the RDF namespace.
func findRoot(tree *element) *element {
	if el := findNamed(tree); el != nil {
		return el
	}
	return findDeclaring(tree)
}

func findNamed(el *element) *element {
	if el.space == RDFNamespace && el.local == "RDF" {
		return el
	}
	for _, child := range el.children() {
		if found := findNamed(child); found != nil {
			return found
		}
	}
	return nil
}

func findDeclaring(el *element) *element {
	if el.declaresNamespace(RDFNamespace) {
		return el
	}
	for _, child := range el.children() {
		if found := findDeclaring(child); found != nil {
			return found
		}
	}
	return nil
}

func (d *decoder) warn(msg string) {
	d.warnings = append(d.warnings, msg)
	if d.opts.Warn != nil {
		d.opts.Warn(msg)
	}
}

// deviation applies the strict/lenient decision to a tolerable deviation:
// strict mode raises it as a structural error, lenient mode records a
// warning describing the fallback and continues.
func (d *decoder) deviation(element string, err error, fallback string) error {
	if d.opts.Strict {
		return structural(element, err)
	}
	d.warn(err.Error() + "; " + fallback)
	return nil
}

func (d *decoder) enter(element string) error {
	d.depth++
	if d.opts.MaxDepth > 0 && d.depth > d.opts.MaxDepth {
		return structural(element, ErrDepthExceeded)
	}
	return nil
}

func (d *decoder) exit() {
	d.depth--
}

func (d *decoder) emit(s Term, p IRI, o Term) {
	d.triples = append(d.triples, Triple{S: s, P: p, O: o})
}

// makeIRI routes every produced identifier through the construction hook
// and optional strict validation.
func (d *decoder) makeIRI(value, element string) (IRI, error) {
	if d.opts.IRIFunc != nil {
		replaced, err := d.opts.IRIFunc(value)
		if err != nil {
			return IRI{}, structural(element, err)
		}
		value = replaced
	}
	if d.opts.StrictIRIValidation {
		if err := ValidateIRI(value); err != nil {
			return IRI{}, structural(element, fmt.Errorf("rdfxml: invalid IRI %q: %w", value, err))
		}
	}
	return IRI{Value: value}, nil
}

// nodeElement processes el as a node element and returns its subject.
func (d *decoder) nodeElement(el *element, sc scope) (Term, error) {
	if err := d.enter(el.local); err != nil {
		return nil, err
	}
	defer d.exit()

	sc = sc.push(el)

	if el.space == "" {
		return nil, structural(el.local, ErrMissingNamespace)
	}
	if el.space == RDFNamespace && isForbiddenNodeElement(el.local) {
		return nil, structuralf(el.local, "illegal node element rdf:%s", el.local)
	}

	subject, err := d.subjectOf(el, sc)
	if err != nil {
		return nil, err
	}

	if el.space != RDFNamespace || el.local != "Description" {
		typ, err := d.makeIRI(el.space+el.local, el.local)
		if err != nil {
			return nil, err
		}
		d.emit(subject, IRI{Value: rdfType}, typ)
	}

	if err := d.propertyAttributes(subject, el, sc); err != nil {
		return nil, err
	}

	liIndex := 0
	for _, child := range el.children() {
		if err := d.propertyElement(subject, child, sc, &liIndex); err != nil {
			return nil, err
		}
	}
	return subject, nil
}

// subjectOf determines a node element's subject: rdf:about, rdf:ID,
// rdf:nodeID, or a fresh anonymous node, in that priority order.
func (d *decoder) subjectOf(el *element, sc scope) (Term, error) {
	if about, ok := el.attr(RDFNamespace, "about"); ok {
		resolved, err := resolveReference(sc.base, about, el.local)
		if err != nil {
			return nil, err
		}
		return d.makeIRI(resolved, el.local)
	}
	if id, ok := el.attr(RDFNamespace, "ID"); ok {
		if !isValidXMLName(id) {
			return nil, structuralf(el.local, "invalid rdf:ID %q", id)
		}
		if sc.base == "" {
			return nil, &BaseRequiredError{Reference: id, Element: el.local}
		}
		return d.makeIRI(sc.base+"#"+id, el.local)
	}
	if nodeID, ok := el.attr(RDFNamespace, "nodeID"); ok {
		if !isValidXMLName(nodeID) {
			return nil, structuralf(el.local, "invalid rdf:nodeID %q", nodeID)
		}
		return d.nodes.node(nodeID), nil
	}
	return d.nodes.fresh(), nil
}

// propertyAttributes turns every non-reserved attribute of a node element
// into a statement. rdf:type is the one attribute with a resource value;
// everything else becomes a plain string literal.
func (d *decoder) propertyAttributes(subject Term, el *element, sc scope) error {
	for _, a := range el.attrs {
		switch {
		case a.space == "xmlns" || a.space == XMLNamespace:
			continue
		case a.space == RDFNamespace && isSyntaxAttr(a.local):
			continue
		case a.space == "":
			return structural(el.local, ErrMissingNamespace)
		}
		if a.space == RDFNamespace && a.local == "type" {
			resolved, err := resolveReference(sc.base, a.value, el.local)
			if err != nil {
				return err
			}
			typ, err := d.makeIRI(resolved, el.local)
			if err != nil {
				return err
			}
			d.emit(subject, IRI{Value: rdfType}, typ)
			continue
		}
		pred, err := d.makeIRI(a.space+a.local, el.local)
		if err != nil {
			return err
		}
		d.emit(subject, pred, NewLiteral(a.value))
	}
	return nil
}

// propertyElement processes el as a property element of subject.
func (d *decoder) propertyElement(subject Term, el *element, sc scope, liIndex *int) error {
	if err := d.enter(el.local); err != nil {
		return err
	}
	defer d.exit()

	sc = sc.push(el)

	if el.space == "" {
		return structural(el.local, ErrMissingNamespace)
	}
	if el.space == RDFNamespace && isForbiddenPropertyElement(el.local) {
		return structuralf(el.local, "illegal property element rdf:%s", el.local)
	}

	pred, err := d.predicateOf(el, liIndex)
	if err != nil {
		return err
	}

	attrs, err := d.plainAttributes(el)
	if err != nil {
		return err
	}

	reifyID, err := d.reificationID(el, sc)
	if err != nil {
		return err
	}

	resource, hasResource := el.attr(RDFNamespace, "resource")
	nodeID, hasNodeID := el.attr(RDFNamespace, "nodeID")
	parseType, hasParseType := el.attr(RDFNamespace, "parseType")
	if hasResource && hasNodeID {
		return structuralf(el.local, "rdf:resource and rdf:nodeID are mutually exclusive")
	}
	if hasParseType && (hasResource || hasNodeID) {
		return structuralf(el.local, "rdf:parseType cannot be used with rdf:resource or rdf:nodeID")
	}

	switch {
	case hasResource:
		resolved, err := resolveReference(sc.base, resource, el.local)
		if err != nil {
			return err
		}
		obj, err := d.makeIRI(resolved, el.local)
		if err != nil {
			return err
		}
		return d.objectWithAttributes(subject, pred, obj, el, attrs, reifyID)

	case hasNodeID:
		if !isValidXMLName(nodeID) {
			return structuralf(el.local, "invalid rdf:nodeID %q", nodeID)
		}
		return d.objectWithAttributes(subject, pred, d.nodes.node(nodeID), el, attrs, reifyID)

	case hasParseType:
		return d.parseTypedObject(subject, pred, parseType, el, sc, reifyID)
	}

	children := el.children()
	switch {
	case len(children) == 1:
		obj, err := d.nodeElement(children[0], sc)
		if err != nil {
			return err
		}
		d.emit(subject, pred, obj)
		d.reify(reifyID, subject, pred, obj)
		return nil

	case len(children) > 1:
		if err := d.deviation(el.local,
			fmt.Errorf("rdfxml: property element %s has multiple node element children", el.local),
			"emitting one statement per child"); err != nil {
			return err
		}
		for _, child := range children {
			obj, err := d.nodeElement(child, sc)
			if err != nil {
				return err
			}
			d.emit(subject, pred, obj)
		}
		return nil
	}

	if len(attrs) > 0 {
		// Empty property element with property attributes: the object is a
		// fresh anonymous node described by the attributes.
		obj := d.nodes.fresh()
		if err := d.objectWithAttributes(subject, pred, obj, el, attrs, reifyID); err != nil {
			return err
		}
		return nil
	}

	obj, err := d.literalObject(el, sc, subject, pred)
	if err != nil {
		return err
	}
	d.emit(subject, pred, obj)
	d.reify(reifyID, subject, pred, obj)
	return nil
}

// predicateOf maps a property element name to its predicate, rewriting
// rdf:li to the next membership predicate in document order. An explicit
// rdf:_n advances the li counter past n.
func (d *decoder) predicateOf(el *element, liIndex *int) (IRI, error) {
	if el.space == RDFNamespace && el.local == "li" {
		*liIndex++
		return d.makeIRI(fmt.Sprintf("%s_%d", RDFNamespace, *liIndex), el.local)
	}
	if el.space == RDFNamespace {
		if n, ok := parseContainerIndex(el.local); ok && n > *liIndex {
			*liIndex = n
		}
	}
	return d.makeIRI(el.space+el.local, el.local)
}

// reificationID resolves an rdf:ID attribute on a property element into
// the reification record identifier.
func (d *decoder) reificationID(el *element, sc scope) (IRI, error) {
	id, ok := el.attr(RDFNamespace, "ID")
	if !ok {
		return IRI{}, nil
	}
	if !isValidXMLName(id) {
		return IRI{}, structuralf(el.local, "invalid rdf:ID %q", id)
	}
	if sc.base == "" {
		return IRI{}, &BaseRequiredError{Reference: id, Element: el.local}
	}
	return d.makeIRI(sc.base+"#"+id, el.local)
}

// reify emits the four component statements of a reification record.
func (d *decoder) reify(id IRI, s Term, p IRI, o Term) {
	if id.Value == "" {
		return
	}
	d.emit(id, IRI{Value: rdfType}, IRI{Value: rdfStatement})
	d.emit(id, IRI{Value: rdfSubject}, s)
	d.emit(id, IRI{Value: rdfPredicate}, p)
	d.emit(id, IRI{Value: rdfObject}, o)
}

// objectWithAttributes emits the main statement and any property-attribute
// statements describing the object.
func (d *decoder) objectWithAttributes(subject Term, pred IRI, obj Term, el *element, attrs []attribute, reifyID IRI) error {
	if len(el.children()) > 0 {
		if err := d.deviation(el.local,
			fmt.Errorf("rdfxml: property element %s with an object reference must be empty", el.local),
			"ignoring nested content"); err != nil {
			return err
		}
	}
	d.emit(subject, pred, obj)
	d.reify(reifyID, subject, pred, obj)
	for _, a := range attrs {
		attrPred, err := d.makeIRI(a.space+a.local, el.local)
		if err != nil {
			return err
		}
		d.emit(obj, attrPred, NewLiteral(a.value))
	}
	return nil
}

// plainAttributes returns the non-syntax, non-namespace attributes of a
// property element. An attribute with no namespace is fatal, as on node
// elements.
func (d *decoder) plainAttributes(el *element) ([]attribute, error) {
	var out []attribute
	for _, a := range el.attrs {
		if a.space == "xmlns" || a.space == XMLNamespace {
			continue
		}
		if a.space == RDFNamespace && (isSyntaxAttr(a.local) || a.local == "li") {
			continue
		}
		if a.space == "" {
			return nil, structural(el.local, ErrMissingNamespace)
		}
		out = append(out, a)
	}
	return out, nil
}

// parseTypedObject handles the three rdf:parseType modes. Unknown values
// fail in strict mode and fall back to Resource handling otherwise.
func (d *decoder) parseTypedObject(subject Term, pred IRI, parseType string, el *element, sc scope, reifyID IRI) error {
	switch parseType {
	case "Resource":
	case "Literal":
		obj := Literal{Lexical: el.innerXML(), Datatype: IRI{Value: rdfXMLLiteral}}
		d.emit(subject, pred, obj)
		d.reify(reifyID, subject, pred, obj)
		return nil
	case "Collection":
		return d.collectionObject(subject, pred, el, sc, reifyID)
	default:
		if err := d.deviation(el.local,
			fmt.Errorf("%w: %q", ErrUnknownParseType, parseType),
			"treating as parseType=\"Resource\""); err != nil {
			return err
		}
	}

	obj := d.nodes.fresh()
	d.emit(subject, pred, obj)
	d.reify(reifyID, subject, pred, obj)
	liIndex := 0
	for _, child := range el.children() {
		if err := d.propertyElement(obj, child, sc, &liIndex); err != nil {
			return err
		}
	}
	return nil
}

// collectionObject builds the right-leaning chain for parseType
// "Collection". Zero items link the property directly to rdf:nil.
func (d *decoder) collectionObject(subject Term, pred IRI, el *element, sc scope, reifyID IRI) error {
	items := el.children()
	if len(items) == 0 {
		obj := IRI{Value: rdfNil}
		d.emit(subject, pred, obj)
		d.reify(reifyID, subject, pred, obj)
		return nil
	}

	links := make([]BlankNode, len(items))
	for i := range items {
		links[i] = d.nodes.fresh()
	}
	d.emit(subject, pred, links[0])
	d.reify(reifyID, subject, pred, links[0])

	for i, item := range items {
		value, err := d.nodeElement(item, sc)
		if err != nil {
			return err
		}
		d.emit(links[i], IRI{Value: rdfFirst}, value)
		if i+1 < len(items) {
			d.emit(links[i], IRI{Value: rdfRest}, links[i+1])
		} else {
			d.emit(links[i], IRI{Value: rdfRest}, IRI{Value: rdfNil})
		}
	}
	return nil
}

// literalObject builds the literal for a property element with no children
// and no object markers: explicit datatype wins over the inherited
// language tag, the language tag wins over plain string.
func (d *decoder) literalObject(el *element, sc scope, subject Term, pred IRI) (Term, error) {
	text := el.text()
	if d.opts.NormalizeWhitespace {
		text = normalizeSpace(text)
	}

	if datatype, ok := el.attr(RDFNamespace, "datatype"); ok {
		resolved, err := resolveReference(sc.base, datatype, el.local)
		if err != nil {
			return nil, err
		}
		dt, err := d.makeIRI(resolved, el.local)
		if err != nil {
			return nil, err
		}
		return NewTypedLiteral(text, dt), nil
	}

	if sc.lang != "" {
		d.checkDuplicateLang(subject, pred, sc.lang)
		return NewLangLiteral(text, sc.lang), nil
	}
	return NewLiteral(text), nil
}

// checkDuplicateLang reports a warning when one subject/predicate pair
// accumulates two literal values with the same language tag. The source
// behavior of silently preferring the first value is deliberately not
// reproduced; both statements are emitted and the collision is observable.
func (d *decoder) checkDuplicateLang(subject Term, pred IRI, lang string) {
	key := termKey(subject) + "\x00" + pred.Value + "\x00" + lang
	if d.langSeen[key] {
		d.warn(fmt.Sprintf("duplicate %q-tagged literal for %s on predicate <%s>", lang, subject.String(), pred.Value))
		return
	}
	d.langSeen[key] = true
}

// validateStatements is the optional output post-pass: every statement
// must have a resource subject, an IRI predicate, and a non-empty object
// term.
func (d *decoder) validateStatements() error {
	for _, t := range d.triples {
		switch s := t.S.(type) {
		case IRI:
			if s.Value == "" {
				return structural("", fmt.Errorf("%w: empty subject IRI in %s", ErrInvalidStatement, t))
			}
		case BlankNode:
			if s.ID == "" {
				return structural("", fmt.Errorf("%w: empty subject label in %s", ErrInvalidStatement, t))
			}
		default:
			return structural("", fmt.Errorf("%w: subject must be a resource in %s", ErrInvalidStatement, t))
		}
		if t.P.Value == "" {
			return structural("", fmt.Errorf("%w: empty predicate in %s", ErrInvalidStatement, t))
		}
		switch o := t.O.(type) {
		case IRI:
			if o.Value == "" {
				return structural("", fmt.Errorf("%w: empty object IRI in %s", ErrInvalidStatement, t))
			}
		case BlankNode:
			if o.ID == "" {
				return structural("", fmt.Errorf("%w: empty object label in %s", ErrInvalidStatement, t))
			}
		case Literal:
			if o.Lang != "" && o.Datatype.Value != rdfLangString {
				return structural("", fmt.Errorf("%w: language-tagged literal must use rdf:langString in %s", ErrInvalidStatement, t))
			}
		default:
			return structural("", fmt.Errorf("%w: missing object in %s", ErrInvalidStatement, t))
		}
	}
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
