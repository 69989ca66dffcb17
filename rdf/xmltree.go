package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// element is one node of the parsed XML tree: a namespace-qualified name,
// ordered attributes, and ordered mixed content (child elements and
// character data).
type element struct {
	space string
	local string
	attrs []attribute
	nodes []treeNode
}

type attribute struct {
	space string
	local string
	value string
}

// treeNode is either *element or charData.
type treeNode interface {
	isTreeNode()
}

type charData string

func (*element) isTreeNode() {}
func (charData) isTreeNode() {}

// attr returns the value of the named attribute.
func (e *element) attr(space, local string) (string, bool) {
	for _, a := range e.attrs {
		if a.space == space && a.local == local {
			return a.value, true
		}
	}
	return "", false
}

// children returns the child elements in document order.
func (e *element) children() []*element {
	var out []*element
	for _, n := range e.nodes {
		if el, ok := n.(*element); ok {
			out = append(out, el)
		}
	}
	return out
}

// text returns the concatenated character data directly under e.
func (e *element) text() string {
	var b strings.Builder
	for _, n := range e.nodes {
		if cd, ok := n.(charData); ok {
			b.WriteString(string(cd))
		}
	}
	return b.String()
}

// innerXML re-serializes the mixed content of e. Child elements carry
// their namespace as a default xmlns declaration, which keeps the markup
// self-contained.
func (e *element) innerXML() string {
	var b strings.Builder
	for _, n := range e.nodes {
		writeTreeNode(&b, n)
	}
	return b.String()
}

func writeTreeNode(b *strings.Builder, n treeNode) {
	switch v := n.(type) {
	case charData:
		b.WriteString(escapeXMLText(string(v)))
	case *element:
		b.WriteByte('<')
		b.WriteString(v.local)
		if v.space != "" {
			b.WriteString(` xmlns="` + escapeXMLAttr(v.space) + `"`)
		}
		for _, a := range v.attrs {
			if a.space == "xmlns" {
				continue
			}
			b.WriteString(" " + a.local + `="` + escapeXMLAttr(a.value) + `"`)
		}
		if len(v.nodes) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, child := range v.nodes {
			writeTreeNode(b, child)
		}
		b.WriteString("</" + v.local + ">")
	}
}

// declaresNamespace reports whether e carries an xmlns declaration binding
// ns, used by the root-element scan.
func (e *element) declaresNamespace(ns string) bool {
	for _, a := range e.attrs {
		if a.space == "xmlns" && a.value == ns {
			return true
		}
	}
	return false
}

// parseTree reads a complete XML document into an element tree. maxDepth
// bounds nesting (0 = unlimited) so adversarial input fails fast instead
// of exhausting the stack later.
func parseTree(r io.Reader, maxDepth int) (*element, error) {
	dec := xml.NewDecoder(r)
	var root *element
	var stack []*element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, structural("", fmt.Errorf("rdfxml: malformed XML: %w", err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{space: t.Name.Space, local: t.Name.Local}
			for _, a := range t.Attr {
				el.attrs = append(el.attrs, normalizeAttr(a))
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, structural(t.Name.Local, fmt.Errorf("rdfxml: multiple document elements"))
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.nodes = append(parent.nodes, el)
			}
			stack = append(stack, el)
			if maxDepth > 0 && len(stack) > maxDepth {
				return nil, structural(t.Name.Local, ErrDepthExceeded)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.nodes = append(parent.nodes, charData(string(t)))
			}
		}
	}

	if root == nil {
		return nil, ErrNoRootElement
	}
	return root, nil
}

// normalizeAttr maps encoding/xml attribute names into the tree's
// namespace model. The xml prefix is not bound to its namespace IRI by
// encoding/xml, and xmlns declarations arrive with "xmlns" as the space.
func normalizeAttr(a xml.Attr) attribute {
	space := a.Name.Space
	local := a.Name.Local
	switch {
	case space == "xml":
		space = XMLNamespace
	case space == "" && local == "xmlns":
		space, local = "xmlns", ""
	}
	return attribute{space: space, local: local, value: a.Value}
}

// outElem is one element of the document being written.
type outElem struct {
	name     string
	attrs    []outAttr
	children []*outElem
	text     string
	raw      bool // text is preserialized markup, written verbatim
}

type outAttr struct {
	name  string
	value string
}

func (e *outElem) setAttr(name, value string) {
	e.attrs = append(e.attrs, outAttr{name: name, value: value})
}

func (e *outElem) add(child *outElem) {
	e.children = append(e.children, child)
}

// writeDocument serializes root with an XML declaration. Pretty output
// indents one level per element; elements holding only text stay on one
// line.
func writeDocument(w io.Writer, root *outElem, opts Options) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	if opts.Pretty {
		b.WriteByte('\n')
	}
	writeOutElem(&b, root, 0, opts)
	if opts.Pretty {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeOutElem(b *strings.Builder, e *outElem, depth int, opts Options) {
	indent := ""
	if opts.Pretty {
		indent = strings.Repeat(opts.Indent, depth)
		b.WriteString(indent)
	}
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escapeXMLAttr(a.value))
		b.WriteByte('"')
	}
	switch {
	case len(e.children) == 0 && e.text == "":
		b.WriteString("/>")
	case len(e.children) == 0:
		b.WriteByte('>')
		if e.raw {
			b.WriteString(e.text)
		} else {
			b.WriteString(escapeXMLText(e.text))
		}
		b.WriteString("</" + e.name + ">")
	default:
		b.WriteByte('>')
		for _, child := range e.children {
			if opts.Pretty {
				b.WriteByte('\n')
			}
			writeOutElem(b, child, depth+1, opts)
		}
		if opts.Pretty {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		b.WriteString("</" + e.name + ">")
	}
}

var xmlTextEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
)

var xmlAttrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

func escapeXMLText(value string) string {
	return xmlTextEscaper.Replace(value)
}

func escapeXMLAttr(value string) string {
	return xmlAttrEscaper.Replace(value)
}
