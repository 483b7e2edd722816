// =============================================================================
// PyPSA to H2RES Export Converter - XML Tree Module
// =============================================================================
//
// This module provides the ordered element tree every converter builds its
// output document from, plus the serializer and a parser for reading the
// same shape back.
//
// The documents produced here have dynamic, data-derived tag names (country
// codes, bus names, technology suffixes) and order-significant children, so
// they cannot be expressed with struct-based xml marshaling. The tree is
// deliberately minimal: a tag, ordered attributes, optional text, ordered
// children.
//
// OUTPUT SHAPE:
//   <?xml version='1.0' encoding='utf-8'?>
//   <root>
//     <row>
//       <period>1</period>
//       <DE>42.5</DE>
//     </row>
//   </root>
//
// Parsing drops namespaces: tag and attribute names are reduced to their
// local part, which matches how the SpreadsheetML reader wants to see them.
//
// =============================================================================

package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SebastianGajardo98/pypsa-scripts/pkg/fileutil"
)

// header is the XML declaration written ahead of every document.
const header = "<?xml version='1.0' encoding='utf-8'?>\n"

// indentUnit is the per-level indentation of serialized documents.
const indentUnit = "  "

// Attr is a single named attribute. Attributes keep insertion order.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the document tree.
type Element struct {
	// Tag is the element name.
	Tag string

	// Attrs holds the element attributes in insertion order.
	Attrs []Attr

	// Text is the character data written directly after the start tag.
	Text string

	// Children are the nested elements, in insertion order.
	Children []*Element
}

// New returns a new element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Child appends a new empty child element and returns it.
func (e *Element) Child(tag string) *Element {
	child := &Element{Tag: tag}
	e.Children = append(e.Children, child)
	return child
}

// ChildText appends a new child element carrying only text content.
func (e *Element) ChildText(tag, text string) *Element {
	child := e.Child(tag)
	child.Text = text
	return child
}

// SetAttr appends or replaces an attribute.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every element with the given tag anywhere below e,
// in document order.
func (e *Element) Descendants(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Descendants(tag)...)
	}
	return out
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Encode serializes the document with an XML declaration and two-space
// indentation.
func (e *Element) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	e.encode(&buf, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func (e *Element) encode(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		writeEscaped(buf, a.Value)
		buf.WriteByte('"')
	}

	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString(" />")
		return
	}

	buf.WriteByte('>')
	if e.Text != "" {
		writeEscaped(buf, e.Text)
	}
	if len(e.Children) > 0 {
		for _, c := range e.Children {
			buf.WriteByte('\n')
			c.encode(buf, depth+1)
		}
		buf.WriteByte('\n')
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}

// writeEscaped writes s with XML special characters escaped.
func writeEscaped(buf *bytes.Buffer, s string) {
	// xml.EscapeText cannot fail on a bytes.Buffer.
	xml.EscapeText(buf, []byte(s)) //nolint:errcheck
}

// WriteFile serializes the document and writes it to path, creating parent
// directories if absent.
func (e *Element) WriteFile(path string) error {
	if err := fileutil.WriteFileAtomic(path, e.Encode()); err != nil {
		return fmt.Errorf("failed to write XML document: %w", err)
	}
	return nil
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads an XML document from r and returns its root element.
// Namespace prefixes are stripped; whitespace-only character data is
// dropped; comments and processing instructions are ignored.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements in document")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			cur := stack[len(stack)-1]
			cur.Text += text
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element in document")
	}
	return root, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
