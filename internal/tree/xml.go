package tree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WriteXML serializes the subtree rooted at n as indented XML: one element
// per node, named by the node's type tag, with properties as attributes in
// insertion order and children nested in order.
func WriteXML(w io.Writer, n *Node) error {
	return writeElement(w, n, 0)
}

// MarshalXML renders the subtree as an XML string.
func MarshalXML(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeElement(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s<%s", indent, n.typ); err != nil {
		return err
	}
	for _, p := range n.props {
		var attr bytes.Buffer
		if err := xml.EscapeText(&attr, []byte(p.Value.Text())); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, p.Name, attr.String()); err != nil {
			return err
		}
	}
	if len(n.children) == 0 {
		_, err := fmt.Fprintf(w, "/>\n")
		return err
	}
	if _, err := fmt.Fprintf(w, ">\n"); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeElement(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.typ)
	return err
}

// UnmarshalXML parses a single XML element (and its descendants) back into
// a node tree. Attribute values go through ParseValue, so canonical numeric
// and boolean forms regain their types. The construction is silent: no
// events fire and nothing is recorded.
func UnmarshalXML(s string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse metadata: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := New(t.Name.Local)
			for _, a := range t.Attr {
				n.applySetProperty(a.Name.Local, ParseValue(a.Value), false)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse metadata: multiple root elements")
				}
				root = n
			} else {
				stack[len(stack)-1].applyAddChild(n, stack[len(stack)-1].NumChildren(), false)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse metadata: unbalanced element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parse metadata: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parse metadata: unclosed element")
	}
	return root, nil
}
