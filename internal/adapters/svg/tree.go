package svg

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"go.trai.ch/kiln/internal/core/domain"
)

type nodeKind int

const (
	documentNode nodeKind = iota
	elementNode
	textNode
	// rawNode holds comments, doctypes, CDATA sections and processing
	// instructions verbatim.
	rawNode
)

type attr struct {
	name  string
	value string
}

type node struct {
	kind     nodeKind
	name     string
	attrs    []attr
	children []*node
	parent   *node

	raw     []byte
	rawType xml.TokenType
}

// parseTree builds a node tree from src. Unbalanced end tags close the innermost
// open element.
func parseTree(src []byte) (*node, error) {
	var (
		lexer   = xml.NewLexer(parse.NewInputBytes(src))
		doc     = &node{kind: documentNode}
		cur     = doc
		pending *node
		pi      *node
	)

	appendChild := func(n *node) {
		n.parent = cur
		cur.children = append(cur.children, n)
	}

	for {
		tt, data := lexer.Next()
		switch tt {
		case xml.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, &domain.SourceError{Class: domain.ClassVectors, Message: err.Error()}
			}
			return doc, nil

		case xml.StartTagPIToken:
			pi = &node{kind: rawNode, rawType: tt, raw: slices.Clone(data)}
		case xml.StartTagClosePIToken:
			if pi != nil {
				pi.raw = append(pi.raw, data...)
				appendChild(pi)
				pi = nil
			}

		case xml.CommentToken, xml.DOCTYPEToken, xml.CDATAToken:
			appendChild(&node{kind: rawNode, rawType: tt, raw: slices.Clone(data)})
		case xml.TextToken:
			appendChild(&node{kind: textNode, raw: slices.Clone(data)})

		case xml.StartTagToken:
			pending = &node{kind: elementNode, name: string(lexer.Text())}
			appendChild(pending)

		case xml.AttributeToken:
			switch {
			case pi != nil:
				pi.raw = append(pi.raw, data...)
			case pending != nil:
				pending.attrs = append(pending.attrs, attr{
					name:  string(lexer.Text()),
					value: unquote(lexer.AttrVal()),
				})
			}

		case xml.StartTagCloseToken:
			if pending != nil {
				cur = pending
				pending = nil
			}
		case xml.StartTagCloseVoidToken:
			pending = nil

		case xml.EndTagToken:
			if cur.parent != nil {
				cur = cur.parent
			}
		}
	}
}

func unquote(v []byte) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return string(v)
}

func (n *node) render(out *bytes.Buffer) {
	switch n.kind {
	case documentNode:
		for _, c := range n.children {
			c.render(out)
		}
	case textNode, rawNode:
		out.Write(n.raw)
	case elementNode:
		out.WriteByte('<')
		out.WriteString(n.name)
		var buf []byte
		for _, a := range n.attrs {
			out.WriteByte(' ')
			out.WriteString(a.name)
			out.WriteByte('=')
			out.Write(xml.EscapeAttrVal(&buf, []byte(a.value)))
		}
		if len(n.children) == 0 {
			out.WriteString("/>")
			return
		}
		out.WriteByte('>')
		for _, c := range n.children {
			c.render(out)
		}
		out.WriteString("</")
		out.WriteString(n.name)
		out.WriteByte('>')
	}
}

func (n *node) get(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (n *node) has(name string) bool {
	_, ok := n.get(name)
	return ok
}

func (n *node) set(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
}

func (n *node) remove(names ...string) {
	n.attrs = slices.DeleteFunc(n.attrs, func(a attr) bool { return slices.Contains(names, a.name) })
}

func (n *node) isElement(name string) bool {
	return n.kind == elementNode && n.name == name
}

// root returns the outermost element of a document.
func (n *node) root() *node {
	for _, c := range n.children {
		if c.kind == elementNode {
			return c
		}
	}
	return nil
}

// walk calls fn for every element below n in document order.
func (n *node) walk(fn func(*node)) {
	for _, c := range n.children {
		if c.kind == elementNode {
			fn(c)
			c.walk(fn)
		}
	}
}

// filter drops every descendant for which keep reports false, deciding on a
// parent before its children.
func (n *node) filter(keep func(*node) bool) {
	kept := n.children[:0]
	for _, c := range n.children {
		if !keep(c) {
			continue
		}
		c.filter(keep)
		kept = append(kept, c)
	}
	n.children = kept
}

// prune drops every descendant for which drop reports true, deciding on
// children before their parent.
func (n *node) prune(drop func(*node) bool) {
	kept := n.children[:0]
	for _, c := range n.children {
		c.prune(drop)
		if !drop(c) {
			kept = append(kept, c)
		}
	}
	n.children = kept
}

func (n *node) contains(name string) bool {
	found := false
	n.walk(func(c *node) {
		found = found || c.name == name
	})
	return found
}

func (n *node) inside(name string) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.isElement(name) {
			return true
		}
	}
	return false
}

// empty reports whether n has no children besides whitespace.
func (n *node) empty() bool {
	for _, c := range n.children {
		if c.kind != textNode || len(bytes.TrimSpace(c.raw)) > 0 {
			return false
		}
	}
	return true
}

func (n *node) subtreeHasID() bool {
	if n.has("id") {
		return true
	}
	for _, c := range n.children {
		if c.kind == elementNode && c.subtreeHasID() {
			return true
		}
	}
	return false
}

func hasPrefix(name, prefix string) bool {
	return strings.HasPrefix(name, prefix+":")
}
