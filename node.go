package ansihtml

import (
	"html"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeBuilder is a Handler that appends the text to a parent node of a HTML tree.
// Each styled run is a <span> element node with a style attribute,
// text without a style is appended to the parent as a text node.
type NodeBuilder struct {
	parent *nethtml.Node
	span   *nethtml.Node
	style  Style
}

// NewNodeBuilder returns a NodeBuilder that appends to parent.
// A nil parent is replaced by a detached <div> element, see [NodeBuilder.Parent].
func NewNodeBuilder(parent *nethtml.Node) *NodeBuilder {
	if parent == nil {
		parent = &nethtml.Node{
			Type:     nethtml.ElementNode,
			DataAtom: atom.Div,
			Data:     atom.Div.String(),
		}
	}
	return &NodeBuilder{parent: parent}
}

// Parent returns the node the text is appended to.
func (nb *NodeBuilder) Parent() *nethtml.Node {
	return nb.parent
}

// Text appends the text to the current span, or to the parent for the empty style.
// Adjacent text is merged into one text node.
func (nb *NodeBuilder) Text(s string) {
	if s == "" {
		return
	}
	s = html.UnescapeString(s)
	target := nb.parent
	if !nb.style.IsEmpty() {
		if nb.span == nil {
			nb.span = nb.element()
			nb.parent.AppendChild(nb.span)
		}
		target = nb.span
	}
	if last := target.LastChild; last != nil && last.Type == nethtml.TextNode {
		last.Data += s
		return
	}
	target.AppendChild(&nethtml.Node{Type: nethtml.TextNode, Data: s})
}

// StyleChanged ends the current span, the next text starts a new one.
func (nb *NodeBuilder) StyleChanged(s Style) {
	nb.style = s
	nb.span = nil
}

func (nb *NodeBuilder) element() *nethtml.Node {
	span := &nethtml.Node{
		Type:     nethtml.ElementNode,
		DataAtom: atom.Span,
		Data:     atom.Span.String(),
	}
	nb.style.Apply(nodeStyle{span})
	return span
}

// nodeStyle sets CSS properties on the style attribute of an element node.
type nodeStyle struct {
	n *nethtml.Node
}

func (ns nodeStyle) SetProperty(name, value string) {
	decl := name + ":" + value + ";"
	for i, a := range ns.n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			ns.n.Attr[i].Val += decl
			return
		}
	}
	ns.n.Attr = append(ns.n.Attr, nethtml.Attribute{Key: "style", Val: decl})
}
