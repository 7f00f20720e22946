package transcript

import "encoding/xml"

// node is one element of the raw annotation tree: tag name, attributes,
// direct character data and child elements, as decoded by encoding/xml.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Navigator locates elements inside a raw annotation tree. All lookups
// are qualified with the namespace fixed at construction.
type Navigator struct {
	ns string
}

func NewNavigator(ns string) *Navigator {
	return &Navigator{ns: ns}
}

func (nv *Navigator) is(n *node, local string) bool {
	return n.XMLName.Space == nv.ns && n.XMLName.Local == local
}

// collect returns all descendant elements with the given local name in
// document order. Subtrees rooted at an element named in skip are not
// entered.
func (nv *Navigator) collect(n *node, local string, skip ...string) []*node {
	var found []*node

	var walk func(*node)
	walk = func(cur *node) {
		for i := range cur.Children {
			c := &cur.Children[i]
			if nv.skipped(c, skip) {
				continue
			}

			if nv.is(c, local) {
				found = append(found, c)
			}

			walk(c)
		}
	}
	walk(n)

	return found
}

// first returns the first descendant with the given local name in
// document order, or nil.
func (nv *Navigator) first(n *node, local string, skip ...string) *node {
	for i := range n.Children {
		c := &n.Children[i]
		if nv.skipped(c, skip) {
			continue
		}

		if nv.is(c, local) {
			return c
		}

		if found := nv.first(c, local, skip...); found != nil {
			return found
		}
	}

	return nil
}

// child returns the first direct child with the given local name, or nil.
func (nv *Navigator) child(n *node, local string) *node {
	for i := range n.Children {
		if nv.is(&n.Children[i], local) {
			return &n.Children[i]
		}
	}

	return nil
}

func (nv *Navigator) skipped(n *node, skip []string) bool {
	for _, s := range skip {
		if nv.is(n, s) {
			return true
		}
	}

	return false
}
