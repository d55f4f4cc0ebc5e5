package sanexml

import (
	"fmt"
	"iter"
	"slices"
)

// Reserved tags marking non-element nodes. They are not legal XML names, so
// they can never collide with a real element tag.
const (
	// Comment marks a comment node. Comment nodes carry Text and Tail
	// only: no attributes, no children.
	Comment = "#comment"

	// ProcInst marks a processing-instruction node, kept only when
	// parsing with InsertPIs.
	ProcInst = "#pi"
)

// An Attr is a single element attribute. Attributes live in a slice rather
// than a map so that input order survives to serialization.
type Attr struct {
	Key string
	Val string
}

// A Node is one element or comment in the canonical tree. A node owns its
// children exclusively; there are no parent or sibling pointers, and a node
// is destroyed by removing it from its parent's child list.
type Node struct {
	// Tag is the element name. Namespace-qualified names use the
	// {uri}local form. The reserved Comment and ProcInst tags mark
	// non-element nodes.
	Tag string

	Attr []Attr

	// Text is character data inside the node, before its first child.
	Text string

	// Tail is character data after the node's end, before the next
	// sibling or the parent's close.
	Tail string

	Children []*Node
}

// A Tree wraps the root element of a parsed document.
type Tree struct {
	Root *Node
}

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attr: attrs}
}

// NewElementNS creates a detached element node and records the given
// prefix-to-URI map on the DefaultRegistry, so the prefixes are honored when
// the tree is serialized.
func NewElementNS(tag string, nsmap map[string]string, attrs ...Attr) *Node {
	for prefix, uri := range nsmap {
		RegisterNamespace(prefix, uri)
	}
	return NewElement(tag, attrs...)
}

// NewComment creates a detached comment node.
func NewComment(text string) *Node {
	return &Node{Tag: Comment, Text: text}
}

// SubElement creates an element and appends it to parent.
func SubElement(parent *Node, tag string, attrs ...Attr) *Node {
	c := NewElement(tag, attrs...)
	parent.Append(c)
	return c
}

// IsComment reports whether n is a comment node.
func (n *Node) IsComment() bool { return n.Tag == Comment }

func (n *Node) isElement() bool { return n.Tag != Comment && n.Tag != ProcInst }

// Get returns the value of the named attribute.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Set updates the named attribute, appending it if not present.
func (n *Node) Set(key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr{Key: key, Val: val})
}

// Del removes the named attribute and reports whether it was present.
func (n *Node) Del(key string) bool {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = slices.Delete(n.Attr, i, i+1)
			return true
		}
	}
	return false
}

// Append adds c as the last child of n.
func (n *Node) Append(c *Node) {
	n.Children = append(n.Children, c)
}

// InsertChild inserts c at position i in n's child list. It panics if i is
// out of range.
func (n *Node) InsertChild(i int, c *Node) {
	if i < 0 || i > len(n.Children) {
		panic(fmt.Sprintf("sanexml: InsertChild index %d out of range", i))
	}
	n.Children = slices.Insert(n.Children, i, c)
}

// RemoveChild removes c from n's child list and reports whether it was a
// child of n. The removed subtree keeps its contents but is no longer owned
// by the tree.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.childIndex(c)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	return true
}

func (n *Node) childIndex(c *Node) int {
	return slices.Index(n.Children, c)
}

// Iter yields n and every descendant in document order.
func (n *Node) Iter() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.visit(yield)
	}
}

// descendants yields every node below n in document order, excluding n.
func (n *Node) descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if !c.visit(yield) {
				return
			}
		}
	}
}

func (n *Node) visit(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.visit(yield) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of n. The copy shares nothing with the
// original.
func (n *Node) Clone() *Node {
	c := &Node{Tag: n.Tag, Text: n.Text, Tail: n.Tail}
	if len(n.Attr) > 0 {
		c.Attr = slices.Clone(n.Attr)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// appendText adds character data at the current insertion point: the node's
// text while it has no children, the last child's tail afterwards.
func (n *Node) appendText(s string) {
	if len(n.Children) == 0 {
		n.Text += s
	} else {
		n.Children[len(n.Children)-1].Tail += s
	}
}

// scopeRoot resolves the scope argument of tree operations. Anything other
// than a non-nil *Tree or *Node is rejected before any mutation happens.
func scopeRoot(scope any) (*Node, error) {
	switch s := scope.(type) {
	case *Node:
		if s != nil {
			return s, nil
		}
	case *Tree:
		if s != nil && s.Root != nil {
			return s.Root, nil
		}
	}
	return nil, fmt.Errorf("%w (got %T)", ErrInvalidScope, scope)
}

// parentIndex maps every node below root to its parent. The index reflects
// the tree shape at build time only: any structural mutation invalidates it,
// so it is built per surgery call and thrown away.
func parentIndex(root *Node) map[*Node]*Node {
	idx := make(map[*Node]*Node)
	for n := range root.Iter() {
		for _, c := range n.Children {
			idx[c] = n
		}
	}
	return idx
}

// parentOf looks n up in a parent index. A miss means the caller re-targeted
// a node that is no longer in the tree, which is a programming error.
func parentOf(idx map[*Node]*Node, n *Node) *Node {
	p, ok := idx[n]
	if !ok {
		panic(fmt.Sprintf("sanexml: node <%s> missing from parent index", n.Tag))
	}
	return p
}
