package sanexml

import (
	"fmt"
	"strings"
)

// Indent pretty-prints the subtree under scope by rewriting whitespace-only
// text and tail fields so that each child starts on its own line, one level
// deeper than its parent. space is the indentation unit, level the starting
// depth (useful when indenting a subtree that sits deeper inside a
// document). Text or tails carrying non-whitespace content are left alone,
// as is the scope root's own tail. Structure is never modified, and the
// operation is idempotent.
func Indent(scope any, space string, level int) error {
	root, err := scopeRoot(scope)
	if err != nil {
		return err
	}
	if level < 0 {
		return fmt.Errorf("%w: negative indent level %d", ErrInvalidArgument, level)
	}
	if len(root.Children) == 0 {
		return nil
	}
	indentChildren(root, space, level)
	return nil
}

// indentChildren processes all descendants of n before settling n's own
// text, since a node's whitespace depends on whether it has children. Each
// child's tail aligns the next sibling at the children's depth; the last
// child's tail pulls the parent's close back one level.
func indentChildren(n *Node, space string, level int) {
	childIndent := "\n" + strings.Repeat(space, level+1)
	if isWhitespace(n.Text) {
		n.Text = childIndent
	}
	for _, c := range n.Children {
		if len(c.Children) > 0 {
			indentChildren(c, space, level+1)
		}
		if isWhitespace(c.Tail) {
			c.Tail = childIndent
		}
	}
	if last := n.Children[len(n.Children)-1]; isWhitespace(last.Tail) {
		last.Tail = "\n" + strings.Repeat(space, level)
	}
}

func isWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}
