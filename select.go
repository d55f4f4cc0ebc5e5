package sanexml

import (
	"fmt"
	"strings"
)

// Select evaluates a small path language against scope. The literal path
// "//comment()" returns every comment node in document order. Any other
// path is a walk over literal tag names: a ".//" or "//" prefix starts from
// any descendant, otherwise the first segment matches direct children;
// subsequent slash-separated segments always step to children. A "*"
// segment matches any element.
func Select(scope any, path string) ([]*Node, error) {
	root, err := scopeRoot(scope)
	if err != nil {
		return nil, err
	}
	if path == "//comment()" {
		var out []*Node
		for n := range root.Iter() {
			if n.IsComment() {
				out = append(out, n)
			}
		}
		return out, nil
	}
	return findPath(root, path)
}

// FindAll returns the descendants of n selected by path, using the same
// subset as Select (minus comment selection).
func (n *Node) FindAll(path string) []*Node {
	res, err := findPath(n, path)
	if err != nil {
		return nil
	}
	return res
}

func findPath(root *Node, path string) ([]*Node, error) {
	descend := false
	switch {
	case strings.HasPrefix(path, ".//"):
		descend, path = true, path[3:]
	case strings.HasPrefix(path, "//"):
		descend, path = true, path[2:]
	case strings.HasPrefix(path, "./"):
		path = path[2:]
	}
	if path == "" || strings.HasSuffix(path, "/") {
		return nil, fmt.Errorf("%w: empty path segment", ErrInvalidArgument)
	}

	cur := []*Node{root}
	for i, seg := range strings.Split(path, "/") {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty path segment", ErrInvalidArgument)
		}
		var next []*Node
		for _, n := range cur {
			if descend && i == 0 {
				for d := range n.descendants() {
					if segmentMatch(d, seg) {
						next = append(next, d)
					}
				}
			} else {
				for _, c := range n.Children {
					if segmentMatch(c, seg) {
						next = append(next, c)
					}
				}
			}
		}
		cur = next
	}
	return cur, nil
}

func segmentMatch(n *Node, seg string) bool {
	if !n.isElement() {
		return false
	}
	return seg == "*" || n.Tag == seg
}
