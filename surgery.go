package sanexml

// splitSelectors partitions strip selectors into name patterns and the
// reserved sentinel tags. Sentinels select by identity: a wildcard pattern
// never matches a comment or PI node.
func splitSelectors(selectors []string) (patterns []string, sentinels map[string]bool) {
	sentinels = make(map[string]bool)
	for _, s := range selectors {
		if s == Comment || s == ProcInst {
			sentinels[s] = true
		} else {
			patterns = append(patterns, s)
		}
	}
	return patterns, sentinels
}

// StripAttributes deletes every attribute whose name matches any of the
// given patterns from all descendants of scope. Patterns may contain a *
// wildcard and match the raw attribute name, qualified form included:
//
//	StripAttributes(root, "simpleattr", "{http://some/ns}attrname", "{http://other/ns}*")
//
// The scope root's own attributes are left untouched.
func StripAttributes(scope any, patterns ...string) error {
	root, err := scopeRoot(scope)
	if err != nil {
		return err
	}
	m := compileSelectors(patterns)
	for n := range root.descendants() {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if !m.matches(a.Key) {
				kept = append(kept, a)
			}
		}
		n.Attr = kept
	}
	return nil
}

// StripElements removes every descendant of scope matching one of the
// selectors, subtree included. Selectors are tag names (wildcards allowed)
// or the Comment/ProcInst sentinels. With withTail true the removed node's
// tail text is discarded along with it; with withTail false the tail is
// appended to the preceding sibling's tail (or the parent's text) first, so
// deletion does not disturb the surrounding character data. The scope root
// itself is never removed, even if it matches.
func StripElements(scope any, withTail bool, selectors ...string) error {
	root, err := scopeRoot(scope)
	if err != nil {
		return err
	}
	patterns, sentinels := splitSelectors(selectors)
	m := compileSelectors(patterns)

	// Collect first: removing while iterating would skip siblings.
	var doomed []*Node
	for n := range root.descendants() {
		if n.isElement() {
			if m.matches(n.Tag) {
				doomed = append(doomed, n)
			}
		} else if sentinels[n.Tag] {
			doomed = append(doomed, n)
		}
	}
	if len(doomed) == 0 {
		return nil
	}

	parents := parentIndex(root)
	for _, n := range doomed {
		p := parentOf(parents, n)
		if !withTail && n.Tail != "" {
			if i := p.childIndex(n); i > 0 {
				p.Children[i-1].Tail += n.Tail
			} else {
				p.Text += n.Tail
			}
		}
		p.RemoveChild(n)
	}
	return nil
}

// StripTags removes every descendant of scope matching one of the selectors
// while keeping its content: the node's children and text are spliced into
// the parent at the node's former position, and its tail becomes the tail
// of whatever now occupies that position. Only the wrapping tag and its
// attributes are discarded (for comments, the comment text goes too). The
// scope root itself is never unwrapped.
func StripTags(scope any, selectors ...string) error {
	root, err := scopeRoot(scope)
	if err != nil {
		return err
	}
	patterns, sentinels := splitSelectors(selectors)
	m := compileSelectors(patterns)

	var strip func(n *Node)
	strip = func(n *Node) {
		for i := 0; i < len(n.Children); {
			c := n.Children[i]
			var matched bool
			if c.isElement() {
				matched = m.matches(c.Tag)
			} else {
				matched = sentinels[c.Tag]
			}
			if !matched {
				strip(c)
				i++
				continue
			}

			if !c.isElement() {
				// Comment/PI text is not content; only the tail
				// survives.
				spliceText(n, i, c.Tail)
				n.Children = append(n.Children[:i], n.Children[i+1:]...)
				continue
			}

			spliceText(n, i, c.Text)
			kids := c.Children
			n.Children = append(n.Children[:i], append(kids, n.Children[i+1:]...)...)
			if len(kids) > 0 {
				kids[len(kids)-1].Tail += c.Tail
			} else {
				spliceText(n, i, c.Tail)
			}
			// Do not advance: the spliced-in children are examined at
			// the same position on the next pass.
		}
	}
	strip(root)
	return nil
}

// spliceText merges s into the character data immediately preceding child
// position i of n: the previous sibling's tail, or n's text when i is 0.
func spliceText(n *Node, i int, s string) {
	if s == "" {
		return
	}
	if i == 0 {
		n.Text += s
	} else {
		n.Children[i-1].Tail += s
	}
}
