package sanexml

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// tagPattern matches an opening or closing tag delimiter immediately
// followed by a bare tag name and the closing bracket. Tags carrying
// attributes are intentionally not matched: the recovery parser passes
// unknown names with attributes through unchanged, so only the bare form
// needs protection.
var tagPattern = regexp.MustCompile(`(</?)([A-Za-z_][A-Za-z0-9_.-]*)(>)`)

// maskTags rewrites every bare <name> and </name> occurrence in text to use
// an opaque placeholder, returning the rewritten text and the name-to-
// placeholder mapping. Placeholders are uppercase alphanumeric so the
// case-folding applied by the HTML tokenizer cannot make two of them
// collide, and are assigned in order of first appearance.
//
// The rewrite is purely textual: character data or attribute values that
// happen to contain a <name>-shaped substring are masked as well. That is a
// tolerated limitation of text-level masking, matched by the restore pass
// leaving unknown names untouched.
func maskTags(text string) (string, map[string]string) {
	mapping := make(map[string]string)
	masked := tagPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := tagPattern.FindStringSubmatch(m)
		ph, ok := mapping[sub[2]]
		if !ok {
			ph = fmt.Sprintf("TAG%d", len(mapping))
			mapping[sub[2]] = ph
		}
		return sub[1] + ph + sub[3]
	})
	return masked, mapping
}

// unmaskTree restores original tag names on the recovery parser's output.
// The tokenizer lower-cases element names, so placeholders are matched
// case-insensitively; names absent from the mapping are left alone.
func unmaskTree(nodes []*html.Node, mapping map[string]string) {
	reverse := make(map[string]string, len(mapping))
	for name, ph := range mapping {
		reverse[ph] = name
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if orig, ok := reverse[strings.ToUpper(n.Data)]; ok {
				n.Data = orig
				n.DataAtom = 0
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
}
