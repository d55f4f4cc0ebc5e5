package sanexml

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromString parses markup that may contain arbitrary tag names or common
// HTML sloppiness and returns the root of the canonical tree. The input is
// repaired in two phases: bare tag names are masked behind placeholders and
// the text is run through the HTML5 recovery parser, which balances
// unterminated and implicitly closed tags without case-folding or dropping
// the custom names; the names are then restored and the normalized text is
// handed to the strict parser. Comments are kept, processing instructions
// dropped.
func FromString(text string) (*Node, error) {
	return fromString(text, "", defaultParseOptions())
}

// FromStringWithBase is FromString followed by rewriting every href
// attribute to its absolute form against base.
func FromStringWithBase(text, base string) (*Node, error) {
	return fromString(text, base, defaultParseOptions())
}

// FromStringWithOptions is FromString with explicit parse options.
func FromStringWithOptions(text string, opts ParseOptions) (*Node, error) {
	return fromString(text, "", opts)
}

func fromString(text, base string, opts ParseOptions) (*Node, error) {
	normalized, err := sanitize(text)
	if err != nil {
		return nil, err
	}
	root, err := ParseString(normalized, opts)
	if err != nil {
		return nil, err
	}
	if base != "" {
		if err := ResolveHrefs(root, base); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// sanitize runs the masked text through the permissive HTML parser and
// serializes the recovered tree back to text. The recovery heuristics never
// fail on malformed markup; the placeholder alphabet keeps custom tag names
// out of reach of the HTML5 tree-construction rules while they run.
func sanitize(text string) (string, error) {
	masked, mapping := maskTags(text)

	// Parse as a body fragment so the recovery pass does not wrap the
	// input in html/head/body scaffolding.
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(masked), ctx)
	if err != nil {
		return "", err
	}

	unmaskTree(nodes, mapping)

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
