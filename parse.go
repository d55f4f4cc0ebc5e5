package sanexml

import (
	"errors"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// ParseOptions control which non-element constructs the strict parser keeps
// in the tree.
type ParseOptions struct {
	// InsertComments keeps comments as Comment-tagged nodes.
	InsertComments bool

	// InsertPIs keeps processing instructions as ProcInst-tagged nodes.
	InsertPIs bool
}

// defaultParseOptions are the options used by the lenient pipeline:
// comments kept, processing instructions dropped.
func defaultParseOptions() ParseOptions {
	return ParseOptions{InsertComments: true}
}

// Parse reads a complete well-formed document from r and returns its tree.
// Malformed input surfaces as a *ParseError; use FromString for input that
// needs repairing first.
func Parse(r io.Reader, opts ParseOptions) (*Tree, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, newParseError(err)
	}
	root, err := convertDocument(doc, opts)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// ParseWithBase is Parse followed by href absolutization against base.
func ParseWithBase(r io.Reader, base string, opts ParseOptions) (*Tree, error) {
	tree, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	if err := ResolveHrefs(tree.Root, base); err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseString parses well-formed markup text and returns the root node.
func ParseString(text string, opts ParseOptions) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, newParseError(err)
	}
	return convertDocument(doc, opts)
}

// convertDocument locates the single root element among the document-level
// tokens and converts it. Non-whitespace character data outside the root is
// a well-formedness violation.
func convertDocument(doc *etree.Document, opts ParseOptions) (*Node, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, newParseError(errors.New("multiple root elements"))
			}
			root = t
		case *etree.CharData:
			if !t.IsWhitespace() {
				return nil, newParseError(errors.New("character data outside root element"))
			}
		}
	}
	if root == nil {
		return nil, newParseError(errors.New("no root element found"))
	}
	ns := map[string]string{"xml": xmlNamespace}
	return convertElement(root, ns, opts)
}

// convertElement maps an etree element onto the canonical Node model:
// namespace prefixes are resolved to {uri}local form and the xmlns
// declarations dropped, and character data is split into text and tails.
func convertElement(el *etree.Element, ns map[string]string, opts ParseOptions) (*Node, error) {
	// Fork the in-scope bindings only when this element declares any.
	scope, forked := ns, false
	declare := func(prefix, uri string) {
		if !forked {
			scope = make(map[string]string, len(ns)+1)
			for k, v := range ns {
				scope[k] = v
			}
			forked = true
		}
		scope[prefix] = uri
	}
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns":
			declare(a.Key, a.Value)
		case a.Space == "" && a.Key == "xmlns":
			declare("", a.Value)
		}
	}

	tag, err := qualify(el.Space, el.Tag, scope, true)
	if err != nil {
		return nil, err
	}
	n := &Node{Tag: tag}

	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		key, err := qualify(a.Space, a.Key, scope, false)
		if err != nil {
			return nil, err
		}
		n.Attr = append(n.Attr, Attr{Key: key, Val: a.Value})
	}

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			n.appendText(t.Data)
		case *etree.Comment:
			if opts.InsertComments {
				n.Append(&Node{Tag: Comment, Text: t.Data})
			}
		case *etree.ProcInst:
			if opts.InsertPIs {
				n.Append(&Node{Tag: ProcInst, Text: strings.TrimSpace(t.Target + " " + t.Inst)})
			}
		case *etree.Element:
			c, err := convertElement(t, scope, opts)
			if err != nil {
				return nil, err
			}
			n.Append(c)
		}
	}
	return n, nil
}

// qualify resolves a prefixed name to {uri}local form. The default
// namespace applies to elements only, never to attributes.
func qualify(space, local string, ns map[string]string, isElement bool) (string, error) {
	if space == "" {
		if isElement {
			if uri := ns[""]; uri != "" {
				return "{" + uri + "}" + local, nil
			}
		}
		return local, nil
	}
	uri, ok := ns[space]
	if !ok {
		return "", newParseError(errors.New("unbound namespace prefix " + space))
	}
	return "{" + uri + "}" + local, nil
}
