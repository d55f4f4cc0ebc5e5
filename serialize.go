package sanexml

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// SerializeOptions control the output form of ToString and ToBytes.
type SerializeOptions struct {
	// Method selects the output form: "xml" (the default when empty),
	// "html" or "text".
	Method string

	// Encoding, when non-empty, is named in an XML declaration prepended
	// to the output. The text itself is always UTF-8.
	Encoding string

	// Registry supplies preferred namespace prefixes. DefaultRegistry is
	// used when nil.
	Registry *Registry
}

// ToString serializes a tree or node. Qualified {uri}local names come out
// as prefix:local with the xmlns declarations emitted on the serialization
// root; URIs without a registered prefix get generated ns0, ns1, ...
// prefixes. The node's tail, if any, is included after its close.
func ToString(scope any, opts SerializeOptions) (string, error) {
	root, err := scopeRoot(scope)
	if err != nil {
		return "", err
	}
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	p := newPrefixer(reg)

	var s string
	switch opts.Method {
	case "", "xml":
		s, err = writeXML(root, p)
	case "html":
		s, err = writeHTML(root, p)
	case "text":
		var sb strings.Builder
		writeText(&sb, root)
		s = sb.String()
	default:
		return "", fmt.Errorf("%w: unknown serialization method %q", ErrInvalidArgument, opts.Method)
	}
	if err != nil {
		return "", err
	}
	if opts.Encoding != "" && (opts.Method == "" || opts.Method == "xml") {
		s = "<?xml version='1.0' encoding='" + opts.Encoding + "'?>\n" + s
	}
	return s, nil
}

// ToBytes is ToString returning the encoded bytes.
func ToBytes(scope any, opts SerializeOptions) ([]byte, error) {
	s, err := ToString(scope, opts)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Dump writes an indented rendering of scope to stdout. Debugging aid only;
// the tree itself is left untouched (a copy is indented).
func Dump(scope any) {
	root, err := scopeRoot(scope)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	c := root.Clone()
	c.Tail = ""
	if err := Indent(c, "  ", 0); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	s, err := ToString(c, SerializeOptions{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(s)
}

func writeXML(root *Node, p *prefixer) (string, error) {
	if !root.isElement() {
		// A bare comment or PI node serializes without a document.
		var sb strings.Builder
		switch root.Tag {
		case Comment:
			sb.WriteString("<!--" + root.Text + "-->")
		case ProcInst:
			sb.WriteString("<?" + root.Text + "?>")
		}
		sb.WriteString(root.Tail)
		return sb.String(), nil
	}

	el := buildEtree(root, p)
	el.Attr = append(p.declAttrs(), el.Attr...)

	doc := etree.NewDocument()
	doc.SetRoot(el)
	if root.Tail != "" {
		doc.AddChild(etree.NewText(root.Tail))
	}
	return doc.WriteToString()
}

// buildEtree converts a subtree to etree tokens, turning the text/tail
// fields back into interleaved character data.
func buildEtree(n *Node, p *prefixer) *etree.Element {
	el := etree.NewElement(p.name(n.Tag, false))
	for _, a := range n.Attr {
		prefix, local := p.resolve(a.Key, true)
		el.Attr = append(el.Attr, etree.Attr{Space: prefix, Key: local, Value: a.Val})
	}
	if n.Text != "" {
		el.AddChild(etree.NewText(n.Text))
	}
	for _, c := range n.Children {
		switch c.Tag {
		case Comment:
			el.AddChild(etree.NewComment(c.Text))
		case ProcInst:
			target, inst := splitPI(c.Text)
			el.AddChild(etree.NewProcInst(target, inst))
		default:
			el.AddChild(buildEtree(c, p))
		}
		if c.Tail != "" {
			el.AddChild(etree.NewText(c.Tail))
		}
	}
	return el
}

func writeHTML(root *Node, p *prefixer) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	appendHTML(doc, root, p)
	if hn := doc.FirstChild; hn != nil && root.isElement() {
		decls := p.declAttrs()
		attrs := make([]html.Attribute, 0, len(decls)+len(hn.Attr))
		for _, d := range decls {
			attrs = append(attrs, declToHTML(d))
		}
		hn.Attr = append(attrs, hn.Attr...)
	}
	var sb strings.Builder
	for hn := doc.FirstChild; hn != nil; hn = hn.NextSibling {
		if err := html.Render(&sb, hn); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func appendHTML(dst *html.Node, n *Node, p *prefixer) {
	switch n.Tag {
	case Comment:
		dst.AppendChild(&html.Node{Type: html.CommentNode, Data: n.Text})
	case ProcInst:
		// No processing instructions in HTML output.
	default:
		hn := &html.Node{Type: html.ElementNode, Data: p.name(n.Tag, false)}
		for _, a := range n.Attr {
			prefix, local := p.resolve(a.Key, true)
			key := local
			if prefix != "" {
				key = prefix + ":" + local
			}
			hn.Attr = append(hn.Attr, html.Attribute{Key: key, Val: a.Val})
		}
		dst.AppendChild(hn)
		if n.Text != "" {
			hn.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		}
		for _, c := range n.Children {
			appendHTML(hn, c, p)
		}
	}
	if n.Tail != "" {
		dst.AppendChild(&html.Node{Type: html.TextNode, Data: n.Tail})
	}
}

func declToHTML(a etree.Attr) html.Attribute {
	key := a.Key
	if a.Space != "" {
		key = a.Space + ":" + a.Key
	}
	return html.Attribute{Key: key, Val: a.Value}
}

// writeText collects the character data of the subtree: element text and
// every tail, in document order. Comment and PI text is not content.
func writeText(sb *strings.Builder, n *Node) {
	if n.isElement() {
		sb.WriteString(n.Text)
		for _, c := range n.Children {
			writeText(sb, c)
		}
	}
	sb.WriteString(n.Tail)
}

func splitPI(text string) (target, inst string) {
	target, inst, _ = strings.Cut(text, " ")
	return target, inst
}

// A prefixer assigns namespace prefixes for one serialization pass. It
// prefers registered prefixes and falls back to generated ns0, ns1, ...
// names, recording every binding it hands out so the declarations can be
// emitted on the serialization root.
type prefixer struct {
	reg      *Registry
	used     map[string]string // uri -> prefix handed out for elements
	attrUsed map[string]string // uri -> prefix handed out for attributes
	decls    []etree.Attr
	auto     int
}

func newPrefixer(reg *Registry) *prefixer {
	return &prefixer{
		reg:      reg,
		used:     make(map[string]string),
		attrUsed: make(map[string]string),
	}
}

// resolve splits a possibly qualified name into prefix and local parts.
// Attributes never use the default namespace, so a URI registered with the
// empty prefix still gets a generated prefix when used on an attribute.
func (p *prefixer) resolve(qname string, forAttr bool) (prefix, local string) {
	if !strings.HasPrefix(qname, "{") {
		return "", qname
	}
	end := strings.Index(qname, "}")
	if end < 0 {
		return "", qname
	}
	uri, local := qname[1:end], qname[end+1:]
	if uri == xmlNamespace {
		return "xml", local
	}

	if forAttr {
		if pre, ok := p.attrUsed[uri]; ok {
			return pre, local
		}
	} else if pre, ok := p.used[uri]; ok {
		return pre, local
	}

	pre, ok := p.reg.prefix(uri)
	if !ok || (forAttr && pre == "") {
		pre = fmt.Sprintf("ns%d", p.auto)
		p.auto++
	}
	if forAttr {
		p.attrUsed[uri] = pre
	} else {
		p.used[uri] = pre
		if pre != "" {
			p.attrUsed[uri] = pre
		}
	}
	p.declare(pre, uri)
	return pre, local
}

// name is resolve joined back into a display name.
func (p *prefixer) name(qname string, forAttr bool) string {
	prefix, local := p.resolve(qname, forAttr)
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func (p *prefixer) declare(prefix, uri string) {
	for _, d := range p.decls {
		if (d.Space == "xmlns" && d.Key == prefix) || (prefix == "" && d.Space == "" && d.Key == "xmlns") {
			return
		}
	}
	if prefix == "" {
		p.decls = append(p.decls, etree.Attr{Key: "xmlns", Value: uri})
	} else {
		p.decls = append(p.decls, etree.Attr{Space: "xmlns", Key: prefix, Value: uri})
	}
}

func (p *prefixer) declAttrs() []etree.Attr {
	return p.decls
}
