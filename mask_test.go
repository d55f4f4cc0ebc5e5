package sanexml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestMaskTags(t *testing.T) {
	masked, mapping := maskTags("<root><child>text</child></root>")
	assert.Equal(t, "<TAG0><TAG1>text</TAG1></TAG0>", masked)
	assert.Equal(t, map[string]string{"root": "TAG0", "child": "TAG1"}, mapping)
}

func TestMaskTagsNameAlphabet(t *testing.T) {
	masked, mapping := maskTags("<my-tag.v2><_x>a</_x></my-tag.v2>")
	assert.Equal(t, "<TAG0><TAG1>a</TAG1></TAG0>", masked)
	assert.Contains(t, mapping, "my-tag.v2")
	assert.Contains(t, mapping, "_x")
}

func TestMaskTagsLeavesAttributedTagsAlone(t *testing.T) {
	masked, mapping := maskTags(`<a href="x.html">link</a>`)
	assert.Equal(t, `<a href="x.html">link</TAG0>`, masked)
	assert.Equal(t, map[string]string{"a": "TAG0"}, mapping)
}

func TestMaskTagsTextLookingLikeTags(t *testing.T) {
	// Text-level masking cannot tell structure from content; tag-shaped
	// substrings inside character data are masked too.
	masked, _ := maskTags("<p>use <b> for bold</p>")
	assert.Equal(t, "<TAG0>use <TAG1> for bold</TAG0>", masked)
}

func TestUnmaskTreeRestoresCaseFoldedNames(t *testing.T) {
	masked, mapping := maskTags("<CustomTag>text</CustomTag>")
	require.Equal(t, "<TAG0>text</TAG0>", masked)

	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(masked), ctx)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	// The tokenizer lower-cased the placeholder.
	assert.Equal(t, "tag0", nodes[0].Data)

	unmaskTree(nodes, mapping)
	assert.Equal(t, "CustomTag", nodes[0].Data)
}

func TestUnmaskTreeIgnoresUnknownNames(t *testing.T) {
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader("<div>x</div>"), ctx)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	unmaskTree(nodes, map[string]string{"root": "TAG0"})
	assert.Equal(t, "div", nodes[0].Data)
}
