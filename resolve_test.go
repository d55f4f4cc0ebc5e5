package sanexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHrefs(t *testing.T) {
	root := mustParse(t, `<root><a href="b.html"/><a href="/abs"/><a href="http://other.com/x"/><a href="../up"/></root>`)

	require.NoError(t, ResolveHrefs(root, "http://example.com/a/"))

	want := []string{
		"http://example.com/a/b.html",
		"http://example.com/abs",
		"http://other.com/x",
		"http://example.com/up",
	}
	for i, w := range want {
		v, _ := root.Children[i].Get("href")
		assert.Equal(t, w, v)
	}
}

func TestResolveHrefsRootElement(t *testing.T) {
	root := mustParse(t, `<a href="b.html"/>`)
	require.NoError(t, ResolveHrefs(root, "http://example.com/a/"))
	v, _ := root.Get("href")
	assert.Equal(t, "http://example.com/a/b.html", v)
}

func TestResolveHrefsLeavesOtherAttributes(t *testing.T) {
	root := mustParse(t, `<root><img src="i.png"/></root>`)
	require.NoError(t, ResolveHrefs(root, "http://example.com/"))
	v, _ := root.Children[0].Get("src")
	assert.Equal(t, "i.png", v)
}

func TestResolveHrefsBadBase(t *testing.T) {
	root := mustParse(t, `<a href="b.html"/>`)
	err := ResolveHrefs(root, "http://bad url\x7f")
	assert.Error(t, err)
}
