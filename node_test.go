package sanexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement(t *testing.T) {
	n := NewElement("root", Attr{Key: "id", Val: "1"})
	assert.Equal(t, "root", n.Tag)
	v, ok := n.Get("id")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestSubElement(t *testing.T) {
	parent := NewElement("root")
	child := SubElement(parent, "child")
	require.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
}

func TestNewElementNSRegistersPrefixes(t *testing.T) {
	old := DefaultRegistry
	DefaultRegistry = NewRegistry()
	defer func() { DefaultRegistry = old }()

	NewElementNS("{http://some/ns}doc", map[string]string{"s": "http://some/ns"})
	p, ok := DefaultRegistry.prefix("http://some/ns")
	require.True(t, ok)
	assert.Equal(t, "s", p)
}

func TestAttrOps(t *testing.T) {
	n := NewElement("e")
	n.Set("a", "1")
	n.Set("b", "2")
	n.Set("a", "3") // update keeps position
	require.Equal(t, []Attr{{"a", "3"}, {"b", "2"}}, n.Attr)

	require.True(t, n.Del("a"))
	require.False(t, n.Del("a"))
	_, ok := n.Get("a")
	assert.False(t, ok)
}

func TestChildOps(t *testing.T) {
	root := NewElement("root")
	a := SubElement(root, "a")
	c := SubElement(root, "c")
	b := NewElement("b")
	root.InsertChild(1, b)
	require.Equal(t, []*Node{a, b, c}, root.Children)

	require.True(t, root.RemoveChild(b))
	require.False(t, root.RemoveChild(b))
	require.Equal(t, []*Node{a, c}, root.Children)

	assert.Panics(t, func() { root.InsertChild(5, b) })
}

func TestIterDocumentOrder(t *testing.T) {
	root, err := ParseString("<root><a><b/></a><c/></root>", ParseOptions{})
	require.NoError(t, err)

	var tags []string
	for n := range root.Iter() {
		tags = append(tags, n.Tag)
	}
	assert.Equal(t, []string{"root", "a", "b", "c"}, tags)

	tags = nil
	for n := range root.descendants() {
		tags = append(tags, n.Tag)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tags)
}

func TestParentIndex(t *testing.T) {
	root, err := ParseString("<root><a><b/></a></root>", ParseOptions{})
	require.NoError(t, err)

	idx := parentIndex(root)
	a := root.Children[0]
	b := a.Children[0]
	assert.Same(t, root, parentOf(idx, a))
	assert.Same(t, a, parentOf(idx, b))

	_, hasRoot := idx[root]
	assert.False(t, hasRoot, "root has no parent")

	assert.Panics(t, func() { parentOf(idx, NewElement("stranger")) })
}

func TestClone(t *testing.T) {
	root, err := ParseString(`<root a="1">x<c>y</c>z</root>`, ParseOptions{})
	require.NoError(t, err)

	c := root.Clone()
	c.Children[0].Text = "changed"
	c.Set("a", "2")

	assert.Equal(t, "y", root.Children[0].Text)
	v, _ := root.Get("a")
	assert.Equal(t, "1", v)
}

func TestScopeRoot(t *testing.T) {
	n := NewElement("root")
	got, err := scopeRoot(n)
	require.NoError(t, err)
	assert.Same(t, n, got)

	got, err = scopeRoot(&Tree{Root: n})
	require.NoError(t, err)
	assert.Same(t, n, got)

	for _, bad := range []any{nil, "nope", 42, (*Node)(nil), &Tree{}} {
		_, err := scopeRoot(bad)
		assert.ErrorIs(t, err, ErrInvalidScope)
	}
}
