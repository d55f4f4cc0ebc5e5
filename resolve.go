package sanexml

import (
	"fmt"
	"net/url"
)

// ResolveHrefs rewrites the href attribute of every node under root (root
// included) to its absolute form, resolved against base with the standard
// relative-reference rules. Already-absolute values come out unchanged;
// values that do not parse as URLs are left alone.
func ResolveHrefs(root *Node, base string) error {
	bu, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("sanexml: parse base url: %w", err)
	}
	for n := range root.Iter() {
		v, ok := n.Get("href")
		if !ok || v == "" {
			continue
		}
		ref, err := url.Parse(v)
		if err != nil {
			continue
		}
		n.Set("href", bu.ResolveReference(ref).String())
	}
	return nil
}
