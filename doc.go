// Package sanexml turns loosely-formed markup into a strict, canonical
// element tree and provides structural surgery on that tree: attribute
// stripping, subtree removal, tag unwrapping, href absolutization and a
// deterministic pretty-printer.
//
// The lenient entry point is FromString. It tolerates arbitrary or custom
// tag names and common HTML sloppiness (unterminated tags, implicit
// closing, bare ampersands) by masking every bare tag name behind a
// placeholder, running the text through the HTML5 recovery parser, and
// restoring the names before the strict parse:
//
//	root, err := sanexml.FromString("<customtag123>text</customtag123>")
//
// The resulting tree is a single-owner mutable structure of Node values
// with text/tail character data and no parent pointers. Operations that
// need upward navigation build a throwaway parent index per call.
//
// Well-formed input can skip the recovery pass entirely via Parse or
// ParseString.
package sanexml
