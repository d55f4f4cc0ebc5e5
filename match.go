package sanexml

import (
	"regexp"
	"strings"
)

// A nameMatcher matches qualified tag or attribute names against a set of
// compiled wildcard patterns. The pattern language is a one-character glob:
// * matches any run of characters, everything else (including the braces of
// {uri}local names) is literal. A name is selected when any pattern in the
// set matches it in full.
type nameMatcher []*regexp.Regexp

func compileSelectors(patterns []string) nameMatcher {
	m := make(nameMatcher, 0, len(patterns))
	for _, p := range patterns {
		m = append(m, compilePattern(p))
	}
	return m
}

func compilePattern(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

func (m nameMatcher) matches(name string) bool {
	for _, re := range m {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
