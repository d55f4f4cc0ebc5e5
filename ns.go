package sanexml

import "sync"

// xmlNamespace is the URI bound to the reserved "xml" prefix.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// A Registry maps namespace prefixes to URIs. The serializer consults it to
// pick prefixes for {uri}local names; element factories record prefix maps
// into it. It is an explicit value rather than ambient package state so that
// documents with conflicting prefix preferences do not interfere: pass a
// dedicated Registry to ToString when that matters.
type Registry struct {
	mu       sync.Mutex
	prefixes map[string]string // prefix -> uri
	uris     map[string]string // uri -> prefix
}

// NewRegistry returns a Registry with the well-known "xml" prefix
// preregistered.
func NewRegistry() *Registry {
	r := &Registry{
		prefixes: make(map[string]string),
		uris:     make(map[string]string),
	}
	r.Register("xml", xmlNamespace)
	return r
}

// Register records prefix as the preferred prefix for uri, replacing any
// previous binding of either. The empty prefix selects the default
// namespace; elements in that namespace serialize without a prefix.
func (r *Registry) Register(prefix, uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.uris[uri]; ok {
		delete(r.prefixes, old)
	}
	if old, ok := r.prefixes[prefix]; ok {
		delete(r.uris, old)
	}
	r.prefixes[prefix] = uri
	r.uris[uri] = prefix
}

// prefix returns the registered prefix for uri.
func (r *Registry) prefix(uri string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.uris[uri]
	return p, ok
}

// DefaultRegistry is used by serialization when no explicit Registry is
// supplied and by the element factories that accept a namespace map.
var DefaultRegistry = NewRegistry()

// RegisterNamespace records prefix as the preferred prefix for uri on the
// DefaultRegistry.
func RegisterNamespace(prefix, uri string) {
	DefaultRegistry.Register(prefix, uri)
}
