package pattern

import (
	"context"
	"iter"
	"sort"
	"sync"
)

// Handler performs the side effect named by a matched value and returns
// the value to resume the caller with.
type Handler func(ctx context.Context, value any, settings any) (any, error)

// Entry is a registered (pattern, handler) pair.
type Entry struct {
	Name    string
	Pattern Pattern
	Handler Handler

	seq    int
	leaves int
	depth  int
}

// Seq returns the registration order of the entry.
func (e Entry) Seq() int {
	return e.seq
}

// Registry holds pattern bindings in specificity order.
// Resolution never invokes a handler.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry // most specific first, then registration order
	next    int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register binds h to p and returns the registry so calls can be chained.
func (r *Registry) Register(p Pattern, h Handler) *Registry {
	return r.Bind("", p, h)
}

// Bind registers a named binding. Names are informational only.
func (r *Registry) Bind(name string, p Pattern, h Handler) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	p = Clone(p)
	if p == nil {
		p = Pattern{}
	}
	leaves, depth := Specificity(p)
	e := Entry{
		Name:    name,
		Pattern: p,
		Handler: h,
		seq:     r.next,
		leaves:  leaves,
		depth:   depth,
	}
	r.next++

	// Insert after every entry that is at least as specific so equal
	// specificity keeps registration order.
	i := sort.Search(len(r.entries), func(i int) bool {
		return moreSpecific(e, r.entries[i])
	})
	r.entries = append(r.entries, Entry{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = e

	return r
}

func moreSpecific(a, b Entry) bool {
	if a.leaves != b.leaves {
		return a.leaves > b.leaves
	}
	return a.depth > b.depth
}

// Resolve returns the handler of the best matching entry, or nil.
func (r *Registry) Resolve(candidate any) Handler {
	e, ok := r.Lookup(candidate)
	if !ok {
		return nil
	}
	return e.Handler
}

// Lookup returns the best matching entry.
func (r *Registry) Lookup(candidate any) (Entry, bool) {
	for e := range r.ResolveAll(candidate) {
		return e, true
	}
	return Entry{}, false
}

// ResolveAll yields every matching entry from most to least specific.
// The sequence is lazy: matching stops as soon as the consumer stops.
func (r *Registry) ResolveAll(candidate any) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		fields, ok := Fields(candidate)
		if !ok {
			return
		}

		r.mu.RLock()
		entries := r.entries
		r.mu.RUnlock()

		for _, e := range entries {
			if !matchFields(e.Pattern, fields) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns a copy of all entries in resolution order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
