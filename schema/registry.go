package schema

import (
	"net/url"
	"slices"
	"sync"

	"github.com/signadot/jsc/debug"
)

// Registry maps document ids to parsed documents for one conversion run.
// It is populated before resolution starts and only read afterwards.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*Document)}
}

// Register stores doc under id, replacing any previous entry.
func (r *Registry) Register(id string, doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if debug.Registry() {
		_, replaced := r.docs[id]
		debug.Logf("registry: register %q replaced=%t\n", id, replaced)
	}
	r.docs[id] = doc
}

// Lookup looks up a document by id
func (r *Registry) Lookup(id string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	return d, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.docs))
	for id := range r.docs {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// ResolveID finds the registered id a reference's document part names.
// An empty id means baseID. Ids that are not registered verbatim are
// resolved as URI references against baseID, so "address.json" from
// "https://x.io/s/person.json" finds "https://x.io/s/address.json".
func (r *Registry) ResolveID(id, baseID string) (string, bool) {
	if id == "" {
		id = baseID
	}
	if _, ok := r.Lookup(id); ok {
		return id, true
	}
	if baseID == "" || baseID == id {
		return "", false
	}
	base, err := url.Parse(baseID)
	if err != nil {
		return "", false
	}
	rel, err := url.Parse(id)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(rel).String()
	if _, ok := r.Lookup(abs); ok {
		return abs, true
	}
	return "", false
}

// ResolvePointer resolves ref relative to the document baseID. It returns
// the target node and the id of the document containing it. Nothing is
// returned unless the document and every pointer segment exist.
func (r *Registry) ResolvePointer(ref, baseID string) (*Document, string, bool) {
	id, frag := SplitRef(ref)
	targetID, ok := r.ResolveID(id, baseID)
	if !ok {
		if debug.Registry() {
			debug.Logf("registry: %q from %q: no document %q\n", ref, baseID, id)
		}
		return nil, "", false
	}
	doc, _ := r.Lookup(targetID)
	node, ok := doc.Lookup(PointerTokens(frag))
	if !ok {
		if debug.Registry() {
			debug.Logf("registry: %q from %q: no path %q in %q\n", ref, baseID, frag, targetID)
		}
		return nil, "", false
	}
	return node, targetID, true
}
