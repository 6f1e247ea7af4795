package shape

import (
	"context"
	"log/slog"

	"github.com/signadot/jsc/debug"
	"github.com/signadot/jsc/schema"
	"golang.org/x/sync/errgroup"
)

// Resolver turns schema documents into shapes, following references through
// a registry. A Resolver only reads its registry and may be shared by
// goroutines once the registry is populated.
type Resolver struct {
	reg *schema.Registry
	log *slog.Logger
}

type ResolverOption func(*Resolver)

// WithLogger sets the logger unresolved references are reported to.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

func NewResolver(reg *schema.Registry, opts ...ResolverOption) *Resolver {
	if reg == nil {
		reg = schema.NewRegistry()
	}
	r := &Resolver{reg: reg, log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Registry() *schema.Registry {
	return r.reg
}

// Resolve resolves a top level document whose id is baseID.
func (r *Resolver) Resolve(doc *schema.Document, baseID string) (*Node, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if baseID == "" {
		baseID = schema.RegistryKey(doc)
	}
	return r.ResolveShape(doc, baseID, schema.Name(doc, "unnamedSchema"), NewVisited(baseID)), nil
}

// ResolveShape resolves node, found in the document baseID, to a shape.
// name is used for nodes that cannot be expanded and carry no name of
// their own. visited holds the references open on the path to node.
func (r *Resolver) ResolveShape(node *schema.Document, baseID, name string, visited Visited) *Node {
	if node == nil {
		return Primitive(Undefined)
	}
	if node.ID != "" && node.ID != baseID {
		if id, ok := r.reg.ResolveID(node.ID, baseID); ok {
			baseID = id
		} else {
			baseID = node.ID
		}
	}
	if node.IsRef() {
		return r.resolveRef(node.Ref, baseID, visited)
	}
	switch {
	case node.Type == schema.ObjectType && node.HasProperties():
		fields := make([]string, len(node.Properties))
		values := make([]*Node, len(node.Properties))
		for i, p := range node.Properties {
			fields[i] = p.Name
			// visited is never modified, so each property starts from the
			// same set and siblings cannot affect one another.
			values[i] = r.ResolveShape(p.Schema, baseID, p.Name, visited)
		}
		return Record(fields, values)
	case node.Type == schema.ArrayType && node.Items != nil:
		return Array(r.ResolveShape(node.Items, baseID, name+"Item", visited))
	case isMixed(node):
		return Primitive(Mixed)
	}
	if p, ok := primOf(node.Type); ok {
		return Primitive(p)
	}
	return Named(schema.DisplayName(node, name))
}

func (r *Resolver) resolveRef(ref, baseID string, visited Visited) *Node {
	t, err := r.Deref(&schema.Document{Ref: ref}, baseID, visited)
	switch err {
	case nil:
	case ErrCycle:
		if debug.Resolve() {
			debug.Logf("resolve: %q from %q: cycle on %q\n", ref, baseID, t.Key)
		}
		return Named(t.Name)
	default:
		r.log.Warn("unresolved reference", "ref", ref, "base", baseID)
		return Primitive(Undefined)
	}
	if debug.Resolve() {
		debug.Logf("resolve: %q from %q -> %q\n", ref, baseID, t.Key)
	}
	return r.ResolveShape(t.Doc, t.ID, t.Name, t.Visited)
}

// Target is the result of dereferencing a node.
type Target struct {
	// Doc is the first non reference node reached.
	Doc *schema.Document
	// ID is the id of the document containing Doc.
	ID string
	// Key identifies the last reference followed, Name is its display name.
	Key  string
	Name string
	// Visited is the input set extended with every reference followed.
	Visited Visited
}

// Deref follows node's reference, and any reference it leads to, until a
// node which is not a reference. A node that is not a reference is
// returned as is.
//
// ErrCycle is returned when a reference is already in visited and
// ErrUnresolved when a target does not exist. In both cases Key and Name
// describe the offending reference.
func (r *Resolver) Deref(node *schema.Document, baseID string, visited Visited) (Target, error) {
	t := Target{Doc: node, ID: baseID, Visited: visited}
	for t.Doc.IsRef() {
		ref := t.Doc.Ref
		id, frag := schema.SplitRef(ref)
		docID, ok := r.reg.ResolveID(id, t.ID)
		if !ok {
			docID = id
			if docID == "" {
				docID = t.ID
			}
		}
		t.Key = schema.RefKey(docID, frag)
		t.Name = schema.RefName(ref, t.ID)
		if t.Visited.Has(t.Key) {
			return t, ErrCycle
		}
		doc, targetID, ok := r.reg.ResolvePointer(ref, t.ID)
		if !ok {
			return t, ErrUnresolved
		}
		t.Visited = t.Visited.With(t.Key)
		t.Doc, t.ID = doc, targetID
	}
	return t, nil
}

// Root is a top level document to resolve.
type Root struct {
	Doc    *schema.Document
	BaseID string
}

// ResolveAll resolves roots, using up to parallel goroutines when
// parallel > 1. Results are in the order of roots.
func (r *Resolver) ResolveAll(ctx context.Context, roots []Root, parallel int) ([]*Node, error) {
	res := make([]*Node, len(roots))
	if parallel <= 1 {
		for i, root := range roots {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, err := r.Resolve(root.Doc, root.BaseID)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return res, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := r.Resolve(root.Doc, root.BaseID)
			if err != nil {
				return err
			}
			res[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func primOf(t schema.Type) (Prim, bool) {
	switch t {
	case schema.StringType:
		return String, true
	case schema.IntegerType:
		return Int, true
	case schema.NumberType:
		return Float, true
	case schema.BooleanType:
		return Bool, true
	case schema.NullType:
		return Null, true
	}
	return Undefined, false
}

// isMixed reports whether node admits more than one non null type.
func isMixed(node *schema.Document) bool {
	n := 0
	for _, t := range node.Types {
		if t != schema.NullType {
			n++
		}
	}
	return n > 1
}
