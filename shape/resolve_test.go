package shape

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/signadot/jsc/schema"
)

func testRegistry(t *testing.T, docs ...string) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	for _, s := range docs {
		doc, err := schema.Parse([]byte(s))
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		reg.Register(schema.RegistryKey(doc), doc)
	}
	return reg
}

func resolveID(t *testing.T, reg *schema.Registry, id string, opts ...ResolverOption) *Node {
	t.Helper()
	doc, ok := reg.Lookup(id)
	if !ok {
		t.Fatalf("no document %q", id)
	}
	n, err := NewResolver(reg, opts...).Resolve(doc, id)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

const (
	personDoc = `{"$id":"person.json","type":"object","properties":{
		"name":{"type":"string"},
		"address":{"$ref":"address.json"}}}`
	addressDoc = `{"$id":"address.json","type":"object","properties":{
		"street":{"type":"string"},
		"city":{"type":"string"}}}`
	circular1Doc = `{"$id":"circular1.json","type":"object","properties":{"ref2":{"$ref":"circular2.json"}}}`
	circular2Doc = `{"$id":"circular2.json","type":"object","properties":{"ref1":{"$ref":"circular1.json"}}}`
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		docs []string
		id   string
		want string
	}{
		{
			name: "simple",
			docs: []string{`{"$id":"simple.json","type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"}}}`},
			id:   "simple.json",
			want: "array{name:string,age:int}",
		},
		{
			name: "ref",
			docs: []string{personDoc, addressDoc},
			id:   "person.json",
			want: "array{name:string,address:array{street:string,city:string}}",
		},
		{
			name: "cycle",
			docs: []string{circular1Doc, circular2Doc},
			id:   "circular1.json",
			want: "array{ref2:array{ref1:Circular1}}",
		},
		{
			name: "unresolved",
			docs: []string{`{"$id":"a.json","type":"object","properties":{"x":{"$ref":"missing.json"},"y":{"type":"boolean"}}}`},
			id:   "a.json",
			want: "array{x:undefined,y:bool}",
		},
		{
			name: "siblings expand shared target",
			docs: []string{
				`{"$id":"p.json","type":"object","properties":{"home":{"$ref":"address.json"},"work":{"$ref":"address.json"}}}`,
				addressDoc,
			},
			id:   "p.json",
			want: "array{home:array{street:string,city:string},work:array{street:string,city:string}}",
		},
		{
			name: "self",
			docs: []string{`{"$id":"node.json","type":"object","properties":{"value":{"type":"integer"},"next":{"$ref":"#"}}}`},
			id:   "node.json",
			want: "array{value:int,next:Node}",
		},
		{
			name: "fragment cycle",
			docs: []string{`{"$id":"tree.json","type":"object","properties":{"root":{"$ref":"#/$defs/tree"}},
				"$defs":{"tree":{"type":"object","properties":{
					"label":{"type":"string"},
					"children":{"type":"array","items":{"$ref":"#/$defs/tree"}}}}}}`},
			id:   "tree.json",
			want: "array{root:array{label:string,children:array<Tree>}}",
		},
		{
			name: "primitives",
			docs: []string{`{"$id":"p.json","type":"object","properties":{
				"s":{"type":"string"},"i":{"type":"integer"},"f":{"type":"number"},
				"b":{"type":"boolean"},"n":{"type":"null"},
				"m":{"type":["string","integer"]},"o":{"type":["string","null"]}}}`},
			id:   "p.json",
			want: "array{s:string,i:int,f:float,b:bool,n:null,m:mixed,o:string}",
		},
		{
			name: "unexpanded",
			docs: []string{`{"$id":"u.json","type":"object","properties":{
				"list":{"type":"array"},
				"meta":{"type":"object"},
				"amount":{"title":"Money Amount"},
				"any":true,
				"tags":{"type":"array","items":{"type":"string"}},
				"things":{"type":"array","items":{}}}}`},
			id:   "u.json",
			want: "array{list:List,meta:Meta,amount:MoneyAmount,any:undefined,tags:array<string>,things:array<ThingsItem>}",
		},
		{
			name: "nested id rebases refs",
			docs: []string{
				`{"$id":"https://x.io/a/outer.json","type":"object","properties":{
					"inner":{"$id":"https://x.io/b/inner.json","type":"object","properties":{"sib":{"$ref":"sib.json"}}}}}`,
				`{"$id":"https://x.io/b/sib.json","type":"object","properties":{"v":{"type":"string"}}}`,
			},
			id:   "https://x.io/a/outer.json",
			want: "array{inner:array{sib:array{v:string}}}",
		},
		{
			name: "relative ref",
			docs: []string{
				`{"$id":"https://x.io/s/line.json","type":"object","properties":{"order":{"$ref":"order.json#/properties/total"}}}`,
				`{"$id":"https://x.io/s/order.json","type":"object","properties":{"total":{"type":"number"}}}`,
			},
			id:   "https://x.io/s/line.json",
			want: "array{order:float}",
		},
		{
			name: "untitled root",
			docs: []string{`{"type":"string"}`},
			id:   schema.UnnamedKey,
			want: "string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := testRegistry(t, tt.docs...)
			got := resolveID(t, reg, tt.id)
			if got.String() != tt.want {
				t.Errorf("got\n\t%s\nwant\n\t%s", got, tt.want)
			}
		})
	}
}

func TestResolveCycleShape(t *testing.T) {
	reg := testRegistry(t, circular1Doc, circular2Doc)
	got := resolveID(t, reg, "circular1.json")
	want := Record([]string{"ref2"}, []*Node{
		Record([]string{"ref1"}, []*Node{Named("Circular1")}),
	})
	if !Equal(got, want) {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestResolveIdempotent(t *testing.T) {
	reg := testRegistry(t, personDoc, addressDoc, circular1Doc, circular2Doc)
	for _, id := range reg.IDs() {
		a := resolveID(t, reg, id)
		b := resolveID(t, reg, id)
		if !Equal(a, b) {
			t.Errorf("%s: %s != %s", id, a, b)
		}
	}
}

func TestResolveNil(t *testing.T) {
	_, err := NewResolver(nil).Resolve(nil, "x")
	if !errors.Is(err, ErrNilDocument) {
		t.Errorf("got %v", err)
	}
}

func TestResolveLogsUnresolved(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, nil))
	reg := testRegistry(t, `{"$id":"a.json","type":"object","properties":{"x":{"$ref":"missing.json"}}}`)
	resolveID(t, reg, "a.json", WithLogger(log))
	out := buf.String()
	if !strings.Contains(out, "unresolved reference") || !strings.Contains(out, "ref=missing.json") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestDeref(t *testing.T) {
	reg := testRegistry(t, `{"$id":"chain.json","$defs":{
		"a":{"$ref":"#/$defs/b"},
		"b":{"$ref":"#/$defs/c"},
		"c":{"type":"string"},
		"x":{"$ref":"#/$defs/y"},
		"y":{"$ref":"#/$defs/x"},
		"m":{"$ref":"nowhere.json"}}}`)
	r := NewResolver(reg)
	tests := []struct {
		name    string
		ref     string
		err     error
		key     string
		refName string
		visited int
	}{
		{name: "chain", ref: "#/$defs/a", key: "chain.json#/$defs/c", refName: "C", visited: 4},
		{name: "loop", ref: "#/$defs/x", err: ErrCycle, key: "chain.json#/$defs/x", refName: "X", visited: 3},
		{name: "missing", ref: "#/$defs/m", err: ErrUnresolved, key: "nowhere.json", refName: "Nowhere", visited: 2},
		{name: "self", ref: "#", err: ErrCycle, key: "chain.json", refName: "Chain", visited: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Deref(&schema.Document{Ref: tt.ref}, "chain.json", NewVisited("chain.json"))
			if !errors.Is(err, tt.err) {
				t.Fatalf("err %v want %v", err, tt.err)
			}
			if got.Key != tt.key || got.Name != tt.refName || got.Visited.Len() != tt.visited {
				t.Errorf("got key %q name %q visited %v", got.Key, got.Name, got.Visited.Keys())
			}
			if err == nil && (got.Doc == nil || got.Doc.Type != schema.StringType || got.ID != "chain.json") {
				t.Errorf("bad target %+v", got)
			}
		})
	}
}

func TestDerefNonRef(t *testing.T) {
	doc := &schema.Document{Type: schema.StringType}
	v := NewVisited("a")
	got, err := NewResolver(nil).Deref(doc, "a", v)
	if err != nil || got.Doc != doc || got.ID != "a" || got.Visited.Len() != 1 {
		t.Errorf("got %+v, %v", got, err)
	}
}

func TestResolveAll(t *testing.T) {
	reg := testRegistry(t, personDoc, addressDoc, circular1Doc, circular2Doc)
	var roots []Root
	for _, id := range reg.IDs() {
		doc, _ := reg.Lookup(id)
		roots = append(roots, Root{Doc: doc, BaseID: id})
	}
	r := NewResolver(reg)
	seq, err := r.ResolveAll(context.Background(), roots, 1)
	if err != nil {
		t.Fatal(err)
	}
	par, err := r.ResolveAll(context.Background(), roots, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range roots {
		if !Equal(seq[i], par[i]) {
			t.Errorf("%s: %s != %s", roots[i].BaseID, seq[i], par[i])
		}
	}
	if got := seq[0].String(); got != "array{street:string,city:string}" {
		t.Errorf("order: first result %s", got)
	}

	_, err = r.ResolveAll(context.Background(), append(roots, Root{BaseID: "nil"}), 2)
	if !errors.Is(err, ErrNilDocument) {
		t.Errorf("got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ResolveAll(ctx, roots, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}
