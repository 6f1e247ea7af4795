package convert

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsc/eval"
	"github.com/signadot/jsc/format"
	"github.com/signadot/jsc/overlay"
	"github.com/signadot/jsc/schema"
)

const input = `Some schemas pasted from the wiki:

{"$id":"simple.json","type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"}}}

The person refers to an address:
{"$id":"person.json","type":"object","properties":{"name":{"type":"string"},"address":{"$ref":"address.json"}}}
{"$id":"address.json","type":"object","properties":{"street":{"type":"string"},"city":{"type":"string"}}}

and a cycle
{"$id":"circular1.json","type":"object","properties":{"ref2":{"$ref":"circular2.json"}}}
{"$id":"circular2.json","type":"object","properties":{"ref1":{"$ref":"circular1.json"}}}
`

func shapes(res *Result) map[string]string {
	m := map[string]string{}
	for _, it := range res.Docs() {
		m[it.Key] = it.Shape.String()
	}
	return m
}

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), []byte(input))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"simple.json":    "array{name:string,age:int}",
		"person.json":    "array{name:string,address:array{street:string,city:string}}",
		"address.json":   "array{street:string,city:string}",
		"circular1.json": "array{ref2:array{ref1:Circular1}}",
		"circular2.json": "array{ref1:array{ref2:Circular2}}",
	}
	if diff := cmp.Diff(want, shapes(res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if res.Errs() != nil {
		t.Errorf("errs: %v", res.Errs())
	}
	if res.Registry.Len() != 5 {
		t.Errorf("registry has %d documents", res.Registry.Len())
	}
	keys := []string{}
	for _, it := range res.Items {
		keys = append(keys, it.Key)
	}
	if diff := cmp.Diff([]string{"simple.json", "person.json", "address.json", "circular1.json", "circular2.json"}, keys); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if l := res.Items[1].Line; l != 6 {
		t.Errorf("person at line %d", l)
	}
}

func TestRunParseErrors(t *testing.T) {
	in := `{"$id":"bad.json","type": }
{"$id":"a.json","type":"object","properties":{"b":{"$ref":"bad.json"}}}
{"$id":"c.json","type":"string"}`
	res, err := Run(context.Background(), []byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Errs(), schema.ErrParse) {
		t.Fatalf("errs: %v", res.Errs())
	}
	if !strings.Contains(res.Errs().Error(), "input document 1 (line 1)") {
		t.Errorf("errs: %v", res.Errs())
	}
	want := map[string]string{
		"a.json": "array{b:undefined}",
		"c.json": "string",
	}
	if diff := cmp.Diff(want, shapes(res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunOptions(t *testing.T) {
	personOnly := `{"$id":"person.json","type":"object","properties":{"address":{"$ref":"address.json"}}}`
	address := `{"$id":"address.json","type":"object","properties":{"city":{"type":"string"}}}`
	mustFilter := func(src string) *eval.Filter {
		f, err := eval.Compile(src)
		if err != nil {
			t.Fatal(err)
		}
		return f
	}
	mustOverlay := func(src string, opts ...overlay.Option) *overlay.Overlay {
		o, err := overlay.Load([]byte(src), opts...)
		if err != nil {
			t.Fatal(err)
		}
		return o
	}
	tests := []struct {
		name  string
		input string
		opts  []Option
		want  map[string]string
	}{
		{
			name:  "repair",
			input: `{'$id':'r.json','type':'object','properties':{'a':{'type':'string'},},}`,
			opts:  []Option{WithRepair(true)},
			want:  map[string]string{"r.json": "array{a:string}"},
		},
		{
			name:  "repair with overlay",
			input: `{"$id":"a.json","type":"object","properties":{"x":{"type":"string"},}}`,
			opts: []Option{WithRepair(true),
				WithOverlay(mustOverlay(`{"title":"Patched","properties":{"y":{"type":"boolean"}}}`))},
			want: map[string]string{"a.json": "array{x:string,y:bool}"},
		},
		{
			name:  "yaml",
			input: "$id: a.json\ntype: object\nproperties:\n  z:\n    type: number\n  b:\n    $ref: b.json\n---\n$id: b.json\ntype: boolean\n",
			opts:  []Option{WithFormat(format.YAMLFormat)},
			want:  map[string]string{"a.json": "array{z:float,b:bool}", "b.json": "bool"},
		},
		{
			name:  "filter",
			input: personOnly + address,
			opts:  []Option{WithFilter(mustFilter(`name == "person"`))},
			want:  map[string]string{"person.json": "array{address:array{city:string}}"},
		},
		{
			name:  "files",
			input: personOnly,
			opts:  []Option{WithFiles(File{Name: "defs.json", Data: []byte(address)})},
			want:  map[string]string{"person.json": "array{address:array{city:string}}"},
		},
		{
			name:  "overlay",
			input: personOnly + address,
			opts: []Option{WithOverlay(mustOverlay(`{"properties":{"zip":{"type":"integer"}}}`,
				overlay.WithTarget("address.json")))},
			want: map[string]string{
				"person.json":  "array{address:array{city:string,zip:int}}",
				"address.json": "array{city:string,zip:int}",
			},
		},
		{
			name:  "parallel",
			input: input,
			opts:  []Option{WithParallel(3)},
			want: map[string]string{
				"simple.json":    "array{name:string,age:int}",
				"person.json":    "array{name:string,address:array{street:string,city:string}}",
				"address.json":   "array{street:string,city:string}",
				"circular1.json": "array{ref2:array{ref1:Circular1}}",
				"circular2.json": "array{ref1:array{ref2:Circular2}}",
			},
		},
		{
			name: "embedded ids",
			input: `{"$id":"https://x.io/a.json","type":"object","properties":{"b":{"$ref":"inner.json"}},
				"$defs":{"inner":{"$id":"inner.json","type":"object","properties":{"v":{"type":"integer"}}}}}`,
			want: map[string]string{"https://x.io/a.json": "array{b:array{v:int}}"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(context.Background(), []byte(tt.input), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if err := res.Errs(); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, shapes(res)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunNoDocuments(t *testing.T) {
	_, err := Run(context.Background(), []byte("nothing to see"))
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("got %v", err)
	}
}

func TestRunDuplicateWarns(t *testing.T) {
	buf := &bytes.Buffer{}
	in := `{"$id":"a.json","type":"string"} {"$id":"a.json","type":"integer"}`
	res, err := Run(context.Background(), []byte(in), WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "duplicate schema id") {
		t.Errorf("log: %q", buf.String())
	}
	doc, _ := res.Registry.Lookup("a.json")
	if doc.Type != schema.IntegerType {
		t.Errorf("first document kept")
	}
}

func TestRunUnclosedWarns(t *testing.T) {
	buf := &bytes.Buffer{}
	in := "{\"$id\":\"a.json\",\"type\":\"string\"}\n{\"$id\":\"b.json\",\"properties\":{"
	res, err := Run(context.Background(), []byte(in), WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ignoring unclosed document") || !strings.Contains(buf.String(), "line 2") {
		t.Errorf("log: %q", buf.String())
	}
	if len(res.Items) != 1 || res.Items[0].Key != "a.json" {
		t.Errorf("items: %v", res.Items)
	}
}
