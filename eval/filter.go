package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/jsc/debug"
	"github.com/signadot/jsc/schema"
)

// Env is the environment a filter expression is evaluated in.
type Env struct {
	Key        string   `expr:"key"`
	ID         string   `expr:"id"`
	Name       string   `expr:"name"`
	Title      string   `expr:"title"`
	Type       string   `expr:"kind"`
	Properties []string `expr:"properties"`
	Refs       []string `expr:"refs"`
	Required   []string `expr:"required"`
}

// EnvOf is the environment of doc registered under key.
func EnvOf(doc *schema.Document, key string) Env {
	return Env{
		Key:        key,
		ID:         doc.ID,
		Name:       schema.Name(doc, key),
		Title:      doc.Title,
		Type:       string(doc.Type),
		Properties: doc.PropertyNames(),
		Refs:       doc.Refs(),
		Required:   doc.Required,
	}
}

// Filter selects documents with a boolean expression such as
//
//	kind == "object" && "address" in properties
type Filter struct {
	src string
}

// Compile checks src and returns a filter for it.
func Compile(src string) (*Filter, error) {
	if _, err := compile(src, nil); err != nil {
		return nil, err
	}
	return &Filter{src: src}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return "true"
	}
	return f.src
}

// Match reports whether doc, registered under key, is selected. A nil
// filter selects everything.
func (f *Filter) Match(doc *schema.Document, key string) (bool, error) {
	if f == nil {
		return true, nil
	}
	if doc == nil {
		return false, nil
	}
	prg, err := compile(f.src, doc)
	if err != nil {
		return false, err
	}
	res, err := expr.Run(prg, EnvOf(doc, key))
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", f.src, key, err)
	}
	ok, _ := res.(bool)
	if debug.Emit() {
		debug.Logf("filter %q on %s: %t\n", f.src, key, ok)
	}
	return ok, nil
}

func compile(src string, doc *schema.Document) (*vm.Program, error) {
	opts := append([]expr.Option{expr.Env(Env{}), expr.AsBool()}, exprOpts(doc)...)
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return prg, nil
}
