package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/signadot/jsc/eval"
	"github.com/signadot/jsc/extract"
	"github.com/signadot/jsc/format"
	"github.com/signadot/jsc/overlay"
	"github.com/signadot/jsc/schema"
	"github.com/signadot/jsc/shape"
)

var ErrNoDocuments = errors.New("no schema documents found")

// File is extra input registered for reference resolution only.
type File struct {
	Name string
	Data []byte
}

type config struct {
	format   format.Format
	repair   bool
	overlay  *overlay.Overlay
	filter   *eval.Filter
	parallel int
	log      *slog.Logger
	files    []File
}

type Option func(*config)

func WithFormat(f format.Format) Option {
	return func(c *config) { c.format = f }
}

// WithRepair repairs malformed JSON documents before parsing them.
func WithRepair(v bool) Option {
	return func(c *config) { c.repair = v }
}

func WithOverlay(o *overlay.Overlay) Option {
	return func(c *config) { c.overlay = o }
}

// WithFilter restricts the documents which are resolved. Documents which
// are not selected are still registered.
func WithFilter(f *eval.Filter) Option {
	return func(c *config) { c.filter = f }
}

func WithParallel(n int) Option {
	return func(c *config) { c.parallel = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFiles registers the documents of files without selecting them.
func WithFiles(files ...File) Option {
	return func(c *config) { c.files = append(c.files, files...) }
}

// Item is one candidate document of the input.
type Item struct {
	Index int
	Line  int
	// Source is the name of the file the document came from, empty for the
	// main input.
	Source   string
	Key      string
	Doc      *schema.Document
	Shape    *shape.Node
	Selected bool
	Err      error
}

func (it *Item) String() string {
	return fmt.Sprintf("%s document %d (line %d)", sourceName(it.Source), it.Index+1, it.Line)
}

func sourceName(src string) string {
	if src == "" {
		return "input"
	}
	return src
}

// Result is the outcome of a conversion run.
type Result struct {
	Registry *schema.Registry
	Resolver *shape.Resolver
	// Items are the candidates of the main input in order, followed by
	// those of extra files.
	Items []*Item
}

// Docs returns the items which parsed and were selected, in input order.
func (r *Result) Docs() []*Item {
	var res []*Item
	for _, it := range r.Items {
		if it.Err == nil && it.Selected {
			res = append(res, it)
		}
	}
	return res
}

// Roots returns Docs as resolution roots.
func (r *Result) Roots() []shape.Root {
	docs := r.Docs()
	res := make([]shape.Root, len(docs))
	for i, it := range docs {
		res[i] = shape.Root{Doc: it.Doc, BaseID: it.Key}
	}
	return res
}

// Errs joins the errors of all items.
func (r *Result) Errs() error {
	var errs []error
	for _, it := range r.Items {
		if it.Err != nil {
			errs = append(errs, it.Err)
		}
	}
	return errors.Join(errs...)
}

// Run extracts, parses, registers and resolves the documents in text.
// Documents which fail to parse are reported on their item and do not stop
// the run.
func Run(ctx context.Context, text []byte, opts ...Option) (*Result, error) {
	cfg := &config{log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(cfg)
	}
	items, err := cfg.items(text, "")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoDocuments
	}
	for i := range items {
		items[i].Selected = true
	}
	for _, f := range cfg.files {
		fItems, err := cfg.items(f.Data, f.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		items = append(items, fItems...)
	}
	reg := schema.NewRegistry()
	for _, it := range items {
		if it.Err != nil {
			continue
		}
		if prev, ok := reg.Lookup(it.Key); ok && prev != it.Doc {
			cfg.log.Warn("duplicate schema id, later document wins", "id", it.Key, "at", it.String())
		}
		reg.Register(it.Key, it.Doc)
	}
	for _, it := range items {
		if it.Err == nil {
			registerEmbedded(reg, it.Doc, it.Key)
		}
	}
	res := &Result{
		Registry: reg,
		Resolver: shape.NewResolver(reg, shape.WithLogger(cfg.log)),
		Items:    items,
	}
	for _, it := range items {
		if it.Err != nil || !it.Selected {
			continue
		}
		ok, err := cfg.filter.Match(it.Doc, it.Key)
		if err != nil {
			it.Err = fmt.Errorf("%s: %w", it, err)
			continue
		}
		it.Selected = ok
	}
	docs := res.Docs()
	roots := res.Roots()
	shapes, err := res.Resolver.ResolveAll(ctx, roots, cfg.parallel)
	if err != nil {
		return nil, err
	}
	for i, it := range docs {
		it.Shape = shapes[i]
	}
	return res, nil
}

func (cfg *config) items(text []byte, source string) ([]*Item, error) {
	var (
		cands []extract.Candidate
		err   error
	)
	if cfg.format.IsYAML() {
		cands, err = extract.YAMLDocuments(text)
		if err != nil {
			return nil, err
		}
	} else {
		cands, err = extract.Documents(text)
		if err != nil {
			cfg.log.Warn("ignoring unclosed document", "source", sourceName(source), "err", err)
		}
	}
	items := make([]*Item, len(cands))
	for i, c := range cands {
		it := &Item{Index: c.Index, Line: c.Line, Source: source}
		it.Doc, it.Err = cfg.parse(c.Text)
		if it.Err != nil {
			it.Err = fmt.Errorf("%s: %w", it, it.Err)
		} else {
			it.Key = schema.RegistryKey(it.Doc)
		}
		items[i] = it
	}
	return items, nil
}

func (cfg *config) parse(text []byte) (*schema.Document, error) {
	doc, err := schema.Parse(text, schema.ParseFormat(cfg.format), schema.ParseRepair(cfg.repair))
	if err != nil {
		return nil, err
	}
	if !cfg.overlay.Applies(schema.RegistryKey(doc)) {
		return doc, nil
	}
	if cfg.repair && cfg.format.IsJSON() {
		if text, err = schema.Repair(text); err != nil {
			return nil, err
		}
	}
	patched, err := cfg.overlay.Apply(text)
	if err != nil {
		return nil, err
	}
	return schema.Parse(patched)
}

// registerEmbedded registers the sub-schemas of doc which declare their
// own $id, unless a document is already registered under that id.
// Relative ids are resolved against the id of the enclosing schema.
func registerEmbedded(reg *schema.Registry, doc *schema.Document, baseID string) {
	var walk func(n *schema.Document, base string, top bool)
	walk = func(n *schema.Document, base string, top bool) {
		if n == nil {
			return
		}
		if !top && n.ID != "" {
			id := absID(n.ID, base)
			if _, ok := reg.Lookup(id); !ok {
				reg.Register(id, n)
			}
			base = id
		}
		for _, p := range n.Properties {
			walk(p.Schema, base, false)
		}
		for _, p := range n.Defs {
			walk(p.Schema, base, false)
		}
		walk(n.Items, base, false)
	}
	walk(doc, baseID, true)
}

func absID(id, base string) string {
	b, err := url.Parse(base)
	if err != nil {
		return id
	}
	r, err := url.Parse(id)
	if err != nil {
		return id
	}
	return b.ResolveReference(r).String()
}
