package markdown

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/signadot/jsc/debug"
	"github.com/signadot/jsc/schema"
	"github.com/signadot/jsc/shape"
)

const (
	tableHeader = "| Property | Type    | Description | Required | Constraints |\n" +
		"|----------|---------|-------------|----------|-------------|\n"
	embeddedPrefix = "Embedded: "
)

// Emitter renders schema documents as Markdown tables.
type Emitter struct {
	res *shape.Resolver
	log *slog.Logger
}

type Option func(*Emitter)

func WithLogger(l *slog.Logger) Option {
	return func(e *Emitter) {
		if l != nil {
			e.log = l
		}
	}
}

func New(res *shape.Resolver, opts ...Option) *Emitter {
	e := &Emitter{res: res, log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Documents renders roots as top level sections separated by two blank
// lines.
func (e *Emitter) Documents(roots []shape.Root) (string, error) {
	rendered := make(map[string]bool, len(roots))
	for _, r := range roots {
		rendered[rootKey(r.Doc, r.BaseID)] = true
	}
	parts := make([]string, 0, len(roots))
	for _, r := range roots {
		s, err := e.document(r.Doc, r.BaseID, rendered)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n\n") + "\n", nil
}

// Document renders a single top level section for doc registered as
// baseID. Referenced documents are embedded below it.
func (e *Emitter) Document(doc *schema.Document, baseID string) (string, error) {
	s, err := e.document(doc, baseID, nil)
	if err != nil {
		return "", err
	}
	return s + "\n", nil
}

func (e *Emitter) document(doc *schema.Document, baseID string, rendered map[string]bool) (string, error) {
	if doc == nil {
		return "", shape.ErrNilDocument
	}
	key := rootKey(doc, baseID)
	w := &writer{
		e:        e,
		root:     key,
		rendered: rendered,
	}
	w.section("## "+schema.Name(doc, schema.BaseName(key)), doc, key, shape.NewVisited(key))
	return strings.TrimRight(w.b.String(), "\n"), nil
}

func rootKey(doc *schema.Document, baseID string) string {
	if baseID != "" {
		return baseID
	}
	return schema.RegistryKey(doc)
}

type writer struct {
	e    *Emitter
	root string
	// rendered holds the keys of documents with a top level section.
	// References to them link to that section instead of embedding a
	// copy.
	rendered map[string]bool
	b        strings.Builder
}

// pending is a section to write after the current table.
type pending struct {
	heading string
	doc     *schema.Document
	baseID  string
	visited shape.Visited
}

func (w *writer) section(heading string, doc *schema.Document, baseID string, visited shape.Visited) {
	if w.b.Len() != 0 {
		w.b.WriteString("\n")
	}
	w.b.WriteString(heading)
	w.b.WriteString("\n")
	if !doc.HasProperties() {
		return
	}
	w.b.WriteString("\n")
	w.b.WriteString(tableHeader)
	var after []pending
	for _, p := range doc.Properties {
		row, sub := w.row(doc, p, baseID, heading, visited)
		w.b.WriteString(row)
		w.b.WriteString("\n")
		if sub != nil {
			after = append(after, *sub)
		}
	}
	for _, s := range after {
		if debug.Emit() {
			debug.Logf("markdown: %s: embed %s (visited %v)\n", heading, s.heading, s.visited.Keys())
		}
		w.section(s.heading, s.doc, s.baseID, s.visited)
	}
}

func (w *writer) row(parent *schema.Document, p schema.Property, baseID, heading string, visited shape.Visited) (string, *pending) {
	required := "No"
	if parent.IsRequired(p.Name) {
		required = "Yes"
	}
	node := p.Schema
	switch {
	case node.IsRef():
		link, sub := w.ref(node, baseID, visited)
		if sub == nil && link.inline != nil {
			return fmt.Sprintf("| %s | %s | %s | %s | %s |", cell(p.Name), cell(typeName(link.inline)),
				cell(description(node, link.inline)), required, cell(constraints(link.inline))), nil
		}
		return fmt.Sprintf("| %s | object | %s | %s | |", cell(p.Name), link.text, required), sub
	case node != nil && node.Type == schema.ArrayType && node.Items.IsRef():
		link, sub := w.ref(node.Items, baseID, visited)
		item := link.label
		if link.inline != nil {
			item = typeName(link.inline)
		}
		desc := cell(node.Description)
		if desc == "" && link.inline == nil {
			desc = link.text
		}
		return fmt.Sprintf("| %s | array[%s] | %s | %s | %s |", cell(p.Name), cell(item), desc, required,
			cell(constraints(node))), sub
	}
	var sub *pending
	if obj := nestedObject(node); obj != nil {
		sub = &pending{
			heading: "### " + strings.TrimLeft(heading, "# ") + "." + p.Name,
			doc:     obj,
			baseID:  baseID,
			visited: visited,
		}
	}
	return fmt.Sprintf("| %s | %s | %s | %s | %s |", cell(p.Name), cell(typeName(node)),
		cell(description(node, nil)), required, cell(constraints(node))), sub
}

// nestedObject is the inline object schema documented in its own section:
// an object property with properties, or the items of an array of them.
func nestedObject(node *schema.Document) *schema.Document {
	if node == nil {
		return nil
	}
	if node.Type == schema.ArrayType && node.Items != nil && !node.Items.IsRef() && node.Items.HasProperties() {
		return node.Items
	}
	if !node.IsRef() && node.HasProperties() {
		return node
	}
	return nil
}

type refLink struct {
	label string
	// text is the description cell for the reference.
	text string
	// inline is the target when it is a scalar schema documented in the
	// referring row.
	inline *schema.Document
}

func (w *writer) ref(node *schema.Document, baseID string, visited shape.Visited) (refLink, *pending) {
	label := refLabel(node.Ref, baseID)
	t, err := w.e.res.Deref(node, baseID, visited)
	switch {
	case errors.Is(err, shape.ErrCycle):
		// the target is already documented on this path: link to it.
		return refLink{label: label, text: w.linkText(label, t.Key)}, nil
	case err != nil:
		w.e.log.Warn("unresolved reference", "ref", node.Ref, "base", baseID)
		return refLink{label: label, text: "Unresolved: " + cell(node.Ref)}, nil
	}
	if t.Doc.Type != "" && t.Doc.Type != schema.ObjectType && !t.Doc.HasProperties() {
		return refLink{label: label, inline: t.Doc}, nil
	}
	link := refLink{label: label, text: w.linkText(label, t.Key)}
	if w.rendered[t.Key] || t.Key == w.root {
		return link, nil
	}
	return link, &pending{
		heading: "### " + embeddedPrefix + label,
		doc:     t.Doc,
		baseID:  t.ID,
		visited: t.Visited,
	}
}

// linkText links to the section of the document key: its top level
// section if it has one, otherwise its embedded section.
func (w *writer) linkText(label, key string) string {
	anchor := slug(label)
	if !w.rendered[key] && key != w.root {
		anchor = slug(embeddedPrefix + label)
	}
	return fmt.Sprintf("%s[%s](#%s)", embeddedPrefix, label, anchor)
}

// refLabel names a reference target: the last fragment token, or the
// base name of the document.
func refLabel(ref, baseID string) string {
	id, frag := schema.SplitRef(ref)
	if toks := schema.PointerTokens(frag); len(toks) != 0 {
		return toks[len(toks)-1]
	}
	if id == "" {
		id = baseID
	}
	return schema.BaseName(id)
}

func typeName(node *schema.Document) string {
	switch {
	case node == nil:
		return "any"
	case node.Type == schema.ArrayType:
		item := "any"
		if node.Items != nil {
			item = typeName(node.Items)
			if node.Items.IsRef() {
				item = refLabel(node.Items.Ref, "")
			}
		}
		return "array[" + item + "]"
	case len(node.Types) > 1:
		ts := make([]string, len(node.Types))
		for i, t := range node.Types {
			ts[i] = string(t)
		}
		return strings.Join(ts, ", ")
	case node.Type == "":
		return "object"
	}
	return string(node.Type)
}

func description(node, target *schema.Document) string {
	if node != nil && node.Description != "" {
		return node.Description
	}
	if target != nil {
		return target.Description
	}
	return ""
}

func constraints(node *schema.Document) string {
	if node == nil {
		return ""
	}
	var cs []string
	if node.Format != "" {
		cs = append(cs, "format: "+node.Format)
	}
	if node.Minimum != "" {
		cs = append(cs, "min: "+node.Minimum)
	}
	if node.Maximum != "" {
		cs = append(cs, "max: "+node.Maximum)
	}
	if node.MinLength != nil {
		cs = append(cs, fmt.Sprintf("minLength: %d", *node.MinLength))
	}
	if node.MaxLength != nil {
		cs = append(cs, fmt.Sprintf("maxLength: %d", *node.MaxLength))
	}
	if node.Pattern != "" {
		cs = append(cs, "pattern: "+node.Pattern)
	}
	if len(node.Enum) != 0 {
		vs := make([]string, len(node.Enum))
		for i, v := range node.Enum {
			vs[i] = valueText(v)
		}
		cs = append(cs, "enum: ["+strings.Join(vs, ", ")+"]")
	}
	if node.HasDefault {
		cs = append(cs, "default: "+valueText(node.Default))
	}
	return strings.Join(cs, ", ")
}

func valueText(v any) string {
	if v == nil {
		return "null"
	}
	if s := schema.NumberText(v); s != "" {
		if _, isString := v.(string); !isString {
			return s
		}
	}
	return fmt.Sprint(v)
}

// cell escapes s for use in a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

// slug is the anchor GitHub generates for a heading.
func slug(heading string) string {
	b := &strings.Builder{}
	for _, r := range strings.ToLower(heading) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
