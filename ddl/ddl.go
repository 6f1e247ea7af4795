package ddl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/jsc/debug"
	"github.com/signadot/jsc/schema"
	"github.com/signadot/jsc/shape"
)

const Note = "-- Note: Adjust schema as needed for your specific requirements and database system."

// Emitter renders schema documents as CREATE TABLE statements.
type Emitter struct {
	res     *shape.Resolver
	dialect Dialect
	note    bool
	log     *slog.Logger
}

type Option func(*Emitter)

func WithDialect(d Dialect) Option {
	return func(e *Emitter) { e.dialect = d }
}

// WithNote appends Note to scripts.
func WithNote(v bool) Option {
	return func(e *Emitter) { e.note = v }
}

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

type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	// Default is an SQL literal, empty for none.
	Default string
	Comment string
}

type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

type Index struct {
	Name   string
	Column string
}

// Table is one table derived from a schema document.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	Uniques     []string
	Indexes     []Index

	dialect Dialect
}

// Table derives the table of doc, registered as baseID.
func (e *Emitter) Table(doc *schema.Document, baseID string) (*Table, error) {
	if doc == nil {
		return nil, shape.ErrNilDocument
	}
	if baseID == "" {
		baseID = schema.RegistryKey(doc)
	}
	t := &Table{Name: tableName(doc, baseID), dialect: e.dialect}
	hasPK := false
	for _, p := range doc.Properties {
		col := snakeCase(p.Name)
		if col == "" {
			col = "column"
		}
		required := doc.IsRequired(p.Name)
		node := p.Schema
		if node.IsRef() {
			ref := e.reference(node, baseID, t.Name)
			if ref.inline == nil {
				fk := fkColumn(col)
				t.Columns = append(t.Columns, Column{Name: fk, Type: "INT", NotNull: required})
				t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
					Name:      "fk_" + t.Name + "_" + fk,
					Column:    fk,
					RefTable:  ref.table,
					RefColumn: ref.column,
				})
				t.Indexes = append(t.Indexes, Index{Name: "idx_" + t.Name + "_" + fk, Column: fk})
				if isUnique(node) {
					t.Uniques = append(t.Uniques, fk)
				}
				continue
			}
			node = ref.inline
		}
		c := Column{Name: col, NotNull: required}
		c.Type, c.PrimaryKey, c.Comment = columnType(node)
		if c.PrimaryKey {
			if hasPK {
				c.PrimaryKey = false
			} else {
				hasPK = true
				c.NotNull = false
			}
		}
		if node != nil && node.HasDefault {
			c.Default = literal(node.Default)
		}
		t.Columns = append(t.Columns, c)
		if isUnique(node) {
			t.Uniques = append(t.Uniques, col)
		}
	}
	if !hasPK {
		t.Columns = append([]Column{{Name: "id", Type: "INT", PrimaryKey: true}}, t.Columns...)
	}
	if debug.Emit() {
		debug.Logf("ddl: table %s from %s: %d columns %d foreign keys\n", t.Name, baseID, len(t.Columns), len(t.ForeignKeys))
	}
	return t, nil
}

// Script renders the tables of roots separated by blank lines.
func (e *Emitter) Script(roots []shape.Root) (string, error) {
	parts := make([]string, 0, len(roots)+1)
	for _, r := range roots {
		t, err := e.Table(r.Doc, r.BaseID)
		if err != nil {
			return "", err
		}
		parts = append(parts, t.String())
	}
	if e.note {
		parts = append(parts, Note)
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

// columnType maps a property schema to a column type. Types which would
// better be separate tables carry a comment.
func columnType(node *schema.Document) (typ string, pk bool, comment string) {
	if node == nil {
		return "VARCHAR(255)", false, ""
	}
	switch node.Type {
	case schema.IntegerType:
		switch node.Format {
		case "id":
			return "INT", true, ""
		case "int64":
			return "BIGINT", false, ""
		}
		return "INT", false, ""
	case schema.NumberType:
		if node.Format == "float" {
			return "FLOAT", false, ""
		}
		return "DECIMAL", false, ""
	case schema.BooleanType:
		return "BOOLEAN", false, ""
	case schema.ArrayType, schema.ObjectType:
		return "JSON", false, "consider normalization"
	case schema.StringType:
		switch {
		case node.Format == "date":
			return "DATE", false, ""
		case node.Format == "date-time":
			return "TIMESTAMP", false, ""
		case node.MaxLength != nil && *node.MaxLength > 0:
			return fmt.Sprintf("VARCHAR(%d)", *node.MaxLength), false, ""
		}
		return "TEXT", false, ""
	}
	return "VARCHAR(255)", false, ""
}

// isUnique also accepts the legacy `"pattern": "UNIQUE"` marker.
func isUnique(node *schema.Document) bool {
	return node != nil && (node.Unique || node.Pattern == "UNIQUE")
}

type reference struct {
	table, column string
	// inline is set when the target is a scalar or array type, which is
	// stored in the referring table rather than referenced.
	inline *schema.Document
}

func (e *Emitter) reference(node *schema.Document, baseID, table string) reference {
	t, err := e.res.Deref(node, baseID, shape.NewVisited(baseID))
	var target *schema.Document
	switch {
	case err == nil:
		target = t.Doc
	case errors.Is(err, shape.ErrCycle):
		// a reference back to a table on the path, usually the table
		// itself.
		if d, _, ok := e.res.Registry().ResolvePointer(t.Key, ""); ok && !d.IsRef() {
			target = d
		}
	default:
		e.log.Warn("unresolved reference", "ref", node.Ref, "base", baseID, "table", table)
	}
	if target != nil && target.Type != "" && target.Type != schema.ObjectType && !target.HasProperties() {
		return reference{inline: target}
	}
	res := reference{column: "id"}
	if id, frag := schema.SplitRef(t.Key); frag == "" {
		doc, _ := e.res.Registry().Lookup(id)
		res.table = tableName(doc, id)
	} else {
		res.table = snakeCase(t.Name)
	}
	if target != nil {
		for _, p := range target.Properties {
			if p.Schema != nil && p.Schema.Type == schema.IntegerType && p.Schema.Format == "id" {
				res.column = snakeCase(p.Name)
				break
			}
		}
	}
	return res
}

// Statements returns the CREATE TABLE statement followed by the CREATE
// INDEX statements of t.
func (t *Table) Statements() []string {
	res := []string{t.create()}
	for _, ix := range t.Indexes {
		res = append(res, t.index(ix))
	}
	return res
}

func (t *Table) String() string {
	s := t.create()
	if len(t.Indexes) == 0 {
		return s
	}
	idx := make([]string, len(t.Indexes))
	for i, ix := range t.Indexes {
		idx[i] = t.index(ix)
	}
	return s + "\n\n" + strings.Join(idx, "\n")
}

func (t *Table) create() string {
	q := t.dialect.Quote
	type line struct{ text, comment string }
	var lines []line
	for _, c := range t.Columns {
		var b strings.Builder
		b.WriteString(q(c.Name))
		b.WriteByte(' ')
		if c.PrimaryKey {
			b.WriteString(t.dialect.primaryKey(c.Type))
		} else {
			b.WriteString(c.Type)
		}
		if c.NotNull {
			b.WriteString(" NOT NULL")
		}
		if c.Default != "" {
			b.WriteString(" DEFAULT ")
			b.WriteString(c.Default)
		}
		lines = append(lines, line{text: b.String(), comment: c.Comment})
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, line{text: fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
			q(fk.Name), q(fk.Column), q(fk.RefTable), q(fk.RefColumn))})
	}
	for _, u := range t.Uniques {
		lines = append(lines, line{text: fmt.Sprintf("UNIQUE (%s)", q(u))})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", q(t.Name))
	for i, ln := range lines {
		b.WriteString("  ")
		b.WriteString(ln.text)
		if i < len(lines)-1 {
			b.WriteByte(',')
		}
		if ln.comment != "" {
			b.WriteString(" -- ")
			b.WriteString(ln.comment)
		}
		b.WriteByte('\n')
	}
	b.WriteString(");")
	return b.String()
}

func (t *Table) index(ix Index) string {
	q := t.dialect.Quote
	return fmt.Sprintf("CREATE INDEX %s ON %s(%s);", q(ix.Name), q(t.Name), q(ix.Column))
}
