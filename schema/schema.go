package schema

import (
	"github.com/goccy/go-yaml"
)

// Type is a JSON Schema primitive type name.
type Type string

const (
	ObjectType  Type = "object"
	ArrayType   Type = "array"
	StringType  Type = "string"
	NumberType  Type = "number"
	IntegerType Type = "integer"
	BooleanType Type = "boolean"
	NullType    Type = "null"
)

// Document is a parsed JSON Schema node. The top level node of an input
// is a document in its own right, and so is every nested property, items
// and definition schema.
//
// Documents are not modified after Parse returns.
type Document struct {
	ID          string
	SchemaURI   string
	Title       string
	Description string

	// Type is the declared type. When "type" is a list, Type holds the
	// first non-null entry and Types holds them all.
	Type     Type
	Types    []Type
	Nullable bool
	Format   string

	// Properties preserves declaration order.
	Properties []Property
	Items      *Document
	Ref        string
	Required   []string
	Defs       []Property

	Default    any
	HasDefault bool
	Enum       []any

	Minimum   string
	Maximum   string
	MinLength *int
	MaxLength *int
	Pattern   string
	Unique    bool

	// Raw is the ordered source mapping the document was built from.
	Raw yaml.MapSlice
}

// Property is a named sub-schema. Schema is nil when the source value
// was not an object (for example the boolean schema `true`).
type Property struct {
	Name   string
	Schema *Document
}

func (d *Document) IsRef() bool {
	return d != nil && d.Ref != ""
}

func (d *Document) HasProperties() bool {
	return d != nil && len(d.Properties) != 0
}

// Property returns the schema of the named property.
func (d *Document) Property(name string) *Document {
	if d == nil {
		return nil
	}
	for i := range d.Properties {
		if d.Properties[i].Name == name {
			return d.Properties[i].Schema
		}
	}
	return nil
}

// Def returns the named $defs/definitions entry.
func (d *Document) Def(name string) *Document {
	if d == nil {
		return nil
	}
	for i := range d.Defs {
		if d.Defs[i].Name == name {
			return d.Defs[i].Schema
		}
	}
	return nil
}

func (d *Document) IsRequired(name string) bool {
	if d == nil {
		return false
	}
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// PropertyNames returns the property names in declaration order.
func (d *Document) PropertyNames() []string {
	if d == nil {
		return nil
	}
	res := make([]string, len(d.Properties))
	for i := range d.Properties {
		res[i] = d.Properties[i].Name
	}
	return res
}

// Refs returns the $ref values reachable from the document without
// following any of them, in declaration order.
func (d *Document) Refs() []string {
	if d == nil {
		return nil
	}
	var res []string
	var walk func(*Document)
	walk = func(n *Document) {
		if n == nil {
			return
		}
		if n.Ref != "" {
			res = append(res, n.Ref)
			return
		}
		for i := range n.Properties {
			walk(n.Properties[i].Schema)
		}
		walk(n.Items)
	}
	if d.Ref != "" {
		return []string{d.Ref}
	}
	for i := range d.Properties {
		walk(d.Properties[i].Schema)
	}
	walk(d.Items)
	return res
}
