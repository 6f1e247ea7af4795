package shape

import (
	"fmt"
	"strings"
)

// Type tags the variant held by a Node.
type Type int

const (
	PrimitiveType Type = iota
	NamedType
	ArrayType
	RecordType
)

func (t Type) String() string {
	switch t {
	case PrimitiveType:
		return "primitive"
	case NamedType:
		return "named"
	case ArrayType:
		return "array"
	case RecordType:
		return "record"
	default:
		return fmt.Sprintf("<err: %d is not a shape type>", int(t))
	}
}

// Types returns all shape types.
func Types() []Type {
	return []Type{PrimitiveType, NamedType, ArrayType, RecordType}
}

// Prim is the tag of a primitive shape.
type Prim int

const (
	String Prim = iota
	Int
	Float
	Bool
	Null
	Mixed
	Undefined
)

// String returns the array-shape token for p.
func (p Prim) String() string {
	switch p {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case Mixed:
		return "mixed"
	default:
		return "undefined"
	}
}

// Node is a resolved shape. Which fields are meaningful depends on Type:
//
//	PrimitiveType  Prim
//	NamedType      Name
//	ArrayType      Elem
//	RecordType     Fields and Values, in schema declaration order
type Node struct {
	Type   Type
	Prim   Prim
	Name   string
	Elem   *Node
	Fields []string
	Values []*Node
}

func Primitive(p Prim) *Node {
	return &Node{Type: PrimitiveType, Prim: p}
}

func Named(name string) *Node {
	return &Node{Type: NamedType, Name: name}
}

func Array(elem *Node) *Node {
	return &Node{Type: ArrayType, Elem: elem}
}

// Record builds a record from parallel field and value slices.
func Record(fields []string, values []*Node) *Node {
	if len(fields) != len(values) {
		panic(fmt.Sprintf("shape: %d fields for %d values", len(fields), len(values)))
	}
	return &Node{Type: RecordType, Fields: fields, Values: values}
}

// Get returns the value of a record field.
func (n *Node) Get(field string) *Node {
	if n == nil || n.Type != RecordType {
		return nil
	}
	for i, f := range n.Fields {
		if f == field {
			return n.Values[i]
		}
	}
	return nil
}

// Equal reports whether a and b describe the same shape.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case PrimitiveType:
		return a.Prim == b.Prim
	case NamedType:
		return a.Name == b.Name
	case ArrayType:
		return Equal(a.Elem, b.Elem)
	case RecordType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i] != b.Fields[i] || !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the flat array-shape text of n.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString(Undefined.String())
		return
	}
	switch n.Type {
	case PrimitiveType:
		b.WriteString(n.Prim.String())
	case NamedType:
		b.WriteString(n.Name)
	case ArrayType:
		b.WriteString("array<")
		n.Elem.write(b)
		b.WriteByte('>')
	case RecordType:
		b.WriteString("array{")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f)
			b.WriteByte(':')
			n.Values[i].write(b)
		}
		b.WriteByte('}')
	}
}

// Depth is the nesting depth of n; primitives and names are 1.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	switch n.Type {
	case ArrayType:
		return 1 + n.Elem.Depth()
	case RecordType:
		d := 0
		for _, v := range n.Values {
			d = max(d, v.Depth())
		}
		return 1 + d
	}
	return 1
}
