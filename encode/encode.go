package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/jsc/shape"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	indented      bool

	Color func(shape.Type, ColorAttr, string) string
}

// Encode writes the array-shape text of node to w followed by a newline.
func Encode(node *shape.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *shape.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return writeColored(w, es, shape.PrimitiveType, ValueColor, shape.Undefined.String())
	}
	switch node.Type {
	case shape.PrimitiveType:
		return writeColored(w, es, node.Type, ValueColor, node.Prim.String())
	case shape.NamedType:
		return writeColored(w, es, node.Type, ValueColor, node.Name)
	case shape.ArrayType:
		if err := writeColored(w, es, node.Type, KeywordColor, "array"); err != nil {
			return err
		}
		if err := writeColored(w, es, node.Type, SepColor, "<"); err != nil {
			return err
		}
		if err := encode(node.Elem, w, es); err != nil {
			return err
		}
		return writeColored(w, es, node.Type, SepColor, ">")
	case shape.RecordType:
		return encodeRecord(node, w, es)
	default:
		return fmt.Errorf("%w: unknown shape type %s", ErrEncoding, node.Type)
	}
}

func encodeRecord(node *shape.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: record has %d fields and %d values", ErrEncoding, len(node.Fields), len(node.Values))
	}
	if err := writeColored(w, es, node.Type, KeywordColor, "array"); err != nil {
		return err
	}
	if err := writeColored(w, es, node.Type, SepColor, "{"); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeColored(w, es, node.Type, SepColor, "}")
	}
	es.depth++
	for i, f := range node.Fields {
		if i > 0 {
			if err := writeColored(w, es, node.Type, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeColored(w, es, node.Type, FieldColor, f); err != nil {
			return err
		}
		if err := writeColored(w, es, node.Type, SepColor, ":"); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, node.Type, SepColor, "}")
}

func writeNL(w io.Writer, es *EncState) error {
	if !es.indented {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeColored(w io.Writer, es *EncState, t shape.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
