package encode

import (
	"strings"

	"github.com/signadot/jsc/shape"
)

// MustString encodes node without the trailing newline, panicking on error.
func MustString(node *shape.Node, opts ...EncodeOption) string {
	b := &strings.Builder{}
	if err := Encode(node, b, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
