package eval

import (
	"os"

	"github.com/expr-lang/expr"
	"github.com/signadot/jsc/schema"
)

func exprOpts(doc *schema.Document) []expr.Option {
	return []expr.Option{
		expr.Function("haspath", func(params ...any) (any, error) {
			_, ok := doc.Lookup(schema.PointerTokens(params[0].(string)))
			return ok, nil
		},
			new(func(string) bool)),
		expr.Function("typeat", func(params ...any) (any, error) {
			node, ok := doc.Lookup(schema.PointerTokens(params[0].(string)))
			if !ok {
				return "", nil
			}
			return string(node.Type), nil
		},
			new(func(string) string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
