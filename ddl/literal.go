package ddl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/jsc/schema"
)

// literal renders a decoded default value as an SQL literal.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return quoteString(x)
	case yaml.MapSlice, []any:
		return jsonLiteral(plain(x))
	}
	if s := schema.NumberText(v); s != "" {
		return s
	}
	return jsonLiteral(v)
}

// plain replaces ordered mappings in v with maps encoding/json accepts.
func plain(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(x))
		for _, item := range x {
			m[fmt.Sprint(item.Key)] = plain(item.Value)
		}
		return m
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = plain(x[i])
		}
		return res
	}
	return v
}

func jsonLiteral(v any) string {
	d, err := json.Marshal(v)
	if err != nil {
		return "NULL"
	}
	return quoteString(string(d))
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
