package ddl

import (
	"strings"
	"unicode"

	"github.com/signadot/jsc/schema"
)

// snakeCase converts a property name such as "postalCode" or "userID" to
// a column name, "postal_code" and "user_id". Characters other than
// letters and digits become underscores.
func snakeCase(s string) string {
	rs := []rune(s)
	b := &strings.Builder{}
	for i, r := range rs {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && wordBreak(rs, i) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	res := b.String()
	for strings.Contains(res, "__") {
		res = strings.ReplaceAll(res, "__", "_")
	}
	return strings.Trim(res, "_")
}

// wordBreak reports whether the upper case rune at i starts a new word.
func wordBreak(rs []rune, i int) bool {
	prev := rs[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// the last capital of a run followed by lower case, as "S" in "HTTPServer"
	return unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
}

// tableName is the table of doc registered under id.
func tableName(doc *schema.Document, id string) string {
	return snakeCase(schema.Name(doc, schema.BaseName(id)))
}

func fkColumn(col string) string {
	if col == "id" || strings.HasSuffix(col, "_id") {
		return col
	}
	return col + "_id"
}
