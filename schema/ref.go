package schema

import (
	"net/url"
	"strings"
)

// SplitRef splits a $ref into the target document id and the fragment
// after '#'. Either part may be empty.
func SplitRef(ref string) (id, fragment string) {
	i := strings.IndexByte(ref, '#')
	if i < 0 {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}

// PointerTokens splits a fragment into unescaped reference tokens. A
// leading '/' (the usual JSON pointer form) contributes no token.
func PointerTokens(fragment string) []string {
	fragment = strings.TrimPrefix(fragment, "/")
	if fragment == "" {
		return nil
	}
	parts := strings.Split(fragment, "/")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		res = append(res, UnescapeToken(p))
	}
	return res
}

// UnescapeToken decodes ~0, ~1 and percent escapes in a pointer token.
func UnescapeToken(e string) string {
	if strings.IndexByte(e, '%') >= 0 {
		if u, err := url.PathUnescape(e); err == nil {
			e = u
		}
	}
	if strings.IndexByte(e, '~') < 0 {
		return e
	}
	e = strings.ReplaceAll(e, "~1", "/")
	return strings.ReplaceAll(e, "~0", "~")
}

// RefKey is the identity of a reference target: the document id alone for
// whole document references, or id#fragment for fragment references.
func RefKey(id, fragment string) string {
	if len(PointerTokens(fragment)) == 0 {
		return id
	}
	return id + "#/" + strings.TrimPrefix(fragment, "/")
}

// Lookup follows pointer tokens through d. "properties", "$defs",
// "definitions" consume the following token as a name and "items" steps
// into the items schema. Any other token is taken as a property name, then
// as a definition name.
func (d *Document) Lookup(tokens []string) (*Document, bool) {
	cur := d
	for i := 0; i < len(tokens); i++ {
		if cur == nil {
			return nil, false
		}
		tok := tokens[i]
		switch tok {
		case "properties":
			if i+1 >= len(tokens) {
				return nil, false
			}
			i++
			cur = cur.Property(tokens[i])
		case "$defs", "definitions":
			if i+1 >= len(tokens) {
				return nil, false
			}
			i++
			cur = cur.Def(tokens[i])
		case "items":
			cur = cur.Items
		default:
			next := cur.Property(tok)
			if next == nil {
				next = cur.Def(tok)
			}
			cur = next
		}
	}
	return cur, cur != nil
}
