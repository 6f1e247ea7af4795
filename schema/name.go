package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const UnnamedKey = "unnamed_schema"

// RegistryKey is the id a document is registered under in a conversion
// run: its $id, else its title, else UnnamedKey.
func RegistryKey(doc *Document) string {
	switch {
	case doc == nil:
		return UnnamedKey
	case doc.ID != "":
		return doc.ID
	case doc.Title != "":
		return doc.Title
	}
	return UnnamedKey
}

// BaseName is the last path segment of an id up to its first '.', so
// "https://x.io/s/order.schema.json" is "order".
func BaseName(id string) string {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}
	id = strings.TrimRight(id, "/")
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if i := strings.IndexByte(id, '.'); i >= 0 {
		id = id[:i]
	}
	return id
}

// Name is the uncapitalized display name of doc.
func Name(doc *Document, fallback string) string {
	if doc != nil {
		if doc.ID != "" {
			if n := BaseName(doc.ID); n != "" {
				return n
			}
		}
		if doc.Title != "" {
			return stripSpace(doc.Title)
		}
	}
	return fallback
}

// DisplayName is Name with its first letter upper cased.
func DisplayName(doc *Document, fallback string) string {
	return Capitalize(Name(doc, fallback))
}

// RefName is the display name of a reference target: the last token of the
// fragment when there is one, else the base name of the document id. An
// empty ref part falls back to baseID.
func RefName(ref, baseID string) string {
	id, frag := SplitRef(ref)
	if toks := PointerTokens(frag); len(toks) != 0 {
		last := toks[len(toks)-1]
		if i := strings.IndexByte(last, '.'); i > 0 {
			last = last[:i]
		}
		return Capitalize(last)
	}
	if id == "" {
		id = baseID
	}
	return Capitalize(BaseName(id))
}

func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
