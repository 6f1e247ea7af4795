package encode

type EncodeOption func(*EncState)

// EncodeIndent places each record field on its own line.
func EncodeIndent(v bool) EncodeOption {
	return func(es *EncState) { es.indented = v }
}

// EncodeIndentWidth sets the number of spaces per level of indentation.
func EncodeIndentWidth(n int) EncodeOption {
	return func(es *EncState) {
		if n >= 0 {
			es.indent = n
		}
	}
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
