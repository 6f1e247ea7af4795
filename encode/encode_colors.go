package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/jsc/shape"
)

type Colorable struct {
	Type shape.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	KeywordColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range shape.Types() {
		able := Colorable{Type: t, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = KeywordColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	colors.Map[Colorable{Type: shape.PrimitiveType, Attr: ValueColor}] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[Colorable{Type: shape.NamedType, Attr: ValueColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Type: shape.RecordType, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Type: shape.RecordType, Attr: SepColor}] = color.RGB(196, 128, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t shape.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t shape.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
