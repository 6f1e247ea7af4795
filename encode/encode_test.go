package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/jsc/shape"
)

func testNode() *shape.Node {
	return shape.Record(
		[]string{"name", "address", "tags", "none"},
		[]*shape.Node{
			shape.Primitive(shape.String),
			shape.Record([]string{"street", "zip"}, []*shape.Node{
				shape.Primitive(shape.String),
				shape.Primitive(shape.Int),
			}),
			shape.Array(shape.Named("Tag")),
			shape.Record(nil, nil),
		},
	)
}

func TestEncodeFlat(t *testing.T) {
	n := testNode()
	got := MustString(n)
	want := "array{name:string,address:array{street:string,zip:int},tags:array<Tag>,none:array{}}"
	if got != want {
		t.Errorf("got %s", got)
	}
	if got != n.String() {
		t.Errorf("flat encoding %q differs from String %q", got, n.String())
	}
}

func TestEncodeIndent(t *testing.T) {
	want := `array{
  name:string,
  address:array{
    street:string,
    zip:int
  },
  tags:array<Tag>,
  none:array{}
}`
	if got := MustString(testNode(), EncodeIndent(true)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	want4 := "array{\n    a:array<array{\n        b:int\n    }>\n}"
	n := shape.Record([]string{"a"}, []*shape.Node{
		shape.Array(shape.Record([]string{"b"}, []*shape.Node{shape.Primitive(shape.Int)})),
	})
	if got := MustString(n, EncodeIndent(true), EncodeIndentWidth(4)); got != want4 {
		t.Errorf("got\n%s\nwant\n%s", got, want4)
	}
}

func TestEncodeNewline(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Encode(shape.Primitive(shape.Bool), buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "bool\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestEncodeColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	n := testNode()
	got := MustString(n, EncodeColors(NewColors()))
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected escape sequences in %q", got)
	}
	if plain := MustString(n, EncodeColors(nil)); plain != n.String() {
		t.Errorf("nil colors: %q", plain)
	}
}

func TestEncodeBadRecord(t *testing.T) {
	n := &shape.Node{Type: shape.RecordType, Fields: []string{"a"}}
	err := Encode(n, &bytes.Buffer{})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("got %v", err)
	}
}
