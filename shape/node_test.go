package shape

import "testing"

func TestNodeString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"prim", Primitive(Float), "float"},
		{"named", Named("Address"), "Address"},
		{"array", Array(Array(Primitive(Int))), "array<array<int>>"},
		{"empty record", Record(nil, nil), "array{}"},
		{"record", Record([]string{"a", "b"}, []*Node{Primitive(Mixed), Array(Named("X"))}), "array{a:mixed,b:array<X>}"},
		{"nil", nil, "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestNodeEqualGet(t *testing.T) {
	n := Record([]string{"a", "b"}, []*Node{Primitive(String), Array(Named("B"))})
	c := Record([]string{"a", "b"}, []*Node{Primitive(String), Array(Named("B"))})
	if !Equal(n, c) {
		t.Fatalf("equal records differ: %s %s", n, c)
	}
	c.Values[1].Elem.Name = "C"
	if Equal(n, c) {
		t.Errorf("different element names are equal")
	}
	if n.Get("b").Elem.Name != "B" {
		t.Errorf("get b = %s", n.Get("b"))
	}
	if n.Get("zz") != nil || Primitive(Int).Get("a") != nil {
		t.Errorf("unexpected field")
	}
	if Equal(Primitive(Int), Primitive(Float)) || Equal(Named("a"), nil) {
		t.Errorf("unequal nodes compared equal")
	}
	if Equal(Record([]string{"a"}, []*Node{Primitive(Int)}), Record([]string{"b"}, []*Node{Primitive(Int)})) {
		t.Errorf("field names ignored")
	}
}

func TestNodeDepth(t *testing.T) {
	n := Record([]string{"a", "b"}, []*Node{Primitive(String), Array(Record([]string{"c"}, []*Node{Named("C")}))})
	if d := n.Depth(); d != 4 {
		t.Errorf("depth %d", d)
	}
}

func TestVisited(t *testing.T) {
	v := NewVisited("a", "")
	w := v.With("b")
	if v.Has("b") || !w.Has("a") || !w.Has("b") {
		t.Errorf("v=%v w=%v", v.Keys(), w.Keys())
	}
	if v.Len() != 1 || w.Len() != 2 {
		t.Errorf("lens %d %d", v.Len(), w.Len())
	}
	var zero Visited
	if zero.Has("a") || zero.With("a").Len() != 1 {
		t.Errorf("zero value")
	}
}
