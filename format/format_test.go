package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: JSONFormat},
		{in: "j", want: JSONFormat},
		{in: "yaml", want: YAMLFormat},
		{in: "yml", want: YAMLFormat},
		{in: "toml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadFormat) {
					t.Fatalf("expected ErrBadFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatal(err)
	}
	if f.String() != "yaml" || f.Suffix() != ".yaml" {
		t.Errorf("unexpected %s %s", f, f.Suffix())
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]Format{
		"a/b/person.json": JSONFormat,
		"defs.yaml":       YAMLFormat,
		"x.yml":           YAMLFormat,
		"noext":           JSONFormat,
		"dir.yaml/file":   JSONFormat,
	}
	for in, want := range tests {
		if got := FromPath(in); got != want {
			t.Errorf("FromPath(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseOutput(t *testing.T) {
	for _, v := range []string{"shape", "sql", "markdown", "md"} {
		o, err := ParseOutput(v)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if _, err := ParseOutput(o.String()); err != nil {
			t.Errorf("round trip %s: %v", v, err)
		}
	}
	if _, err := ParseOutput("html"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}
