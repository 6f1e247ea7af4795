package format

import (
	"errors"
	"fmt"
)

// Format is the serialization of input schema documents.
type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"yml":  YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromPath guesses the format from a file name, defaulting to JSON.
func FromPath(path string) Format {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] != '.' {
			continue
		}
		if f, err := ParseFormat(path[i+1:]); err == nil {
			return f
		}
		break
	}
	return JSONFormat
}

// Output is a textual rendering of resolved schemas.
type Output int

const (
	ShapeOutput Output = iota
	SQLOutput
	MarkdownOutput
)

func ParseOutput(v string) (Output, error) {
	o, ok := map[string]Output{
		"shape":    ShapeOutput,
		"array":    ShapeOutput,
		"sql":      SQLOutput,
		"ddl":      SQLOutput,
		"markdown": MarkdownOutput,
		"md":       MarkdownOutput,
	}[v]
	if ok {
		return o, nil
	}
	return 0, fmt.Errorf("%w: output %q", ErrBadFormat, v)
}

func (o Output) String() string {
	switch o {
	case ShapeOutput:
		return "shape"
	case SQLOutput:
		return "sql"
	case MarkdownOutput:
		return "markdown"
	default:
		return fmt.Sprintf("<err: %d is not an output>", int(o))
	}
}
