package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/jsc/format"

	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/jsonrepair"
)

type parseOpts struct {
	format format.Format
	repair bool
}

type ParseOption func(*parseOpts)

func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseRepair enables repairing malformed JSON input before decoding.
func ParseRepair(v bool) ParseOption {
	return func(o *parseOpts) { o.repair = v }
}

// Parse parses one schema document. JSON input is syntax checked strictly;
// both JSON and YAML are then decoded with an order preserving decoder so
// that properties keep their declaration order.
func Parse(data []byte, opts ...ParseOption) (*Document, error) {
	po := &parseOpts{}
	for _, opt := range opts {
		opt(po)
	}
	if po.format.IsJSON() {
		fixed, err := checkJSON(data, po.repair)
		if err != nil {
			return nil, err
		}
		data = fixed
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	doc := FromValue(v)
	if doc == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}
	return doc, nil
}

// Repair returns data when it is valid JSON, else the repaired text. It
// fails with ErrParse when the text cannot be repaired.
func Repair(data []byte) ([]byte, error) {
	return checkJSON(data, true)
}

func checkJSON(data []byte, repair bool) ([]byte, error) {
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	if err == nil {
		return data, nil
	}
	perr := fmt.Errorf("%w: %w", ErrParse, err)
	if se, ok := err.(*json.SyntaxError); ok {
		line, col := position(data, se.Offset)
		perr = fmt.Errorf("%w at %d:%d: %w", ErrParse, line, col, err)
	}
	if !repair {
		return nil, perr
	}
	fixed, rerr := jsonrepair.JSONRepair(string(data))
	if rerr != nil {
		return nil, perr
	}
	if err := json.Unmarshal([]byte(fixed), &raw); err != nil {
		return nil, perr
	}
	return []byte(fixed), nil
}

func position(data []byte, off int64) (int, int) {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	line, col := 1, 1
	for _, c := range data[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// FromValue builds a Document from a decoded ordered value. It returns nil
// if v is not a mapping.
func FromValue(v any) *Document {
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil
	}
	doc := &Document{Raw: ms}
	legacyID := ""
	for _, item := range ms {
		key := keyString(item.Key)
		switch key {
		case "$id":
			doc.ID, _ = item.Value.(string)
		case "id":
			legacyID, _ = item.Value.(string)
		case "$schema":
			doc.SchemaURI, _ = item.Value.(string)
		case "title":
			doc.Title, _ = item.Value.(string)
		case "description":
			doc.Description, _ = item.Value.(string)
		case "format":
			doc.Format, _ = item.Value.(string)
		case "pattern":
			doc.Pattern, _ = item.Value.(string)
		case "$ref":
			doc.Ref, _ = item.Value.(string)
		case "type":
			setTypes(doc, item.Value)
		case "properties":
			doc.Properties = namedSchemas(nil, item.Value)
		case "$defs", "definitions":
			doc.Defs = namedSchemas(doc.Defs, item.Value)
		case "items":
			switch x := item.Value.(type) {
			case []any:
				if len(x) != 0 {
					doc.Items = FromValue(x[0])
				}
			default:
				doc.Items = FromValue(x)
			}
		case "required":
			doc.Required = nil
			if xs, ok := item.Value.([]any); ok {
				for _, x := range xs {
					if s, ok := x.(string); ok {
						doc.Required = append(doc.Required, s)
					}
				}
			}
		case "default":
			doc.Default = item.Value
			doc.HasDefault = true
		case "enum":
			doc.Enum, _ = item.Value.([]any)
		case "minimum":
			doc.Minimum = NumberText(item.Value)
		case "maximum":
			doc.Maximum = NumberText(item.Value)
		case "minLength":
			doc.MinLength = intPtr(item.Value)
		case "maxLength":
			doc.MaxLength = intPtr(item.Value)
		case "unique":
			doc.Unique, _ = item.Value.(bool)
		}
	}
	if doc.ID == "" {
		doc.ID = legacyID
	}
	return doc
}

func setTypes(doc *Document, v any) {
	doc.Type, doc.Types, doc.Nullable = "", nil, false
	switch x := v.(type) {
	case string:
		doc.Type = Type(x)
		doc.Types = []Type{Type(x)}
		doc.Nullable = doc.Type == NullType
	case []any:
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				continue
			}
			t := Type(s)
			doc.Types = append(doc.Types, t)
			if t == NullType {
				doc.Nullable = true
				continue
			}
			if doc.Type == "" {
				doc.Type = t
			}
		}
		if doc.Type == "" && doc.Nullable {
			doc.Type = NullType
		}
	}
}

// namedSchemas appends the schemas of the mapping v to res. A repeated
// name keeps its first position and takes the last value.
func namedSchemas(res []Property, v any) []Property {
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return res
	}
	for _, item := range ms {
		p := Property{
			Name:   keyString(item.Key),
			Schema: FromValue(item.Value),
		}
		i := slices.IndexFunc(res, func(q Property) bool { return q.Name == p.Name })
		if i >= 0 {
			res[i] = p
			continue
		}
		res = append(res, p)
	}
	return res
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}

// NumberText renders a decoded numeric value the way it would appear in
// the source. Non-numeric values yield "".
func NumberText(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return strings.TrimSpace(x)
		}
	}
	return ""
}

func intPtr(v any) *int {
	s := NumberText(v)
	if s == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &i
}
