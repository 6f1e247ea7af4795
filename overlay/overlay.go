package overlay

import (
	"bytes"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/signadot/jsc/debug"
)

var ErrBadOverlay = errors.New("bad overlay")

type Kind int

const (
	// JSONPatch is an RFC 6902 list of operations.
	JSONPatch Kind = iota
	// MergePatch is an RFC 7386 merge document.
	MergePatch
)

func (k Kind) String() string {
	if k == MergePatch {
		return "merge-patch"
	}
	return "json-patch"
}

// Overlay is a patch applied to schema documents before they are parsed.
type Overlay struct {
	Kind Kind
	// Target restricts the overlay to the document with this id. Empty
	// means every document.
	Target string

	ops   jsonpatch.Patch
	merge []byte
}

type Option func(*Overlay)

func WithTarget(id string) Option {
	return func(o *Overlay) { o.Target = id }
}

// Load reads an overlay. A JSON (or YAML) list is a JSON patch and a
// mapping is a merge patch.
func Load(data []byte, opts ...Option) (*Overlay, error) {
	j, err := toJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadOverlay, err)
	}
	o := &Overlay{}
	for _, opt := range opts {
		opt(o)
	}
	switch firstByte(j) {
	case '[':
		o.Kind = JSONPatch
		o.ops, err = jsonpatch.DecodePatch(j)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadOverlay, err)
		}
	case '{':
		o.Kind = MergePatch
		o.merge = j
	default:
		return nil, fmt.Errorf("%w: expected a list or a mapping", ErrBadOverlay)
	}
	return o, nil
}

// Applies reports whether the overlay applies to the document id.
func (o *Overlay) Applies(id string) bool {
	return o != nil && (o.Target == "" || o.Target == id)
}

// Apply patches doc, which may be JSON or YAML, and returns JSON. Keys
// keep the order they have in doc; keys added by the patch follow them.
func (o *Overlay) Apply(doc []byte) ([]byte, error) {
	j, err := toJSON(doc)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch o.Kind {
	case JSONPatch:
		out, err = o.ops.Apply(j)
	default:
		out, err = jsonpatch.MergePatch(j, o.merge)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.Kind, err)
	}
	if debug.Extract() {
		debug.Logf("overlay: applied %s target=%q\n", o.Kind, o.Target)
	}
	var before, after any
	if err := yaml.UnmarshalWithOptions(doc, &before, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalWithOptions(out, &after, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return yaml.MarshalWithOptions(keepOrder(before, after), yaml.JSON())
}

func toJSON(data []byte) ([]byte, error) {
	switch firstByte(data) {
	case '{', '[':
		return data, nil
	}
	return yaml.YAMLToJSON(data)
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}
