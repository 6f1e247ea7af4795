package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/parser"
	"github.com/signadot/jsc/debug"
)

var ErrUnbalanced = errors.New("unbalanced braces")

// Candidate is the text of one brace balanced object found in the input.
type Candidate struct {
	// Index is the position of the candidate among those found.
	Index int
	// Offset is the byte offset of the opening brace.
	Offset int
	// Line is the 1-based line of the opening brace.
	Line int
	Text []byte
}

func (c *Candidate) String() string {
	return fmt.Sprintf("#%d (line %d)", c.Index, c.Line)
}

// Documents returns the top level brace balanced objects in text. Text
// outside of them is ignored. An object left open at the end of text is
// dropped and reported with ErrUnbalanced alongside the complete
// candidates.
func Documents(text []byte) ([]Candidate, error) {
	return scan(text)
}

func scan(text []byte) ([]Candidate, error) {
	var (
		res       []Candidate
		depth     int
		start     int
		startLine int
		line      = 1
		inString  bool
		escaped   bool
	)
	for i, c := range text {
		if c == '\n' {
			line++
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			// quotes only delimit strings inside an object, prose around
			// documents may contain stray quotes.
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start, startLine = i, line
			}
			depth++
		case '}':
			switch depth {
			case 0:
			case 1:
				res = append(res, Candidate{
					Index:  len(res),
					Offset: start,
					Line:   startLine,
					Text:   text[start : i+1],
				})
				depth--
			default:
				depth--
			}
		}
	}
	if debug.Extract() {
		debug.Logf("extract: %d candidates, depth %d at end\n", len(res), depth)
	}
	if depth != 0 {
		return res, fmt.Errorf("%w: object at line %d is not closed", ErrUnbalanced, startLine)
	}
	return res, nil
}

// YAMLDocuments splits a YAML stream into its documents. Empty documents
// are skipped.
func YAMLDocuments(text []byte) ([]Candidate, error) {
	f, err := parser.ParseBytes(text, 0)
	if err != nil {
		return nil, err
	}
	var res []Candidate
	for _, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		c := Candidate{Index: len(res), Text: []byte(doc.Body.String())}
		if tk := doc.Body.GetToken(); tk != nil && tk.Position != nil {
			c.Line = tk.Position.Line
			c.Offset = tk.Position.Offset
		}
		if len(bytes.TrimSpace(c.Text)) == 0 {
			continue
		}
		res = append(res, c)
	}
	if debug.Extract() {
		debug.Logf("extract: %d yaml documents\n", len(res))
	}
	return res, nil
}
