package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return " "
}

// Line is one line of a line diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines returns the line diff from from to to.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Unified renders the difference between from and to as a unified diff
// with context lines around each change. It returns "" when they are
// equal.
func Unified(fromName, toName, from, to string, context int) string {
	lines := Lines(from, to)
	changed := false
	for _, ln := range lines {
		if ln.Op != Equal {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "--- %s\n+++ %s\n", fromName, toName)
	for _, h := range hunks(lines, context) {
		h.write(b, lines)
	}
	return b.String()
}

type hunk struct {
	start, end     int // range in lines
	fromLn, toLn   int // 1-based first line numbers
	fromLen, toLen int
}

func hunks(lines []Line, context int) []hunk {
	var res []hunk
	fromLn, toLn := 1, 1
	var cur *hunk
	lastChange := -1
	for i, ln := range lines {
		if ln.Op != Equal {
			if cur == nil || i-lastChange > 2*context {
				if cur != nil {
					res = append(res, *cur)
				}
				start := max(0, i-context)
				if lastChange >= 0 {
					start = max(start, lastChange+context+1)
				}
				cur = &hunk{start: start}
				cur.fromLn, cur.toLn = fromLn, toLn
				for j := start; j < i; j++ {
					cur.fromLn--
					cur.toLn--
				}
			}
			lastChange = i
		}
		if cur != nil {
			cur.end = min(len(lines), lastChange+context+1)
		}
		switch ln.Op {
		case Equal:
			fromLn++
			toLn++
		case Delete:
			fromLn++
		case Insert:
			toLn++
		}
	}
	if cur != nil {
		res = append(res, *cur)
	}
	for i := range res {
		h := &res[i]
		for _, ln := range lines[h.start:h.end] {
			if ln.Op != Insert {
				h.fromLen++
			}
			if ln.Op != Delete {
				h.toLen++
			}
		}
	}
	return res
}

func (h *hunk) write(b *strings.Builder, lines []Line) {
	fmt.Fprintf(b, "@@ -%s +%s @@\n", span(h.fromLn, h.fromLen), span(h.toLn, h.toLen))
	for _, ln := range lines[h.start:h.end] {
		b.WriteString(ln.Op.prefix())
		b.WriteString(ln.Text)
		b.WriteByte('\n')
	}
}

func span(ln, n int) string {
	if n == 0 {
		ln--
	}
	if n == 1 {
		return fmt.Sprint(ln)
	}
	return fmt.Sprintf("%d,%d", ln, n)
}
