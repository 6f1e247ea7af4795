// Package format names the input serializations jsc reads (JSON, YAML)
// and the renderings it produces (array-shape text, SQL, Markdown).
package format
