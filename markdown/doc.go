// Package markdown documents schemas as Markdown tables.
//
// Each top level document gets a "## name" section with one table row per
// property. A property referencing another document links to that
// document's section. When the referenced document has no section of its
// own it is embedded below as "### Embedded: name", recursively. Embedding
// follows the path-scoped visited set of package shape: a reference back
// to a section already open on the path is only linked, while a document
// referenced from two sibling properties is embedded under both.
//
// [Preview] renders the result for a terminal.
package markdown
