// Package ddl renders schema documents as SQL CREATE TABLE statements.
//
// Each document becomes a table named after its id. Properties become
// columns in declaration order, with snake_case names. A property which
// references another object schema becomes an INT column with a named
// foreign key constraint and an index; references to scalar schemas are
// stored inline.
//
// Statements can be checked with [Verify], which runs them against an
// in-memory SQLite database.
package ddl
