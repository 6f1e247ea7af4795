// Package libdiff computes line diffs of emitter output, used to check
// generated files for drift.
package libdiff
