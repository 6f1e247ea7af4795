// Package eval selects schema documents with expr-lang expressions.
//
// Expressions see the variables of [Env] and these functions:
//
//	haspath(p)  whether the JSON pointer p exists in the document
//	typeat(p)   the declared type at p, or ""
//	getenv(v)   the value of an environment variable
package eval
