// Package schema parses JSON Schema documents and keeps them in a
// Registry for $ref resolution.
//
// Only the structural keywords are interpreted: $id, title, type,
// properties, items, $ref, required, $defs/definitions, plus the handful of
// annotation keywords the SQL and Markdown renderings display (format,
// default, enum, minimum, maximum, minLength, maxLength, pattern).
//
// # Usage
//
//	doc, err := schema.Parse(data)
//	reg := schema.NewRegistry()
//	reg.Register(schema.RegistryKey(doc), doc)
//
//	// "address.json#/properties/street" or "#/$defs/node"
//	node, targetID, ok := reg.ResolvePointer(ref, schema.RegistryKey(doc))
//
// A Registry lives for one conversion run. It is filled before any
// resolution begins and is safe to read from several goroutines.
package schema
