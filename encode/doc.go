// Package encode writes shapes as array-shape text.
//
// # Usage
//
//	// flat: array{name:string,tags:array<string>}
//	err := encode.Encode(node, os.Stdout)
//
//	// one field per line, colored
//	err := encode.Encode(node, os.Stdout,
//	    encode.EncodeIndent(true),
//	    encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/jsc/shape - shapes and their resolution
package encode
