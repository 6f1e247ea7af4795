// Package convert runs one conversion: it finds the schema documents in
// an input text, parses and registers them in a fresh registry, and
// resolves the shape of each selected document.
//
//	res, err := convert.Run(ctx, input, convert.WithParallel(4))
//	if err != nil {
//	    return err
//	}
//	for _, it := range res.Docs() {
//	    fmt.Println(it.Shape)
//	}
//	if err := res.Errs(); err != nil {
//	    // some documents did not parse
//	}
//
// The registry lives for one run and is shared by nothing else.
package convert
