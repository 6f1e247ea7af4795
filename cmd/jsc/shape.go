package main

import (
	"bytes"

	"github.com/signadot/jsc/convert"
	"github.com/signadot/jsc/encode"

	"github.com/scott-cotton/cli"
)

func shapeMain(cfg *ShapeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shape.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Width < 0 {
		return fmtUsage("-width must not be negative")
	}
	res, err := load(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	out, err := renderShapes(res, cfg.Indent, cfg.encOpts(cc.Out)...)
	if err != nil {
		return err
	}
	return finish(cfg.MainConfig, cc, res, out)
}

// renderShapes encodes the shape of each selected document, one per line,
// or separated by blank lines when indented.
func renderShapes(res *convert.Result, indent bool, opts ...encode.EncodeOption) ([]byte, error) {
	buf := &bytes.Buffer{}
	for i, it := range res.Docs() {
		if i > 0 && indent {
			buf.WriteByte('\n')
		}
		if err := encode.Encode(it.Shape, buf, opts...); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
