package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsc/convert"
	"github.com/signadot/jsc/format"
	"github.com/signadot/jsc/libdiff"

	"github.com/scott-cotton/cli"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// joinInputs concatenates input files so that each keeps its documents.
func joinInputs(fmat format.Format, texts [][]byte) []byte {
	sep := []byte("\n")
	if fmat.IsYAML() {
		sep = []byte("\n---\n")
	}
	return bytes.Join(texts, sep)
}

// load converts the documents of the files in args, or of standard input
// when there are none.
func load(cfg *MainConfig, cc *cli.Context, args []string) (*convert.Result, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts, err := cfg.convertOpts(cc, args[0])
	if err != nil {
		return nil, err
	}
	texts := make([][]byte, len(args))
	for i, path := range args {
		texts[i], err = readFile(cc, path)
		if err != nil {
			return nil, err
		}
	}
	text := joinInputs(cfg.inFormat(args[0]), texts)
	res, err := convert.Run(context.Background(), text, opts...)
	if err != nil {
		return nil, err
	}
	for _, it := range res.Items {
		if it.Err != nil {
			cfg.logger().Error("skipping document", "err", it.Err)
		}
	}
	return res, nil
}

// finish writes out, or compares it with the -check file, and reports
// skipped documents with exit code 1.
func finish(cfg *MainConfig, cc *cli.Context, res *convert.Result, out []byte) error {
	if cfg.Check != "" {
		want, err := readFile(cc, cfg.Check)
		if err != nil {
			return err
		}
		if d := checkDiff(cfg.Check, want, out); d != "" {
			if _, err := io.WriteString(cc.Out, d); err != nil {
				return err
			}
			return cli.ExitCodeErr(1)
		}
	} else if _, err := cc.Out.Write(out); err != nil {
		return err
	}
	if res.Errs() != nil {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDiff returns a unified diff from the checked file to the output, or
// "" when they are equal.
func checkDiff(name string, want, got []byte) string {
	if bytes.Equal(want, got) {
		return ""
	}
	return libdiff.Unified(name, "(output)", string(want), string(got), 3)
}
