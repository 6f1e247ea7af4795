package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/jsc/convert"
	"github.com/signadot/jsc/ddl"
	"github.com/signadot/jsc/encode"
	"github.com/signadot/jsc/eval"
	"github.com/signadot/jsc/format"
	"github.com/signadot/jsc/overlay"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Repair   bool   `cli:"name=repair desc='repair malformed json documents before parsing'"`
	Patch    string `cli:"name=patch desc='json patch or merge patch applied to each document'"`
	Target   string `cli:"name=target desc='only apply -patch to the document with this $id'"`
	Where    string `cli:"name=where desc='expression selecting the documents to convert'"`
	Parallel int    `cli:"name=j desc='number of documents resolved concurrently'"`
	Check    string `cli:"name=check desc='compare the output with a file and exit 1 on differences'"`
	Verbose  bool   `cli:"name=v aliases=verbose desc='log reference resolution'"`

	InFormat *format.Format
	Emit     *format.Output
	Defs     []string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.InFormat = &f
		return f, nil
	})
}

func (cfg *MainConfig) emitOpt(_ *cli.Context, v string) (any, error) {
	o, err := format.ParseOutput(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Emit = &o
	return o, nil
}

func (cfg *MainConfig) defsOpt(_ *cli.Context, a string) (any, error) {
	cfg.Defs = append(cfg.Defs, a)
	return a, nil
}

func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.FromPath(path)
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Verbose {
		return newLog(os.Stderr, slog.LevelDebug)
	}
	return theLog
}

// convertOpts builds the conversion options, reading the overlay and
// definition files named on the command line. path is the first input
// file and is used to guess the input format.
func (cfg *MainConfig) convertOpts(cc *cli.Context, path string) ([]convert.Option, error) {
	res := []convert.Option{
		convert.WithFormat(cfg.inFormat(path)),
		convert.WithRepair(cfg.Repair),
		convert.WithParallel(cfg.Parallel),
		convert.WithLogger(cfg.logger()),
	}
	if cfg.Patch != "" {
		d, err := readFile(cc, cfg.Patch)
		if err != nil {
			return nil, err
		}
		o, err := overlay.Load(d, overlay.WithTarget(cfg.Target))
		if err != nil {
			return nil, fmt.Errorf("error loading patch %s: %w", cfg.Patch, err)
		}
		res = append(res, convert.WithOverlay(o))
	} else if cfg.Target != "" {
		return nil, fmt.Errorf("%w: -target requires -patch", cli.ErrUsage)
	}
	if cfg.Where != "" {
		f, err := eval.Compile(cfg.Where)
		if err != nil {
			return nil, fmt.Errorf("%w: -where: %w", cli.ErrUsage, err)
		}
		res = append(res, convert.WithFilter(f))
	}
	for _, p := range cfg.Defs {
		d, err := readFile(cc, p)
		if err != nil {
			return nil, err
		}
		res = append(res, convert.WithFiles(convert.File{Name: p, Data: d}))
	}
	return res, nil
}

type ShapeConfig struct {
	*MainConfig

	Indent bool `cli:"name=indent aliases=i desc='put each record field on its own line'"`
	Width  int  `cli:"name=width desc='indent width'"`
	Color  bool `cli:"name=color desc='encode with color'"`

	Shape *cli.Command
}

func (cfg *ShapeConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeIndentWidth(cfg.Width),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Shape.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet || cfg.Check != "" {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type SQLConfig struct {
	*MainConfig

	Dialect string `cli:"name=dialect desc='sql dialect: mysql or sqlite'"`
	Verify  bool   `cli:"name=verify desc='execute the statements against an in-memory sqlite database'"`
	NoNote  bool   `cli:"name=no-note desc='omit the trailing review note'"`

	SQL *cli.Command
}

func (cfg *SQLConfig) ddlOpts() ([]ddl.Option, error) {
	d, err := ddl.ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if cfg.Verify && d != ddl.SQLite {
		return nil, fmt.Errorf("%w: -verify requires -dialect sqlite", cli.ErrUsage)
	}
	return []ddl.Option{
		ddl.WithDialect(d),
		ddl.WithNote(!cfg.NoNote),
		ddl.WithLogger(cfg.logger()),
	}, nil
}

type MarkdownConfig struct {
	*MainConfig

	Preview bool   `cli:"name=preview aliases=p desc='render the markdown for the terminal'"`
	Width   int    `cli:"name=width desc='preview word wrap width'"`
	Style   string `cli:"name=style desc='preview style: dark, light, notty, ...'"`

	Markdown *cli.Command
}

type RegistryConfig struct {
	*MainConfig

	All bool `cli:"name=a aliases=all desc='include embedded sub-schema ids'"`

	Registry *cli.Command
}
