package main

import (
	"context"

	"github.com/signadot/jsc/convert"
	"github.com/signadot/jsc/ddl"

	"github.com/scott-cotton/cli"
)

func sqlMain(cfg *SQLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.SQL.Parse(cc, args)
	if err != nil {
		return err
	}
	opts, err := cfg.ddlOpts()
	if err != nil {
		return err
	}
	res, err := load(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	out, err := renderSQL(context.Background(), res, cfg.Verify, opts...)
	if err != nil {
		return err
	}
	return finish(cfg.MainConfig, cc, res, []byte(out))
}

func renderSQL(ctx context.Context, res *convert.Result, verify bool, opts ...ddl.Option) (string, error) {
	e := ddl.New(res.Resolver, opts...)
	roots := res.Roots()
	if verify {
		stmts, err := e.Statements(roots)
		if err != nil {
			return "", err
		}
		if err := ddl.Verify(ctx, stmts); err != nil {
			return "", err
		}
	}
	return e.Script(roots)
}
