package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y (default from file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(), "(format)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"emit"},
			Description: "run the command for this output: shape, sql, markdown",
			Type:        cli.NamedFuncOpt(cfg.emitOpt, "(output)"),
		},
		&cli.Opt{
			Name:        "defs",
			Description: "schema file registered for $ref resolution only, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.defsOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "jsc").
		WithSynopsis("jsc [opts] command [opts] [files] or jsc -O output [opts] [files]").
		WithDescription("jsc converts JSON Schema documents to array shapes, SQL and Markdown.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jscMain(cfg, cc, args)
		}).
		WithSubs(
			ShapeCommand(cfg),
			SQLCommand(cfg),
			MarkdownCommand(cfg),
			RegistryCommand(cfg))
}

func ShapeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShapeConfig{MainConfig: mainCfg, Width: 2}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Shape, "shape").
		WithAliases("s", "array").
		WithSynopsis("shape [-indent] [-color] [files]").
		WithDescription("print the array shape of each schema document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shapeMain(cfg, cc, args)
		})
}

func SQLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SQLConfig{MainConfig: mainCfg, Dialect: "mysql"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.SQL, "sql").
		WithAliases("ddl").
		WithSynopsis("sql [-dialect mysql|sqlite] [-verify] [files]").
		WithDescription(sqlDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sqlMain(cfg, cc, args)
		})
}

const sqlDescription = `sql prints a CREATE TABLE statement for each object schema document.

Properties referring to another object schema become foreign key columns
named after the property with an _id suffix, with an index on each.
-verify executes the statements against an in-memory SQLite database and
requires -dialect sqlite.`

func MarkdownCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MarkdownConfig{MainConfig: mainCfg, Width: 80}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Markdown, "markdown").
		WithAliases("md").
		WithSynopsis("markdown [-preview] [-width n] [-style s] [files]").
		WithDescription("print Markdown documentation for each schema document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return markdownMain(cfg, cc, args)
		})
}

func RegistryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RegistryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Registry, "registry").
		WithAliases("reg", "ls").
		WithSynopsis("registry [files]").
		WithDescription("list the registered schema ids and the documents defining them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return registryMain(cfg, cc, args)
		})
}
