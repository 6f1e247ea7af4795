package main

import (
	"github.com/signadot/jsc/convert"
	"github.com/signadot/jsc/markdown"

	"github.com/scott-cotton/cli"
)

func markdownMain(cfg *MarkdownConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Markdown.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Width <= 0 {
		return fmtUsage("-width must be positive")
	}
	res, err := load(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	out, err := renderMarkdown(res, cfg)
	if err != nil {
		return err
	}
	return finish(cfg.MainConfig, cc, res, []byte(out))
}

func renderMarkdown(res *convert.Result, cfg *MarkdownConfig) (string, error) {
	md, err := markdown.New(res.Resolver, markdown.WithLogger(cfg.logger())).Documents(res.Roots())
	if err != nil {
		return "", err
	}
	if !cfg.Preview {
		return md, nil
	}
	return markdown.Preview(md, cfg.Width, cfg.Style)
}
