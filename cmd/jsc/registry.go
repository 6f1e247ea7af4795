package main

import (
	"fmt"
	"strings"

	"github.com/signadot/jsc/convert"

	"github.com/scott-cotton/cli"
)

func registryMain(cfg *RegistryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Registry.Parse(cc, args)
	if err != nil {
		return err
	}
	res, err := load(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	return finish(cfg.MainConfig, cc, res, []byte(renderRegistry(res, cfg.All)))
}

// renderRegistry lists each registered id with the document defining it.
// Ids of embedded sub-schemas are listed only when all is set.
func renderRegistry(res *convert.Result, all bool) string {
	from := map[string]*convert.Item{}
	for _, it := range res.Items {
		if it.Err == nil {
			from[it.Key] = it
		}
	}
	b := &strings.Builder{}
	for _, id := range res.Registry.IDs() {
		it, ok := from[id]
		switch {
		case ok && it.Selected:
			fmt.Fprintf(b, "%s\t%s\n", id, it)
		case ok:
			fmt.Fprintf(b, "%s\t%s (not selected)\n", id, it)
		case all:
			fmt.Fprintf(b, "%s\tembedded\n", id)
		}
	}
	return b.String()
}
