package main

import (
	"fmt"

	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/crawl"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	recipes, err := deps.Chunks.ReadChunks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}
	if len(recipes) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no crawled recipes found. Run 'ricette crawl' first.")
		return ricette.Errorf(ricette.ENOTFOUND, "no crawled recipes")
	}

	created, err := deps.Indexer.EnsureIndex(deps.Ctx, crawl.RecipeMappings)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}
	if created {
		fmt.Fprintln(deps.Stdout, "Created index")
	}

	n, err := deps.Indexer.IndexData(deps.Ctx, recipes)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d recipes\n", n)
	return nil
}
