package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/ricette"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	recipes, err := deps.Chunks.ReadChunks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}

	link := strings.TrimSpace(c.URL)
	var recipe *ricette.Recipe
	for _, r := range recipes {
		if r.SourceURL == link {
			recipe = r
			break
		}
	}
	if recipe == nil {
		fmt.Fprintf(deps.Stderr, "error: recipe %q not found. Run 'ricette crawl' first.\n", link)
		return ricette.Errorf(ricette.ENOTFOUND, "recipe %q not found", link)
	}
	if len(recipe.Ingredients) == 0 {
		fmt.Fprintf(deps.Stderr, "error: recipe %q has no ingredients\n", link)
		return ricette.Errorf(ricette.EINVALID, "recipe %q has no ingredients", link)
	}

	names := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		names = append(names, ing.Name)
	}

	classified, err := deps.Classifier.Classify(deps.Ctx, names)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ricette.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, recipe.Name)
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, ci := range classified {
		fmt.Fprintf(w, "  %s\t%s\n", ci.Name, ci.Category)
	}
	return w.Flush()
}
