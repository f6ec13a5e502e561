// Package goquery extracts recipe records and listing links from HTML
// using CSS selectors.
package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ricette"
)

// Ensure Extractor implements ricette.RecipeExtractor at compile time.
var _ ricette.RecipeExtractor = (*Extractor)(nil)

// UnknownLabelFunc is called for every infobox label the extractor does not
// map to a recipe field.
type UnknownLabelFunc func(sourceURL, label, value string)

// Extractor builds recipes from recipe pages and collects recipe links from
// category listing pages.
type Extractor struct {
	sel          Selectors
	base         *url.URL
	unknownLabel UnknownLabelFunc
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the default GialloZafferano selectors.
func WithSelectors(sel Selectors) Option {
	return func(e *Extractor) {
		e.sel = sel
	}
}

// WithBaseURL resolves relative listing links against base.
// Without it, hrefs are returned as they appear in the page.
func WithBaseURL(base *url.URL) Option {
	return func(e *Extractor) {
		e.base = base
	}
}

// WithUnknownLabelFunc registers a callback for unrecognized infobox labels.
func WithUnknownLabelFunc(fn UnknownLabelFunc) Option {
	return func(e *Extractor) {
		e.unknownLabel = fn
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{sel: GialloZafferanoSelectors()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractRecipe builds a Recipe from the HTML of a recipe page.
// Only the title is required; every other field degrades to nil or empty.
func (e *Extractor) ExtractRecipe(html string, sourceURL string) (*ricette.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ricette.Errorf(ricette.EINVALID, "failed to parse HTML: %v", err)
	}

	title := doc.Find(e.sel.Title).First()
	if title.Length() == 0 {
		return nil, &ricette.ExtractionError{URL: sourceURL, Field: "recipe"}
	}

	recipe := &ricette.Recipe{
		Name:        strings.ToLower(strings.TrimSpace(title.Text())),
		Ingredients: e.ingredients(doc),
		Category:    e.categories(doc),
		Steps:       e.steps(doc),
		SourceURL:   sourceURL,
	}
	e.applyInfobox(doc, sourceURL, recipe)

	return recipe, nil
}

// ExtractRecipeLinks returns the href of every recipe heading on a listing
// page in document order. Headings without a link are skipped.
func (e *Extractor) ExtractRecipeLinks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []string{}
	}

	links := []string{}
	doc.Find(e.sel.ListingTitle).Each(func(_ int, heading *goquery.Selection) {
		href, exists := heading.Find("a").First().Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}
		if e.base != nil {
			href = resolveURL(e.base, href)
			if href == "" {
				return
			}
		}
		links = append(links, href)
	})
	return links
}

// categories merges the breadcrumb list and the secondary data block.
func (e *Extractor) categories(doc *goquery.Document) []string {
	categories := []string{}
	add := func(text string) {
		for _, line := range strings.Split(strings.ToLower(text), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || slices.Contains(categories, line) {
				continue
			}
			categories = append(categories, line)
		}
	}

	breadcrumb := doc.Find(e.sel.Breadcrumb).First()
	if breadcrumb.Length() > 0 {
		item := breadcrumb.Find("div").First().Find("ul").First().Find("li").First()
		add(item.Text())
	}

	if other := doc.Find(e.sel.OtherData).First(); other.Length() > 0 {
		add(other.Text())
	}

	return categories
}

// applyInfobox fills difficulty, servings, price and timing from the
// "label: value" entries of the infobox. Repeated identical entries are
// ignored; a label seen again with a different value overrides the earlier
// one.
func (e *Extractor) applyInfobox(doc *goquery.Document, sourceURL string, recipe *ricette.Recipe) {
	var seen [][]string
	doc.Find(e.sel.FeaturedData).Each(func(_ int, span *goquery.Selection) {
		parts := strings.Split(span.Text(), ":")
		for i := range parts {
			parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
		}
		if len(parts) < 2 {
			return
		}
		for _, prev := range seen {
			if slices.Equal(prev, parts) {
				return
			}
		}
		seen = append(seen, parts)

		// Values such as "1:30 h" contain colons of their own.
		label, value := parts[0], strings.Join(parts[1:], ":")
		switch label {
		case labelDifficulty:
			recipe.Difficulty = &value
		case labelPreparation:
			recipe.Time.Preparation = &value
		case labelCooking:
			recipe.Time.Cooking = &value
		case labelServings:
			recipe.Servings = &value
		case labelPrice:
			recipe.Price = &value
		default:
			if e.unknownLabel != nil {
				e.unknownLabel(sourceURL, label, value)
			}
		}
	})
}

// steps returns the cleaned text of each step container in page order.
func (e *Extractor) steps(doc *goquery.Document) ricette.Steps {
	steps := ricette.Steps{}
	doc.Find(e.sel.Step).Each(func(_ int, step *goquery.Selection) {
		step.Find(e.sel.StepNumber).Remove()

		text := step.Find("p").First()
		if text.Length() == 0 {
			text = step
		}
		steps = append(steps, cleanStepText(text.Text()))
	})
	return steps
}

// ingredients returns one entry per distinct ingredient name, keeping the
// first occurrence when the page repeats an ingredient block.
func (e *Extractor) ingredients(doc *goquery.Document) []ricette.Ingredient {
	ingredients := []ricette.Ingredient{}
	seen := make(map[string]bool)
	doc.Find(e.sel.Ingredient).Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a").First()
		if link.Length() == 0 {
			return
		}
		name := strings.ToLower(strings.TrimSpace(stripTabsAndNewlines(link.Text())))
		if seen[name] {
			return
		}
		seen[name] = true

		amount := strings.TrimSpace(stripTabsAndNewlines(row.Find("span").First().Text()))
		ingredients = append(ingredients, ricette.Ingredient{
			Name:     name,
			Quantity: ricette.ParseQuantity(amount),
		})
	})
	return ingredients
}

var punctuationSpacing = strings.NewReplacer(" ,", ",", " .", ".", " ;", ";", " :", ":")

// cleanStepText collapses whitespace and removes spaces before punctuation.
func cleanStepText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return punctuationSpacing.Replace(text)
}

func stripTabsAndNewlines(s string) string {
	return strings.NewReplacer("\t", "", "\n", "").Replace(s)
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped. Returns empty string if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
