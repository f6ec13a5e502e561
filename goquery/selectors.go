package goquery

// Selectors holds the CSS selectors used to locate recipe data on a page.
// The zero value is not usable; start from GialloZafferanoSelectors.
type Selectors struct {
	// Title is the recipe title heading. Required.
	Title string
	// Breadcrumb is the container holding the category breadcrumb list.
	Breadcrumb string
	// OtherData is the secondary block listing extra categories.
	OtherData string
	// FeaturedData matches each "label: value" infobox entry.
	FeaturedData string
	// Step matches each preparation step container.
	Step string
	// StepNumber matches the step-number marker inside a step container.
	StepNumber string
	// Ingredient matches each ingredient row.
	Ingredient string
	// ListingTitle matches recipe headings on a category listing page.
	ListingTitle string
}

// GialloZafferanoSelectors returns the selectors for giallozafferano.it.
func GialloZafferanoSelectors() Selectors {
	return Selectors{
		Title:        "h1.gz-title-recipe",
		Breadcrumb:   "div.gz-title-content.gz-innerdesktop",
		OtherData:    "div.gz-list-featured-data-other",
		FeaturedData: "span.gz-name-featured-data",
		Step:         "div.gz-content-recipe-step",
		StepNumber:   "span.num-step",
		Ingredient:   "dd.gz-ingredient",
		ListingTitle: "h2.gz-title",
	}
}

// Infobox labels mapped to recipe fields.
const (
	labelDifficulty  = "difficoltà"
	labelPreparation = "preparazione"
	labelCooking     = "cottura"
	labelServings    = "dosi per"
	labelPrice       = "costo"
)
