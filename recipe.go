package ricette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Quantity is a parsed ingredient amount. At most one of StandardUnit and
// Descriptor is set.
type Quantity struct {
	Amount       *string `json:"amount"`
	StandardUnit *string `json:"standard_unit"`
	Descriptor   *string `json:"descriptor"`
}

// Ingredient is a single ingredient row of a recipe.
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
}

// Time holds the raw preparation and cooking durations as shown on the page.
type Time struct {
	Preparation *string `json:"preparation"`
	Cooking     *string `json:"cooking"`
}

// Recipe is a structured record extracted from one recipe page.
// SourceURL is its identity key.
//
// JSON field names match the chunk files written by earlier crawls.
type Recipe struct {
	Name        string       `json:"recipe"`
	Ingredients []Ingredient `json:"ingredients"`
	Category    []string     `json:"category"`
	Difficulty  *string      `json:"difficulty"`
	Servings    *string      `json:"dosage_for"`
	Price       *string      `json:"price"`
	Time        Time         `json:"time"`
	Steps       Steps        `json:"steps"`
	SourceURL   string       `json:"link"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "recipe name required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "recipe source URL required")
	}
	return nil
}

// Steps is the ordered list of preparation steps. It serializes as a JSON
// object keyed by the zero-based step index, in page order.
type Steps []string

// MarshalJSON encodes the steps as {"0": "...", "1": "..."}.
func (s Steps) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, step := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", strconv.Itoa(i))
		text, err := json.Marshal(step)
		if err != nil {
			return nil, err
		}
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a step object, ordering entries by their numeric key.
func (s *Steps) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type entry struct {
		index int
		text  string
	}
	entries := make([]entry, 0, len(raw))
	for key, text := range raw {
		index, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid step index %q: %w", key, err)
		}
		entries = append(entries, entry{index: index, text: text})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	steps := make(Steps, len(entries))
	for i, e := range entries {
		steps[i] = e.text
	}
	*s = steps
	return nil
}
