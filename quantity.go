package ricette

import (
	"regexp"
	"strings"
)

// quantityPattern matches either "number [word]" or "(word)number".
// Word characters include accented letters, so Italian units like "cucchiaini"
// are captured whole.
var quantityPattern = regexp.MustCompile(`(\d+\.?\d*)\s*([\p{L}\p{N}_]+)?|(\([\p{L}\p{N}_]+\))(\d+\.?\d*)`)

// knownUnits is the set of standard cooking units.
var knownUnits = map[string]struct{}{
	"tsp": {}, "tbsp": {}, "fl oz": {}, "c": {}, "pt": {}, "qt": {}, "gal": {},
	"ml": {}, "l": {}, "oz": {}, "lb": {}, "g": {}, "kg": {}, "cl": {},
	"cm": {}, "m": {},
}

// IsKnownUnit reports whether measure is a standard cooking unit.
func IsKnownUnit(measure string) bool {
	_, ok := knownUnits[strings.ToLower(strings.TrimSpace(measure))]
	return ok
}

// ParseQuantity parses free text such as "500 g" or "2 uova (circa 100 g)"
// into a Quantity. The last numeric match in the text wins, so a trailing
// parenthetical clarifier overrides the leading amount.
//
// ParseQuantity never fails: missing parts are nil. Text without any number
// is kept verbatim as the descriptor ("q.b." stays "q.b.").
func ParseQuantity(text string) Quantity {
	text = strings.ToLower(text)

	var amount, measure string
	matches := quantityPattern.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		if m[1] != "" {
			amount, measure = m[1], m[2]
		} else if m[4] != "" {
			amount, measure = m[4], strings.Trim(m[3], "()")
		}
	}

	if len(matches) == 0 {
		if desc := strings.TrimSpace(text); desc != "" {
			return Quantity{Descriptor: &desc}
		}
		return Quantity{}
	}

	var q Quantity
	if amount != "" {
		q.Amount = &amount
	}
	if measure == "" {
		return q
	}
	if IsKnownUnit(measure) {
		q.StandardUnit = &measure
	} else {
		q.Descriptor = &measure
	}
	return q
}
