package address

import (
	"regexp"
	"strings"
	"unicode"
)

// VariantKind identifies one of the fixed address transformations.
type VariantKind string

// Variant kinds in the order they are attempted during fuzzy geocoding.
const (
	VariantOriginal        VariantKind = "original"
	VariantNormalized      VariantKind = "normalized"
	VariantNoUnit          VariantKind = "no_unit"
	VariantNoSecondary     VariantKind = "no_secondary"
	VariantStreetCityState VariantKind = "street_city_state"
	VariantStreetZip       VariantKind = "street_zip"
)

// Variant is a candidate rewrite of a free-text address.
type Variant struct {
	Kind  VariantKind
	Value string
}

// abbreviations maps full street and direction words to their standard
// postal abbreviations. Matching is whole-word and case-insensitive.
var abbreviations = []struct {
	full string
	abbr string
}{
	{"STREET", "ST"},
	{"AVENUE", "AVE"},
	{"BOULEVARD", "BLVD"},
	{"DRIVE", "DR"},
	{"ROAD", "RD"},
	{"LANE", "LN"},
	{"COURT", "CT"},
	{"CIRCLE", "CIR"},
	{"PLACE", "PL"},
	{"HIGHWAY", "HWY"},
	{"PARKWAY", "PKWY"},
	{"APARTMENT", "APT"},
	{"SUITE", "STE"},
	{"NORTH", "N"},
	{"SOUTH", "S"},
	{"EAST", "E"},
	{"WEST", "W"},
	{"NORTHEAST", "NE"},
	{"NORTHWEST", "NW"},
	{"SOUTHEAST", "SE"},
	{"SOUTHWEST", "SW"},
}

var abbreviationPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(abbreviations))
	for _, m := range abbreviations {
		patterns = append(patterns, regexp.MustCompile(`\b`+m.full+`\b`))
	}
	return patterns
}()

var (
	unitPattern          = regexp.MustCompile(`(?i)\b(?:APT|UNIT|STE|#)\s*[\w-]+`)
	trailingCommaPattern = regexp.MustCompile(`,\s*$`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	spaceBeforeComma     = regexp.MustCompile(`\s+,`)
	cityStatePattern     = regexp.MustCompile(`(?i)^(.*?),\s*(.*?),\s*([A-Za-z]{2})(?:\s+\d{5}(?:-\d{4})?)?$`)
	streetPattern        = regexp.MustCompile(`^(.*?),`)
	zipPattern           = regexp.MustCompile(`\d{5}(?:-\d{4})?`)
)

// Variants produces the candidate rewrites of an address in the fixed order
// they must be attempted: the original text first, then progressively more
// aggressive simplifications. Callers skip variants whose value is empty.
func Variants(original string) []Variant {
	return []Variant{
		{Kind: VariantOriginal, Value: original},
		{Kind: VariantNormalized, Value: Normalize(original)},
		{Kind: VariantNoUnit, Value: RemoveUnit(original)},
		{Kind: VariantNoSecondary, Value: RemoveSecondary(original)},
		{Kind: VariantStreetCityState, Value: StreetCityState(original)},
		{Kind: VariantStreetZip, Value: StreetZip(original)},
	}
}

// Normalize standardizes street and direction abbreviations. The address is
// uppercased, full words are replaced with postal abbreviations (whole-word
// matches only), and the result is converted to title case for readability.
// Normalize is idempotent: applying it twice yields the same value.
func Normalize(addr string) string {
	if addr == "" {
		return addr
	}

	upper := strings.ToUpper(addr)
	for i, m := range abbreviations {
		upper = abbreviationPatterns[i].ReplaceAllString(upper, m.abbr)
	}

	return titleCase(upper)
}

// titleCase uppercases the first letter of each space-delimited token and
// lowercases the rest, leaving digits and punctuation untouched.
func titleCase(s string) string {
	runes := []rune(s)
	startOfToken := true
	for i, r := range runes {
		if unicode.IsSpace(r) {
			startOfToken = true
			continue
		}
		if unicode.IsLetter(r) {
			if startOfToken {
				runes[i] = unicode.ToUpper(r)
			} else {
				runes[i] = unicode.ToLower(r)
			}
		}
		startOfToken = false
	}
	return string(runes)
}

// RemoveUnit strips apartment, unit and suite designators (including their
// alphanumeric token) from the address, collapses the resulting whitespace
// and drops any trailing comma.
func RemoveUnit(addr string) string {
	if addr == "" {
		return addr
	}

	stripped := unitPattern.ReplaceAllString(addr, "")
	stripped = trailingCommaPattern.ReplaceAllString(stripped, "")
	stripped = whitespacePattern.ReplaceAllString(stripped, " ")
	stripped = spaceBeforeComma.ReplaceAllString(stripped, ",")

	return strings.TrimSpace(stripped)
}

// RemoveSecondary keeps only the text before the first comma, dropping any
// secondary address line.
func RemoveSecondary(addr string) string {
	if addr == "" {
		return addr
	}

	before, _, _ := strings.Cut(addr, ",")
	return strings.TrimSpace(before)
}

// StreetCityState re-emits the address as "<street>, <city>, <state>" when
// it matches the "street, city, two-letter state [zip]" shape, dropping the
// zip code. Addresses that do not match are returned unchanged.
func StreetCityState(addr string) string {
	if addr == "" {
		return addr
	}

	match := cityStatePattern.FindStringSubmatch(addr)
	if match == nil {
		return addr
	}

	return match[1] + ", " + match[2] + ", " + match[3]
}

// StreetZip re-emits the address as "<street>, <zip>" using the text before
// the first comma as the street and the first 5-digit (optionally +4) zip
// found anywhere in the string. Addresses missing either part are returned
// unchanged.
func StreetZip(addr string) string {
	if addr == "" {
		return addr
	}

	streetMatch := streetPattern.FindStringSubmatch(addr)
	zip := zipPattern.FindString(addr)
	if streetMatch == nil || zip == "" {
		return addr
	}

	return strings.TrimSpace(streetMatch[1]) + ", " + zip
}
