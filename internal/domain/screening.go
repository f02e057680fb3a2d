package domain

import (
	"fmt"
	"strings"
	"unicode"
)

type ScreeningResult struct {
	Passed bool
	Reason string
}

// prohibitedKeywords is scanned in order; the first match decides the
// rejection reason.
var prohibitedKeywords = []string{
	"scam",
	"illegal",
	"fake",
	"counterfeit",
	"replica",
	"knockoff",
	"stolen",
	"fraud",
	"pyramid scheme",
	"mlm",
	"prescription",
	"narcotic",
	"weapon",
	"gun",
	"firearm",
	"explosive",
	"ammunition",
	"cocaine",
	"heroin",
}

const minDescriptionLength = 20

// Screen runs the listing text policy checks in a fixed order: keyword scan,
// then description length, then title capitalization. The first failing
// check wins and no further checks run.
func Screen(title, description string) ScreeningResult {
	haystack := strings.ToLower(title) + " " + strings.ToLower(description)
	for _, keyword := range prohibitedKeywords {
		if strings.Contains(haystack, keyword) {
			return ScreeningResult{
				Reason: fmt.Sprintf("Listing contains prohibited content: %q", keyword),
			}
		}
	}

	if len(description) < minDescriptionLength {
		return ScreeningResult{Reason: "Description is too short."}
	}

	if titleLen := len([]rune(title)); titleLen > 0 {
		upper := 0
		for _, r := range title {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper)/float64(titleLen) > 0.5 {
			return ScreeningResult{Reason: "Title contains excessive capitalization."}
		}
	}

	return ScreeningResult{Passed: true}
}
