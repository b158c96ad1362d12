package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// quantitySeparators introduce an inline quantity at the end of a spec
// text, as in "XL*3" or "均码 : 12".
var quantitySeparators = []string{":", "*"}

var leadingDigitsRe = regexp.MustCompile(`^\d+`)

// Quantity extracts an inline quantity from spec text. The rightmost
// separator occurrence wins; separators padded with up to three spaces
// on either side also count. Returns the quantity, the text with the
// quantity clause removed, and whether a quantity was found.
func Quantity(specText string) (int, string, bool) {
	foundIndex := -1
	foundSep := ""
	for _, sep := range quantitySeparators {
		for _, variant := range separatorVariants(sep) {
			if idx := strings.LastIndex(specText, variant); idx > foundIndex {
				foundIndex = idx
				foundSep = variant
			}
		}
	}
	if foundIndex == -1 {
		return 0, specText, false
	}

	numPart := strings.TrimSpace(specText[foundIndex+len(foundSep):])
	digits := leadingDigitsRe.FindString(numPart)
	if digits == "" {
		return 0, specText, false
	}
	qty, err := strconv.Atoi(digits)
	if err != nil {
		return 0, specText, false
	}
	return qty, strings.TrimSpace(specText[:foundIndex]), true
}

func separatorVariants(sep string) []string {
	variants := []string{sep}
	for _, space := range []string{" ", "  ", "   "} {
		variants = append(variants,
			space+sep,
			sep+space,
			space+sep+space)
	}
	return variants
}
