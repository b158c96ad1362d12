package segment

import (
	"regexp"
	"strings"
)

// Recognized size shapes, tried in order before the generic fallbacks.
var (
	sizeBracketRe   = regexp.MustCompile(`^\s*([^\s\(\)（）]+?)\s*[\(（][^\)）]*[\)）]\s*(.*)$`)
	sizeCombinedRe  = regexp.MustCompile(`(?i)^\s*(均码|[X]{1,3}[L]|\d{2,3}[A-Z]?|中国(?:码|号型[A-CY])|腰围\d+|通用码)(.*)$`)
	digitBoundaryRe = regexp.MustCompile(`^(\d+)([^\d].*)$`)
)

// SizeRemark splits a description's back part into its size and remark.
// A size followed by a bracketed note drops the note into the remark.
// Then the known size patterns apply, then a digits/non-digits boundary,
// and finally a whitespace split.
func SizeRemark(back string) (size, remark string) {
	if m := sizeBracketRe.FindStringSubmatch(back); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := sizeCombinedRe.FindStringSubmatch(back); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := digitBoundaryRe.FindStringSubmatch(back); m != nil {
		return m[1], m[2]
	}
	fields := strings.Fields(back)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
