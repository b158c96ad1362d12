package segment

import "strings"

// DefaultSeparators split a description into its front (color and
// pattern) and back (size, remark, quantity) parts.
var DefaultSeparators = []rune{',', ' ', ';'}

// SplitOutsideParentheses splits text at the first separator that sits
// outside any parenthesized group. Both half-width and full-width
// parentheses open a group. When no separator qualifies, or either half
// of the split would be empty, the whole text is returned as the front
// part.
func SplitOutsideParentheses(text string, separators []rune) (front, back string) {
	if text == "" {
		return "", ""
	}

	sepSet := make(map[rune]bool, len(separators))
	for _, sep := range separators {
		sepSet[sep] = true
	}

	depth := 0
	splitAt := -1
	for i, r := range text {
		switch {
		case r == '(' || r == '（':
			depth++
		case r == ')' || r == '）':
			if depth > 0 {
				depth--
			}
		case depth == 0 && sepSet[r]:
			splitAt = i
		}
		if splitAt >= 0 {
			break
		}
	}

	if splitAt < 0 {
		return text, ""
	}

	cutset := string(separators)
	front = strings.TrimRight(text[:splitAt], cutset)
	back = strings.TrimLeft(text[splitAt:], cutset)
	if front == "" || back == "" {
		return text, ""
	}
	return front, back
}
