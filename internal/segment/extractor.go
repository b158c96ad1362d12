package segment

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var bracketRe = regexp.MustCompile(`[\(（]([^\)）]+)[\)）]`)

// Extractor parses color and pattern out of description fragments using
// a rule set. New colors seen during extraction accumulate on the
// extractor and can be folded back into the rules file afterwards.
type Extractor struct {
	rules     *Rules
	colorKeys []string // dictionary keys, longest first
	inDict    map[string]bool
	newColors map[string]bool
	logger    *zap.Logger
}

// NewExtractor creates an extractor over rules.
func NewExtractor(rules *Rules, logger *zap.Logger) *Extractor {
	keys := append([]string(nil), rules.ColorDictionary.Values...)
	// Longest keys match first so 深灰色 wins over 灰色.
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	inDict := make(map[string]bool, len(keys))
	for _, k := range keys {
		inDict[k] = true
	}
	return &Extractor{
		rules:     rules,
		colorKeys: keys,
		inDict:    inDict,
		newColors: make(map[string]bool),
		logger:    logger,
	}
}

// ColorPattern extracts the color and pattern from a description's front
// part. Bracketed content is the pattern when present; otherwise the
// text after a leading dictionary color is. Text with no dictionary
// color becomes the color verbatim. Merge rules apply last.
func (e *Extractor) ColorPattern(front string) (color, pattern string) {
	front = strings.TrimSpace(front)
	if front == "" {
		return NoColor, NoPattern
	}

	if m := bracketRe.FindStringSubmatch(front); m != nil {
		pattern = strings.TrimSpace(m[1])
		remaining := strings.TrimSpace(bracketRe.ReplaceAllString(front, ""))
		color = e.colorPrefix(remaining)
		if color == "" {
			color = remaining
		}
	} else {
		color = e.colorPrefix(front)
		if color == "" {
			color = front
			pattern = NoPattern
		} else {
			pattern = strings.TrimSpace(front[len(color):])
			if pattern == "" {
				pattern = NoPattern
			}
		}
	}

	if color == "" {
		color = NoColor
	}
	if pattern == "" {
		pattern = NoPattern
	}

	if merged, ok := e.rules.ColorMerging[color]; ok {
		color = merged
	}
	if merged, ok := e.rules.PatternMerging[pattern]; ok {
		pattern = merged
	}

	if color != NoColor && !e.inDict[color] && !e.newColors[color] {
		e.newColors[color] = true
		e.logger.Info("Discovered new color", zap.String("color", color))
	}
	return color, pattern
}

// colorPrefix returns the longest dictionary color the text starts
// with, or "" when none matches.
func (e *Extractor) colorPrefix(text string) string {
	for _, key := range e.colorKeys {
		if strings.HasPrefix(text, key) {
			return key
		}
	}
	return ""
}

// NewColors lists the colors discovered since construction, sorted.
func (e *Extractor) NewColors() []string {
	colors := make([]string, 0, len(e.newColors))
	for c := range e.newColors {
		colors = append(colors, c)
	}
	sort.Strings(colors)
	return colors
}

// SaveRules appends the discovered colors to the dictionary and writes
// the rules back to path. A no-op when nothing new was seen.
func (e *Extractor) SaveRules(path string) error {
	discovered := e.NewColors()
	if len(discovered) == 0 {
		return nil
	}
	e.rules.ColorDictionary.Values = append(e.rules.ColorDictionary.Values, discovered...)
	e.logger.Info("Saving rules with new colors",
		zap.String("path", path),
		zap.Strings("colors", discovered))
	return e.rules.Save(path)
}
