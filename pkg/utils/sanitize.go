package utils

import (
	"regexp"
	"strings"
)

// Excel rejects these characters in sheet names and caps the name at 31
// characters.
var invalidSheetChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// SanitizeSheetName makes a string safe to use as an Excel sheet name.
func SanitizeSheetName(name string) string {
	name = strings.TrimSpace(name)
	name = invalidSheetChars.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		return "Sheet"
	}
	return name
}

var invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeFileName makes a string safe to use as a file name component.
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	return strings.Trim(name, ". ")
}
