// Package sanitize removes wiki parser noise from transcription text before it is stored.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// MediaWiki appends these reports as HTML comments to rendered page text.
	limitReport     = regexp.MustCompile(`(?s)<!--\s*NewPP limit report.*?-->`)
	parserCache     = regexp.MustCompile(`(?s)<!--\s*Saved in parser cache.*?-->`)
	transclusionLog = regexp.MustCompile(`(?s)<!--\s*Transclusion expansion time report.*?-->`)

	noise = []*regexp.Regexp{limitReport, transclusionLog, parserCache}
)

// Transcription strips every known noise comment and trims the whitespace the
// removal leaves at the end of the text. Text without noise is returned unchanged.
func Transcription(text string) string {
	out := text
	for _, re := range noise {
		out = re.ReplaceAllString(out, "")
	}
	if out == text {
		return text
	}
	return strings.TrimRight(out, " \t\r\n")
}

// HasNoise reports whether text still contains a known noise comment.
func HasNoise(text string) bool {
	for _, re := range noise {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
