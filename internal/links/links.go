// Package links extracts video identifiers from free text.
//
// Recognized link shapes, case-insensitively:
//
//	[scheme://][www.]youtube.com/watch?v=ID
//	[scheme://]youtu.be/ID
//
// where ID is one or more characters from [A-Za-z0-9_-]. Extraction is a
// pure function over text: order of appearance is preserved, duplicates are
// preserved, and garbage input yields an empty result. Deduplication is the
// aggregator's job.
package links

import "regexp"

var videoURL = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]+)`)

// Extract returns every video identifier embedded in text, in order of
// appearance. Empty or non-matching text returns an empty slice.
func Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	matches := videoURL.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
