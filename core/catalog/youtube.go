package catalog

import (
	"regexp"
	"strings"
)

// Accepts "youtube.com/watch?v=<id>" and "youtu.be/<id>"; the id runs until
// the next query, fragment or line separator.
var youtubeURL = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)

// ExtractYouTubeID returns the video id referenced by a YouTube URL.
func ExtractYouTubeID(raw string) (string, bool) {
	m := youtubeURL.FindStringSubmatch(strings.TrimSpace(raw))
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// ThumbnailURL is the high resolution still YouTube serves for a video id.
func ThumbnailURL(youtubeID string) string {
	return "https://img.youtube.com/vi/" + youtubeID + "/maxresdefault.jpg"
}
