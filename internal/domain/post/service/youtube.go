package service

import "regexp"

// Accepted URL shapes: watch?v=, youtu.be/, embed/, shorts/. Video IDs are
// always 11 characters.
var (
	youtubeVideoPattern    = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	youtubePlaylistPattern = regexp.MustCompile(`[?&]list=([A-Za-z0-9_-]+)`)
)

// extractYoutubeVideoID pulls the 11-character video ID out of a YouTube
// URL, or returns "" when the URL carries none.
func extractYoutubeVideoID(url string) string {
	if m := youtubeVideoPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// extractYoutubePlaylistID pulls the list parameter out of a YouTube URL.
// A URL can carry both a video and a playlist ID; the playlist wins when
// deciding the post type.
func extractYoutubePlaylistID(url string) string {
	if m := youtubePlaylistPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
