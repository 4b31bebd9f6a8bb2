package pipeline

import "regexp"

// FallbackPlaylistID is used when no playlist token can be extracted
// from the URL. Two different URLs without a recognizable token
// therefore alias to the same job and collection.
const FallbackPlaylistID = "default_playlist"

var playlistIDPattern = regexp.MustCompile(`list=([\w-]+)`)

// ExtractPlaylistID derives the stable playlist identifier from a URL
func ExtractPlaylistID(playlistURL string) string {
	if m := playlistIDPattern.FindStringSubmatch(playlistURL); m != nil {
		return m[1]
	}
	return FallbackPlaylistID
}
