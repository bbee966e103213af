package icon

import (
	"regexp"
	"strings"
)

const DefaultMimeType = "image/png"

var mediaTypePattern = regexp.MustCompile(`data:([^;]+);`)

// ParseDataURL splits an image source into its base64 payload and media type.
// The payload is the text after "base64," when present, otherwise the whole
// input. The media type comes from a "data:<type>;" prefix, or image/png.
func ParseDataURL(source string) (payload, mimeType string) {
	payload = source
	if _, after, found := strings.Cut(source, "base64,"); found {
		payload = after
	}

	mimeType = DefaultMimeType
	if m := mediaTypePattern.FindStringSubmatch(source); m != nil {
		mimeType = m[1]
	}
	return payload, mimeType
}

// DataURL formats base64 image data as a data URL
func DataURL(mimeType, data string) string {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return "data:" + mimeType + ";base64," + data
}
