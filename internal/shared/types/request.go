package types

// FragmentRequest carries a builder navigation fragment such as "#/builder?u=..&n=..&c=.."
type FragmentRequest struct {
	Fragment string `json:"fragment" binding:"required"`
}

// IconGenerateRequest asks the image service for a new icon
type IconGenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// IconEditRequest asks the image service to edit an existing image
type IconEditRequest struct {
	Image  string `json:"image" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

// IconResult is the response of an icon assist call
type IconResult struct {
	OK      bool   `json:"ok"`
	Image   string `json:"image,omitempty"`
	Message string `json:"message,omitempty"`
}

// WSMessage represents a WebSocket message from a build stream client
type WSMessage struct {
	Type string `json:"type"`
}
