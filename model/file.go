package model

// FileInfo describes a file held in the app's storage. The client moves opaque
// bytes only - the at-rest format is the server's concern.
type FileInfo struct {
	Path        string `json:"path"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url,omitempty"`
}
