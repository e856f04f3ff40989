// internal/models/attachment.go
package models

// Attachment is a reference to an uploaded document. The bytes live with the
// upstream API once the owning step is submitted; the progress record only
// carries the reference.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
