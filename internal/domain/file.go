package domain

import "time"

// File es la metadata de un archivo subido; los bytes viven en disco bajo Path.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	UploaderID  string    `json:"uploader_id"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	UploadedAt  time.Time `json:"upload_date"`
}
