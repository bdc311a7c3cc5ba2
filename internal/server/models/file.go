package models

import "time"

// FileMeta describes an uploaded file. The bytes live in the upload
// transport (local disk or object storage) under Filename.
type FileMeta struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	FilePath     string    `json:"file_path"`
	UploadedAt   time.Time `json:"uploaded_at"`
	PostID       *string   `json:"post_id,omitempty"`
}
