package models

import "time"

// FileKind distinguishes measurement data files from sequence files.
type FileKind string

const (
	FileKindData     FileKind = "data"
	FileKindSequence FileKind = "sequence"
	FileKindUnknown  FileKind = "unknown"
)

// FileInfo represents metadata about an uploaded file.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       FileKind  `json:"kind"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"` // "uploaded", "parsing", "parsed", "error"
}
