package model

import (
	"time"
)

const (
	FileTypeImage = "image"
	FileTypeCSV   = "csv"
	FileTypePDF   = "pdf"
	FileTypeOther = "other"
)

type File struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	OrgID     string    `db:"org_id" json:"orgId"`
	UserID    string    `db:"user_id" json:"userId"`
	StorageID string    `db:"storage_id" json:"storageId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// fileTypes maps declared content types to the closed file type enumeration.
var fileTypes = map[string]string{
	"image/png":     FileTypeImage,
	"image/jpeg":    FileTypeImage,
	"image/gif":     FileTypeImage,
	"image/webp":    FileTypeImage,
	"image/svg+xml": FileTypeImage,

	"application/pdf": FileTypePDF,

	"text/csv":                 FileTypeCSV,
	"application/csv":          FileTypeCSV,
	"application/vnd.ms-excel": FileTypeCSV,
}

// FileTypeFromContentType maps a MIME content type to a file type.
// Unknown content types fall back to "other".
func FileTypeFromContentType(contentType string) string {
	t, ok := fileTypes[contentType]
	if ok {
		return t
	}
	return FileTypeOther
}

// ValidFileType reports whether t is one of the known file types.
func ValidFileType(t string) bool {
	switch t {
	case FileTypeImage, FileTypeCSV, FileTypePDF, FileTypeOther:
		return true
	}
	return false
}
