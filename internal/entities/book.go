package entities

import "time"

// SupportedExtensions lists the file extensions the scanner admits into the
// catalog. Extensions are stored lowercase with the leading dot.
var SupportedExtensions = []string{".pdf", ".epub", ".mobi"}

// Book is one catalog record describing a discovered or converted book file.
// Path is the natural key: re-scanning the same folder must never create a
// second row for the same file.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Extension string    `gorm:"size:10" json:"extension"`
	Read      bool      `gorm:"default:false" json:"read"`
	Path      string    `gorm:"uniqueIndex;size:1024" json:"path"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// IsSupportedExtension reports whether ext (lowercase, with dot) is one of
// the supported book formats.
func IsSupportedExtension(ext string) bool {
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
