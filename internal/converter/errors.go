package converter

import "fmt"

// ConversionError is returned for any unrecoverable conversion failure: an
// unreadable archive, a container with no extractable text, or a layout
// failure. The wrapped cause carries the human-readable detail.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("EPUB conversion failed for %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func conversionErr(path string, format string, args ...any) error {
	return &ConversionError{Path: path, Err: fmt.Errorf(format, args...)}
}
