package analysis

import "errors"

// Client-caused failures of the analysis pipeline. Handlers map these to 4xx
// responses; anything else is treated as an internal error.
var (
	// ErrInvalidInput indicates text too short or without any sentence/word.
	ErrInvalidInput = errors.New("text must be at least 10 characters long and contain at least one sentence and word")

	// ErrUnsupportedFormat indicates a file type outside the allowed set.
	ErrUnsupportedFormat = errors.New("unsupported file type (allowed: txt, pdf, docx)")

	// ErrEmptyDocument indicates a parseable document with no extractable text,
	// e.g. a scanned image-only PDF.
	ErrEmptyDocument = errors.New("no text found in document")

	// ErrExtractionFailed indicates a document that could not be decoded/parsed.
	ErrExtractionFailed = errors.New("failed to extract text from file")

	// ErrPayloadTooLarge indicates an upload above the configured size limit.
	ErrPayloadTooLarge = errors.New("file too large")
)
