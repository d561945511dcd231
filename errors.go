package textformatter

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyTemplate  = errors.New("template content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Metadata validation errors.
	ErrReservedKey        = errors.New("reserved metadata key")
	ErrInvalidMetadataKey = errors.New("invalid metadata key")

	// Template loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
