package assets

// DefaultTemplateName is the built-in template used when none is configured.
const DefaultTemplateName = "default"

// TemplateLoader loads HTML page templates by name (without .html extension).
// Implementations may read from embedded assets, a directory, a database, etc.
type TemplateLoader interface {
	// LoadTemplate returns ErrTemplateNotFound if the template doesn't exist
	// and ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
