// Package assets provides the HTML page templates documents are merged into.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/templates/{name}.html on disk
//	    └── TemplateResolver  - custom directory first, embedded fallback
//
// Templates are plain HTML with $key$ placeholders. Every built-in template
// uses $body$ for the formatted document and $title$ for the page title.
//
// # Security
//
// Template names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
