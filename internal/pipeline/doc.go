// Package pipeline implements the text-to-HTML transformation stages.
//
// The stages run strictly one after another:
//   - Metadata extraction (leading "---" block of "key: value" lines)
//   - Mark substitution (ordered rule table: emphasis, headings, stanzas, paragraphs)
//   - Template merging ($key$ placeholders resolved against the metadata)
//
// Every stage is a pure function over strings. None of them returns an error:
// malformed metadata lines are skipped, unterminated marks stay literal and
// unknown placeholders are left verbatim.
//
// File I/O, PDF rendering and logging live outside this package, in the root
// textformatter package and the CLI. The HTML helpers in this package
// (relative path rewriting, element statistics) support those callers.
package pipeline
