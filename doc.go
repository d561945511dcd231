// Package textformatter turns lightly marked-up plain text into HTML pages,
// and optionally PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert text, and close when done:
//
//	conv, err := textformatter.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, textformatter.Input{
//	    Text: "---\ntitle: Hello\n---\n# Hello\nSome **bold** text",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Metadata extraction: a leading block of "key: value" lines between
//     "---" delimiters becomes the document metadata
//  2. Mark substitution: **bold**, *italic*, _italic_, ~~strike~~,
//     "# heading", "/" delimited stanzas and paragraphs, applied as an
//     ordered list of regular expression rules
//  3. Template merge: $key$ placeholders are replaced by metadata values,
//     $body$ by the formatted body; unknown placeholders are kept
//  4. Optional PDF rendering via headless Chrome (go-rod)
//
// Stages 1 to 3 never fail. They are also available as the standalone
// functions ExtractMetadata, FormatBody, MergeTemplate and Render.
//
// # Metadata Precedence
//
// Input.Metadata provides defaults, the document's own block overrides them,
// and Input.Overrides wins over both. The key "body" is reserved.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := textformatter.NewConverter(
//	    textformatter.WithTemplate("plain"),         // built-in name or file path
//	    textformatter.WithTemplateDir("/my/assets"), // templates/{name}.html overrides
//	    textformatter.WithTimeout(2 * time.Minute),
//	    textformatter.WithLogger(slog.Default()),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := textformatter.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package textformatter
