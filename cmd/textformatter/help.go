package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: textformatter [command] [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Format text files into HTML pages (default)")
	fmt.Fprintln(w, "  rules      List the formatting rules in application order")
	fmt.Fprintln(w, "  templates  List built-in templates or print one")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'textformatter help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: textformatter convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format a text file, or every .txt/.md/.markdown file of a directory,")
	fmt.Fprintln(w, "and merge the result into an HTML template.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Text file or directory (same as --input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>          Input file or directory (default input.txt)")
	fmt.Fprintln(w, "  -o, --output <path>         Output file, or directory in batch mode (default output.html)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <s>          Template file or built-in name")
	fmt.Fprintln(w, "                              (default ./template.html if present, else built-in)")
	fmt.Fprintln(w, "      --template-dir <dir>    Directory with templates/{name}.html overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata:")
	fmt.Fprintln(w, "  -m, --metadata-file <path>  YAML file of defaults (document metadata wins)")
	fmt.Fprintln(w, "  -s, --set <key=value>       Override a metadata value (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                   Also write <output>.pdf via headless Chrome")
	fmt.Fprintln(w, "      --timeout <d>           PDF generation timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show pipeline stages and timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "rules":
		fmt.Fprintln(env.Stdout, "Usage: textformatter rules")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the formatting rules as YAML, in application order.")
	case "templates":
		fmt.Fprintln(env.Stdout, "Usage: textformatter templates [name]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List built-in templates, or print the named one.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: textformatter version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: textformatter help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
