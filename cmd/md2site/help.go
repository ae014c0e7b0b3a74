package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site (default when no command is given)")
	fmt.Fprintln(w, "  convert    Convert a single markdown page")
	fmt.Fprintln(w, "  init       Create a starter site.yaml and content/index.md")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy the static directory into a fresh output directory, then convert")
	fmt.Fprintln(w, "every .md/.markdown file of the content directory into an .html page")
	fmt.Fprintln(w, "at the same relative path.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --content <dir>       Markdown sources (default ./content)")
	fmt.Fprintln(w, "      --static <dir>        Static files (default ./static)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, removed first (default ./public)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default site.yaml if present)")
	fmt.Fprintln(w)
	printRenderUsage(w)
	printOutputControlUsage(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site convert <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one markdown page. The page is written to stdout unless")
	fmt.Fprintln(w, "--output is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	printRenderUsage(w)
	printOutputControlUsage(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a config file holding the default settings, and a first page")
	fmt.Fprintln(w, "when the content directory does not exist.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Config file to create (default site.yaml)")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing config file")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -e, --engine <s>          Markdown engine: native, commonmark")
	fmt.Fprintln(w, "      --template <s>        Template name or file path")
	fmt.Fprintln(w, "                            Placeholders: {{ Title }}, {{ Content }}")
	fmt.Fprintln(w, "      --style <s>           Style name or CSS file path")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "      --base-path <s>       Prefix for root-relative links, e.g. /blog")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF next to each page (needs Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout, e.g. 30s, 2m")
	fmt.Fprintln(w)
}

func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdInit:
		printInitUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
