package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render pasted HTML or Markdown into a printable page")
	fmt.Fprintln(w, "  history      List, show, open, copy, or delete saved entries")
	fmt.Fprintln(w, "  config       Show the effective configuration or its search paths")
	fmt.Fprintln(w, "  doctor       Check browser, clipboard, and history setup")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A bare file argument or '-' is shorthand for 'papyrus render'.")
	fmt.Fprintln(w, "Run 'papyrus help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render pasted content into a standalone, print-ready HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML or Markdown file, or '-' for stdin (default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "  -m, --markdown            Treat input as Markdown")
	fmt.Fprintln(w, "      --tidy                Balance tags of pasted HTML")
	fmt.Fprintln(w, "      --no-wrapper          Do not wrap fragments in the themed page")
	fmt.Fprintln(w, "      --theme <name>        Wrapper theme (papyrus, light)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --pdf-copy            Show escaped HTML source instead of the page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print Bands:")
	fmt.Fprintln(w, "      --bands               Repeat a header and footer band on every page")
	fmt.Fprintln(w, "      --band-text <s>       Band text (implies --bands)")
	fmt.Fprintln(w, "      --top-mm <n>          Header band offset in mm (0-50)")
	fmt.Fprintln(w, "      --bottom-mm <n>       Footer band offset in mm (0-50)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -t, --title <s>           Save the input to history under this title")
	fmt.Fprintln(w, "  -o, --output <path>       Write the page to an HTML file")
	fmt.Fprintln(w, "      --no-open             Do not open the page in the browser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf <path>          Export the page with headless Chrome")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-2)")
	fmt.Fprintln(w, "      --timeout <d>         Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printHistoryUsage prints usage for the history command.
func printHistoryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus history <subcommand> [position] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage saved entries, newest first. Positions start at 1.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list            List entries (--json for machine output)")
	fmt.Fprintln(w, "  show <n>        Print an entry's title, timestamp, and content")
	fmt.Fprintln(w, "  open <n>        Render an entry and open it in the browser")
	fmt.Fprintln(w, "  copy <n>        Copy an entry's content to the clipboard")
	fmt.Fprintln(w, "  delete <n>      Delete an entry")
	fmt.Fprintln(w, "  clear           Delete every entry (requires --yes)")
	fmt.Fprintln(w, "  path            Print the history file path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -y, --yes                 Confirm 'clear'")
	fmt.Fprintln(w, "      --json                JSON output for 'list' and 'show'")
	fmt.Fprintln(w, "      --no-open             Print the page from 'open' instead")
	fmt.Fprintln(w, "      (render pipeline flags apply to 'open')")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --history <path>      History file path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser opener, clipboard, Chrome for PDF export,")
	fmt.Fprintln(w, "and that the history file is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output in JSON format")
	fmt.Fprintln(w, "      --history <path>      History file path to check")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus config <show|path> [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  show    Print the configuration after environment overrides, as YAML")
	fmt.Fprintln(w, "  path    Print where a config name is searched, in order")
}

// printCompletionUsage prints usage for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: papyrus completion <bash|zsh|fish>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script, for example:")
	fmt.Fprintln(w, "  papyrus completion bash > /etc/bash_completion.d/papyrus")
	fmt.Fprintln(w, "  papyrus completion zsh > \"${fpath[1]}/_papyrus\"")
	fmt.Fprintln(w, "  papyrus completion fish > ~/.config/fish/completions/papyrus.fish")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "history":
		printHistoryUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: papyrus version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: papyrus help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
