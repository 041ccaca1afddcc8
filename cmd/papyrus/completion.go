package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagNumber
	flagEnum
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // enum values
	FileGlob string   // comma-separated, e.g. "*.yaml,*.yml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Subcommands []string
	FileGlob    string // positional file arguments, empty if none
}

// completionMeta enriches flags with values the FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

var flagCompletionMeta = map[string]completionMeta{
	"page-size":  {Values: []string{"letter", "a4", "legal"}},
	"theme":      {Values: []string{"papyrus", "light"}},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"history":    {FileGlob: "*.json"},
	"output":     {FileGlob: "*.html,*.htm"},
	"pdf":        {FileGlob: "*.pdf"},
	"asset-path": {IsDir: true},
}

// historySubcommands lists the verbs accepted by `papyrus history`.
var historySubcommands = []string{"list", "show", "open", "copy", "delete", "clear", "path"}

// extractFlagsFromFlagSet turns registered flags into completion entries,
// sorted by long name.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "float64":
			fd.Type = flagNumber
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry. Flags come from the same
// FlagSet builders the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:     "render",
			Desc:     "Render pasted HTML or Markdown",
			Flags:    extractFlagsFromFlagSet(buildRenderFlagSet(&renderFlags{})),
			FileGlob: "*.html,*.htm,*.md,*.markdown,*.txt",
		},
		{
			Name:        "history",
			Desc:        "Manage saved entries",
			Flags:       extractFlagsFromFlagSet(buildHistoryFlagSet(&historyFlags{})),
			Subcommands: historySubcommands,
		},
		{
			Name:        "config",
			Desc:        "Show configuration",
			Flags:       []flagDef{{Long: "config", Short: "c", Type: flagFile, Desc: "config file name or path", FileGlob: "*.yaml,*.yml"}},
			Subcommands: []string{"show", "path"},
		},
		{
			Name:  "doctor",
			Desc:  "Check system setup",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output in JSON format"}},
		},
		{
			Name:        "completion",
			Desc:        "Generate shell completion script",
			Subcommands: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// runCompletion writes the completion script for args[0] to env.Stdout.
func runCompletion(args []string, env *Environment) error {
	if len(args) != 1 {
		printCompletionUsage(env.Stderr)
		return fmt.Errorf("%w: completion takes exactly one shell", ErrUsage)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for papyrus\n\n")
	b.WriteString("_papyrus() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Subcommands) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valued []flagDef
		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
			if f.Type != flagBool {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range valued {
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", strings.Join(globExtensions(f.FileGlob), "|"))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
				default:
					b.WriteString("            COMPREPLY=()\n")
				}
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(c.Subcommands) > 0 {
			b.WriteString("        if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(c.Subcommands, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		if len(words) > 0 {
			b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		if c.FileGlob != "" {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", strings.Join(globExtensions(c.FileGlob), "|"))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _papyrus papyrus\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters zsh treats specially inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''")
	return r.Replace(s)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef papyrus\n\n")
	b.WriteString("_papyrus() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Subcommands) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s \\\n")
		for _, f := range c.Flags {
			names := "--" + f.Long
			if f.Short != "" {
				names = fmt.Sprintf("{-%s,--%s}", f.Short, f.Long)
			}
			action := ""
			switch f.Type {
			case flagBool:
			case flagEnum:
				action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
			case flagFile:
				action = fmt.Sprintf(":%s:_files -g '*.(%s)'", f.Long, strings.Join(globExtensions(f.FileGlob), "|"))
			case flagDir:
				action = fmt.Sprintf(":%s:_files -/", f.Long)
			default:
				action = fmt.Sprintf(":%s:", f.Long)
			}
			if f.Short != "" {
				fmt.Fprintf(&b, "            %s'[%s]%s' \\\n", names, zshEscape(f.Desc), action)
			} else {
				fmt.Fprintf(&b, "            '%s[%s]%s' \\\n", names, zshEscape(f.Desc), action)
			}
		}
		switch {
		case len(c.Subcommands) > 0:
			fmt.Fprintf(&b, "            '1:subcommand:(%s)' \\\n", strings.Join(c.Subcommands, " "))
			b.WriteString("            '*::position:'\n")
		case c.FileGlob != "":
			fmt.Fprintf(&b, "            '*:input:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FileGlob), "|"))
		default:
			b.WriteString("            '*::'\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_papyrus \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes single quotes for fish string literals.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for papyrus\n\n")
	b.WriteString("complete -c papyrus -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c papyrus -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		if len(c.Subcommands) > 0 {
			subs := append([]string(nil), c.Subcommands...)
			sort.Strings(subs)
			fmt.Fprintf(&b, "complete -c papyrus -n '%s' -a '%s'\n", cond, strings.Join(subs, " "))
		}
		if c.FileGlob != "" {
			fmt.Fprintf(&b, "complete -c papyrus -n '%s' -F\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c papyrus -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
