package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one flag for the completion generators.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // static suggestions; nil for booleans
	ValueName string   // value label; empty for booleans
	IsFile    bool     // value is a path
	IsAlgo    bool     // value is a strategy name
}

// takesValue reports whether the flag expects an argument.
func (f FlagCompletion) takesValue() bool {
	return f.ValueName != ""
}

// flagRegistry lists every flag, in help order. The generators read only
// this table.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Integer to check", ValueName: "integer"},
	{Long: "algo", Help: "Strategy to run", IsAlgo: true, ValueName: "strategy"},
	{Long: "timeout", Help: "Maximum duration of a check", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "explain", Help: "Explain the verdict and search bound"},
	{Long: "details", Short: "d", Help: "Show timings and memory statistics"},
	{Long: "quiet", Short: "q", Help: "Print only the verdict"},
	{Long: "interactive", Short: "i", Help: "Start an interactive session"},
	{Long: "tui", Help: "Start the terminal dashboard"},
	{Long: "output", Short: "o", Help: "Write a report to this file", IsFile: true, ValueName: "file"},
	{Long: "format", Help: "Report format", Values: []string{"text", "json", "markdown"}, ValueName: "format"},
	{Long: "metrics-file", Help: "Write Prometheus metrics to this file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"trace", "debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "no-color", Help: "Disable coloured output"},
	{Long: "completion", Help: "Print a completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// pseudoAlgos are accepted by --algo in addition to registered names.
var pseudoAlgos = []string{"all", "auto"}

// GenerateCompletion writes a completion script for shell.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := append(append([]string{}, algorithms...), pseudoAlgos...)
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algos)
	case "zsh":
		script = zshCompletion(algos)
	case "fish":
		script = fishCompletion(algos)
	case "powershell", "ps":
		script = powerShellCompletion(algos)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("writing %s completion: %w", shell, err)
	}
	return nil
}

// flagSpellings returns "--long" and/or "-short".
func flagSpellings(f FlagCompletion) []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func bashCompletion(algos []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		spellings := flagSpellings(f)
		opts = append(opts, spellings...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(spellings, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for primecheck
# Add this to your ~/.bashrc or ~/.bash_completion

_primecheck_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _primecheck_completions primecheck
`, strings.Join(opts, " "), strings.Join(algos, " "), cases.String())
}

func zshCompletion(algos []string) string {
	entries := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		var suffix string
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case f.IsAlgo:
			suffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.takesValue():
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}

		switch {
		case f.Long != "" && f.Short != "":
			entries = append(entries, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
		case f.Long != "":
			entries = append(entries, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		default:
			entries = append(entries, fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, suffix))
		}
	}

	return fmt.Sprintf(`#compdef primecheck

# Zsh completion script for primecheck
# Place in a directory on $fpath

_primecheck() {
    local -a algorithms
    algorithms=(%s)

    _arguments -s \
%s
}

_primecheck "$@"
`, strings.Join(algos, " "), strings.Join(entries, " \\\n"))
}

func fishCompletion(algos []string) string {
	lines := []string{
		"# Fish completion script for primecheck",
		"# Save as ~/.config/fish/completions/primecheck.fish",
		"",
		"complete -c primecheck -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c primecheck"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsAlgo:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(algos, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.takesValue():
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(algos []string) string {
	quote := func(vals []string) string {
		q := make([]string, len(vals))
		for i, v := range vals {
			q[i] = "'" + v + "'"
		}
		return strings.Join(q, ", ")
	}

	var options, switches []string
	for _, f := range flagRegistry {
		for _, s := range flagSpellings(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", s, f.Help))
		}
		var values string
		switch {
		case f.IsAlgo:
			values = "$primecheckAlgorithms"
		case len(f.Values) > 0:
			values = "@(" + quote(f.Values) + ")"
		default:
			continue
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, values))
	}

	return fmt.Sprintf(`# PowerShell completion script for primecheck
# Add this to your $PROFILE

$primecheckAlgorithms = @(%s)

Register-ArgumentCompleter -CommandName 'primecheck' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, quote(algos), strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
