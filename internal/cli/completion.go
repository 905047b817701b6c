package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "file")
	IsFile    bool     // true if the flag takes a file path
	IsVoice   bool     // true if values come from the installed voice list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "step", Short: "s", Help: "Difficulty step", Values: []string{"1", "2", "3", "4"}, ValueName: "step"},
	{Long: "count", Short: "n", Help: "Number of operations", Values: []string{"3", "5", "10", "15"}, ValueName: "number"},
	{Long: "mode", Short: "m", Help: "Operators", Values: []string{"add", "mix"}, ValueName: "mode"},
	{Long: "gap", Help: "Pause after each step in ms", Values: []string{"0", "250", "500", "1000"}, ValueName: "ms"},
	{Long: "reveal", Help: "Seconds before the answer", Values: []string{"1", "3", "5", "10"}, ValueName: "seconds"},
	{Long: "rate", Help: "Base speaking rate", Values: []string{"0.8", "1.0", "1.05", "1.3", "1.6"}, ValueName: "rate"},
	{Long: "voice", Help: "Preferred voice", IsVoice: true, ValueName: "voice"},
	{Long: "voice-lang", Help: "Preferred voice language", Values: []string{"ja-JP", "en-US"}, ValueName: "lang"},
	{Long: "speech", Help: "Speech engine", Values: []string{"text", "command", "none"}, ValueName: "engine"},
	{Long: "speech-cmd", Help: "Speech command", ValueName: "command"},
	{Long: "tui", Help: "Launch the drill dashboard"},
	{Long: "repl", Help: "Start the interactive prompt"},
	{Long: "sheet", Help: "Print a drill sheet of N problems", ValueName: "number"},
	{Long: "output", Short: "o", Help: "Sheet output file", IsFile: true, ValueName: "file"},
	{Long: "seed", Help: "Random seed", ValueName: "seed"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "metrics-addr", Help: "Prometheus metrics address", ValueName: "addr"},
	{Long: "settings", Help: "Settings file", IsFile: true, ValueName: "file"},
	{Long: "no-save", Help: "Do not save settings"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - voices: Installed voice names offered for --voice; may be empty.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, voices []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, voices)
	case "zsh":
		return generateZshCompletion(out, voices)
	case "fish":
		return generateFishCompletion(out, voices)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, voices)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagForms returns the dashed spellings of f, long form first.
func flagForms(f FlagCompletion) []string {
	var forms []string
	if f.Long != "" {
		forms = append(forms, "--"+f.Long)
	}
	if f.Short != "" {
		forms = append(forms, "-"+f.Short)
	}
	return forms
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, voices []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		forms := flagForms(f)
		opts = append(opts, forms...)

		var body string
		switch {
		case f.IsVoice:
			body = `COMPREPLY=( $(compgen -W "${voices}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(forms, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for soroban
# Add this to your ~/.bashrc or ~/.bash_completion

_soroban_completions() {
    local cur prev opts voices
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    voices="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _soroban_completions soroban
`, strings.Join(opts, " "), strings.Join(voices, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, voices []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef soroban

# Zsh completion script for soroban
# Add this to your ~/.zshrc or place in $fpath

_soroban() {
    local -a voices
    voices=(%s)

    _arguments -s \
%s
}

_soroban "$@"
`, strings.Join(voices, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsVoice:
		valueSuffix = fmt.Sprintf(":%s:($voices)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, voices []string) error {
	lines := []string{
		"# Fish completion script for soroban",
		"# Add this to ~/.config/fish/completions/soroban.fish",
		"",
		"# Disable file completion by default",
		"complete -c soroban -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, strings.Join(voices, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, voiceList string) string {
	parts := []string{"complete -c soroban"}
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
	case f.IsVoice:
		parts = append(parts, fmt.Sprintf("-xa '%s'", voiceList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, voices []string) error {
	var optionEntries, switchEntries []string
	for _, f := range flagRegistry {
		for _, form := range flagForms(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", form, f.Help))
		}

		values := f.Values
		if f.IsVoice {
			values = voices
		}
		if len(values) == 0 || f.IsFile {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for soroban
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'soroban' -Native -ScriptBlock {
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
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
