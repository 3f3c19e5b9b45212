package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tak-dcxi/displaylint/internal/cli"
	"github.com/tak-dcxi/displaylint/internal/cli/config"
	"github.com/tak-dcxi/displaylint/pkg/lint"
)

// configKeyDocs describes each displaylint.yaml key. Keys come from the
// koanf tags on config.Config; a key missing here is documented as-is.
var configKeyDocs = map[string]string{
	"rules":         "Rule settings keyed by rule ID or alias: `true`, `false` or `[true, {severity, fix}]`. Empty means every rule with defaults",
	"fix":           "Run-wide fix flag. Unset defers to each rule's `fix` option",
	"ignore":        "Glob patterns for files to skip, in addition to `node_modules` and `.git`",
	"output":        "Output format: `auto`, `text`, `markdown` or `json`",
	"verbose":       "Debug logging on stderr",
	"docs_base_url": "Base URL for documentation links of rules without their own",
	"concurrency":   "Files linted at once; `0` uses GOMAXPROCS",
}

const exampleConfig = `rules:
  plugin/display-multi-keyword-syntax: [true, {severity: warning, fix: true}]
ignore:
  - "**/vendor/**"`

// generateCLIDocs writes the CLI overview and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	if err := writePage(outDir, "index.md", cliIndexPage(root)); err != nil {
		return err
	}

	for _, cmd := range documentedCommands(root) {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Printf("  Generated %s", name)
	return nil
}

func documentedCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() && cmd.Name() != "help" {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func cliIndexPage(root *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for displaylint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(cleanDescription(root.Short))
	w.CodeBlock("bash", "go install github.com/tak-dcxi/displaylint/cmd/displaylint@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documentedCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	writeConfigSection(w)
	writeFixSection(w)

	w.Header(2, "Standard Input")
	w.Paragraph("The path " + InlineCode("-") + " reads one stylesheet from stdin. " +
		"With fixing on, the rewritten stylesheet goes to stdout and the report to stderr.")
	w.CodeBlock("bash", "displaylint lint --fix - < main.css > main.fixed.css")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No error-severity diagnostics"},
		{InlineCode("1"), "Error-severity diagnostics, invalid rule options, or a configuration or I/O error"},
	})
	return w
}

// writeConfigSection documents displaylint.yaml and its environment overrides.
func writeConfigSection(w *MarkdownWriter) {
	w.Header(2, "Configuration")
	files := make([]string, len(config.ConfigFileNames))
	for i, name := range config.ConfigFileNames {
		files[i] = InlineCode(name)
	}
	w.Paragraph("Settings are read from " + strings.Join(files, " or ") +
		" in the working directory or the nearest parent, then from environment variables, then from flags.")
	w.CodeBlock("yaml", exampleConfig)

	var aliases []string
	for _, rule := range lint.AllRules() {
		for _, alias := range rule.Aliases {
			aliases = append(aliases, fmt.Sprintf("%s for %s", InlineCode(alias), InlineCode(rule.ID)))
		}
	}
	if len(aliases) > 0 {
		w.Paragraph("Rule aliases are accepted as keys: " + strings.Join(aliases, ", ") +
			". When both forms are set the rule ID wins.")
	}

	var rows [][]string
	for _, key := range configKeys() {
		env := ""
		if key != "rules" {
			env = InlineCode(config.EnvPrefix + strings.ToUpper(key))
		}
		desc, ok := configKeyDocs[key]
		if !ok {
			desc = key
		}
		rows = append(rows, []string{InlineCode(key), env, desc})
	}
	w.Table([]string{"Key", "Environment", "Description"}, rows)
}

// configKeys returns the koanf keys of config.Config in field order.
func configKeys() []string {
	var keys []string
	t := reflect.TypeFor[config.Config]()
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("koanf")
		if tag != "" && tag != "-" {
			keys = append(keys, tag)
		}
	}
	return keys
}

// writeFixSection tabulates how the run-wide flag and a rule's fix option combine.
func writeFixSection(w *MarkdownWriter) {
	w.Header(2, "Fixing")
	w.Paragraph(InlineCode("--fix") + " has three states. Without the flag each rule follows its own " +
		InlineCode("fix") + " option; an explicit flag overrides every rule.")

	hosts := []struct {
		label string
		fix   *bool
	}{
		{"(absent)", nil},
		{InlineCode("--fix"), boolRef(true)},
		{InlineCode("--fix=false"), boolRef(false)},
	}
	var rows [][]string
	for _, h := range hosts {
		for _, ruleFix := range []bool{false, true} {
			cfg := lint.NewConfig()
			cfg.Fix = h.fix
			outcome := "report"
			if cfg.EffectiveFix(ruleFix) {
				outcome = "rewrite"
			}
			rows = append(rows, []string{h.label, InlineCode(fmt.Sprint(ruleFix)), outcome})
		}
	}
	w.Table([]string{"Flag", "Rule `fix`", "Legacy values are"}, rows)
}

func boolRef(b bool) *bool { return &b }

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "displaylint "+cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	w.Line("Global options are listed in the [CLI reference](index.md#global-options).")
	return w
}

// writeFlagsTable lists visible flags as "-s, --name" with their type and default.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		def := f.DefValue
		if def != "" && def != "[]" {
			def = InlineCode(def)
		} else {
			def = ""
		}
		rows = append(rows, []string{InlineCode(name), f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Description"}, rows)
}

// cleanExample strips the indentation cobra examples share.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
