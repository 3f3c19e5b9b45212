package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tak-dcxi/displaylint/internal/cli/config"
	"github.com/tak-dcxi/displaylint/pkg/lint"
	_ "github.com/tak-dcxi/displaylint/pkg/lint/rules" // register rules
)

// initConfig is the file written by `displaylint init`.
type initConfig struct {
	Rules  map[string]any `yaml:"rules"`
	Ignore []string       `yaml:"ignore,omitempty"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a displaylint.yaml configuration file",
		Long: `Create a displaylint.yaml with every available rule enabled at its
default severity. Edit the file to change severities, disable rules or turn
on fixing by default.`,
		Example: `  # Initialize in current directory
  displaylint init

  # Overwrite an existing config
  displaylint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd).Renderer

			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			r.Success("Created " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Review the rule settings in " + config.ConfigFileNames[0])
			r.Println("  2. Run 'displaylint lint' to check your stylesheets")
			r.Println("  3. Run 'displaylint lint --fix' to rewrite legacy values")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// runInit writes the default config into dir and returns its path.
func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func defaultConfigYAML() ([]byte, error) {
	cfg := initConfig{
		Rules:  make(map[string]any),
		Ignore: []string{"**/vendor/**"},
	}
	for _, rule := range lint.AllRules() {
		cfg.Rules[rule.ID] = []any{true, map[string]any{"severity": rule.DefaultSeverity.String()}}
	}

	var buf bytes.Buffer
	buf.WriteString("# displaylint configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
