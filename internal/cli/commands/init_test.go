package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/internal/cli/config"
	"github.com/tak-dcxi/displaylint/internal/cli/testutil"
	"github.com/tak-dcxi/displaylint/pkg/lint/rules/display"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		args     []string
		wantErr  bool
	}{
		{name: "empty directory"},
		{name: "existing config without force", existing: true, wantErr: true},
		{name: "existing config with force", existing: true, args: []string{"--force"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			dir := t.TempDir()
			path := filepath.Join(dir, "displaylint.yaml")
			if tt.existing {
				require.NoError(t, os.WriteFile(path, []byte("existing"), 0600))
			}

			res := testutil.Execute(t, NewInitCommand(), "", append([]string{dir}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, res.Err)
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "existing", string(data))
				return
			}
			require.NoError(t, res.Err)
			assert.Contains(t, res.Stdout, "displaylint.yaml")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), display.RuleID)
		})
	}
}

func TestInit_ConfigLoadsBack(t *testing.T) {
	dir := t.TempDir()
	path, err := runInit(dir, false)
	require.NoError(t, err)

	cfg, err := config.LoadConfig(path, nil)
	require.NoError(t, err)
	t.Cleanup(config.ResetConfig)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, []string{"**/vendor/**"}, cfg.Ignore)
	assert.Nil(t, cfg.Fix, "rule fix options stay in effect")

	lc := cfg.LintConfig()
	setting, ok := lc.Setting(display.RuleID)
	require.True(t, ok)
	assert.Equal(t, true, setting.Primary)
}
