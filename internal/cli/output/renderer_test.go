package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/internal/cli/output"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want output.OutputMode
	}{
		{"", output.ModeAuto},
		{"auto", output.ModeAuto},
		{"TEXT", output.ModeText},
		{"md", output.ModeMarkdown},
		{"markdown", output.ModeMarkdown},
		{" json ", output.ModeJSON},
		{"yaml", output.ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, output.Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, output.ModeText, output.NewRendererWithTTY(&out, &errOut, true, output.ModeAuto).EffectiveMode())
	assert.Equal(t, output.ModeMarkdown, output.NewRendererWithTTY(&out, &errOut, false, output.ModeAuto).EffectiveMode())
	assert.Equal(t, output.ModeJSON, output.NewRendererWithTTY(&out, &errOut, true, output.ModeJSON).EffectiveMode())
	assert.False(t, output.NewRenderer(&out, &errOut, output.ModeAuto).IsTTY(), "buffers are not terminals")
}

func TestRenderer_PlainWhenPiped(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRendererWithTTY(&out, &errOut, false, output.ModeText)

	r.Println(r.Styles().Error.Render("boom"))
	r.Success("done")
	r.Warning("careful")

	assert.Equal(t, "boom\n✓ done\n", out.String())
	assert.Equal(t, "! careful\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRendererWithTTY(&out, &errOut, false, output.ModeJSON)

	require.NoError(t, r.JSON(output.LintOutput{Summary: output.LintSummary{Errors: 1}}))
	assert.True(t, strings.HasPrefix(out.String(), "{\n  \"summary\""))
	assert.Contains(t, out.String(), `"errors": 1`)
}
