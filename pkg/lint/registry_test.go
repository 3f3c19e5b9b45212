package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-dcxi/displaylint/pkg/core"
	"github.com/tak-dcxi/displaylint/pkg/lint"
)

func TestRegistry_Lookup(t *testing.T) {
	def := registerColorRule(t)

	rule, ok := lint.GetRuleByID(def.ID)
	require.True(t, ok)
	assert.Equal(t, def.Name, rule.Name())

	byAlias, ok := lint.GetRuleByID("plugin/test-red")
	require.True(t, ok)
	assert.Equal(t, def.ID, byAlias.ID())

	_, ok = lint.GetRuleByID("plugin/missing")
	assert.False(t, ok)

	assert.Equal(t, "plugin/missing", lint.CanonicalRuleID("plugin/missing"))
}

func TestRegistry_Unregister(t *testing.T) {
	def := registerColorRule(t)
	before := len(lint.AllRules())

	lint.Unregister(def.ID)

	assert.Len(t, lint.AllRules(), before-1)
	_, ok := lint.GetRuleByID("plugin/test-red")
	assert.False(t, ok, "aliases go with the rule")
}

func TestRegistry_SortedAndGrouped(t *testing.T) {
	registerColorRule(t)
	other := lint.RuleDef{ID: "plugin/test-a", Name: "test.a", Group: "test", Severity: core.SeverityWarning}
	lint.Register(other)
	t.Cleanup(func() { lint.Unregister(other.ID) })

	group := lint.GetRulesByGroup("test")
	require.Len(t, group, 2)
	assert.Equal(t, "plugin/test-a", group[0].ID())
	assert.Equal(t, "plugin/test-no-red", group[1].ID())

	infos := lint.AllRules()
	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].ID, infos[i].ID)
	}
}

func TestGetRuleInfo(t *testing.T) {
	def := registerColorRule(t)
	rule, _ := lint.GetRuleByID(def.ID)

	info := lint.GetRuleInfo(rule)
	assert.Equal(t, def.ID, info.ID)
	assert.Equal(t, []string{"plugin/test-red"}, info.Aliases)
	assert.True(t, info.Fixable)
	assert.Equal(t, lint.DefaultDocsBaseURL+"/test-no-red.md", info.DocsURL)
}

func TestDocsBaseURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)

	lint.SetDocsBaseURL("http://localhost:8080/rules/")
	assert.Equal(t, "http://localhost:8080/rules/foo.md", lint.BuildDocURL("plugin/Foo"))

	lint.ResetDocsBaseURL()
	assert.Equal(t, lint.DefaultDocsBaseURL+"/foo.md", lint.BuildDocURL("foo"))
}
