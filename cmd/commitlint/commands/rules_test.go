package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitlint/internal/config"
	"github.com/bartekus/commitlint/internal/rules"
)

func TestRules_Text(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)

	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "type-enum")
	assert.Contains(t, out, "body-leading-blank")
	assert.Contains(t, out, "warning")
	assert.NotContains(t, out, "function-rules/")
}

func TestRules_JSON(t *testing.T) {
	out, err := execute(t, "", "rules", "--json")
	require.NoError(t, err)

	var items []RuleListItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, rules.Builtin().Len())
	assert.Equal(t, "type-empty", items[0].Name)
	assert.Equal(t, rules.SeverityError, items[0].Severity)
	assert.NotEmpty(t, items[0].Description)

	out, err = execute(t, "", "rules", "--json", "--plugins")
	require.NoError(t, err)
	var all []RuleListItem
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Len(t, all, 2*len(items))
	assert.Equal(t, "function-rules/type-empty", all[len(items)].Name)
}

func TestPrintConfig(t *testing.T) {
	out, err := execute(t, "", "print-config", "--config", referenceConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "plugins: [function-rules]")
	assert.Contains(t, out, "header-max-length: [0, always, 80]")
	assert.Contains(t, out, "body-leading-blank: [1, always]")
	assert.Contains(t, out, "function-rules/scope-enum: [2, always, {")

	// The printed configuration is itself a valid configuration with the same rules.
	decl, err := config.Parse([]byte(out))
	require.NoError(t, err)
	decl.DefaultIgnores = new(bool)
	again, err := config.Resolve(decl)
	require.NoError(t, err)

	orig, err := config.Load(referenceConfig)
	require.NoError(t, err)
	want, err := config.Resolve(orig)
	require.NoError(t, err)

	assert.Equal(t, names(want.Rules()), names(again.Rules()))
	for _, spec := range want.Rules() {
		got, ok := again.Rule(spec.Name)
		require.True(t, ok, spec.Name)
		assert.Equal(t, spec.Severity, got.Severity, spec.Name)
		assert.Equal(t, spec.When, got.When, spec.Name)
	}
}

func TestPrintConfig_InvalidConfig(t *testing.T) {
	_, err := execute(t, "", "print-config", "--config", "testdata/unknown_rule.yaml")
	require.Error(t, err)
}

func names(specs []config.RuleSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}
