package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/ir"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: valid
description: "Every step form"
steps:
  - add: {kind: A, at: 0}
  - add: {kind: B, range: {x: 2, y: 10}}
    expect: ok
  - add: {kind: C, set: [11, 15, 20]}
  - add: {kind: D, at: 5}
    expect: duplicate_condition
  - get: 0
    kind: A
  - get: 10
    expect: not_found
assertions:
  - type: registry_count
    count: 3
  - type: active_at
    at: 0
    kind: A
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "valid", scenario.Name)
	require.Len(t, scenario.Steps, 6)

	ev, err := scenario.Steps[1].Add.Event()
	require.NoError(t, err)
	assert.Equal(t, ir.GameEvent{Kind: "B", Condition: ir.Between(2, 10)}, ev)

	ev, err = scenario.Steps[2].Add.Event()
	require.NoError(t, err)
	assert.Equal(t, ir.GameEvent{Kind: "C", Condition: ir.Set(11, 15, 20)}, ev)

	assert.Equal(t, OutcomeDuplicateCondition, scenario.Steps[3].Expect)
	require.NotNil(t, scenario.Steps[4].Get)
	assert.Equal(t, int64(0), *scenario.Steps[4].Get)
	assert.Equal(t, "A", scenario.Steps[4].Kind)

	require.Len(t, scenario.Assertions, 2)
	require.NotNil(t, scenario.Assertions[1].At)
	assert.Equal(t, int64(0), *scenario.Assertions[1].At)
}

func TestLoadScenario_EmptySetDecodes(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: empty_set
description: "An explicit empty set is a condition, not a missing one"
steps:
  - add: {kind: E, set: []}
    expect: invalid_event
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	cond, err := scenario.Steps[0].Add.Condition()
	require.NoError(t, err)
	assert.Equal(t, ir.KindDiscreteSet, cond.Kind())
}

func TestLoadScenario_ResolvesCatalogPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.cue"), []byte(`event: A: at: 0`), 0644))
	path := writeScenario(t, dir, `
name: with_catalog
description: "Catalog next to the scenario"
catalog: events.cue
steps:
  - get: 0
    kind: A
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "events.cue"), scenario.Catalog)
}

func TestLoadScenario_MissingCatalog(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: missing_catalog
description: "Catalog does not exist"
catalog: nowhere.cue
steps:
  - get: 0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: d\nstep:\n  - get: 0\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "unknown condition field",
			yaml:    "name: x\ndescription: d\nsteps:\n  - add: {kind: A, when: 0}\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nsteps:\n  - get: 0\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps:\n  - get: 0\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "empty step",
			yaml:    "name: x\ndescription: d\nsteps:\n  - expect: ok\n",
			wantErr: "one of add or get is required",
		},
		{
			name:    "add and get",
			yaml:    "name: x\ndescription: d\nsteps:\n  - add: {kind: A, at: 0}\n    get: 0\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "ambiguous condition",
			yaml:    "name: x\ndescription: d\nsteps:\n  - add: {kind: A, at: 0, set: [1]}\n",
			wantErr: "more than one",
		},
		{
			name:    "bad add outcome",
			yaml:    "name: x\ndescription: d\nsteps:\n  - add: {kind: A, at: 0}\n    expect: found\n",
			wantErr: `unknown add outcome "found"`,
		},
		{
			name:    "bad get outcome",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\n    expect: ok\n",
			wantErr: `unknown get outcome "ok"`,
		},
		{
			name:    "kind on add",
			yaml:    "name: x\ndescription: d\nsteps:\n  - add: {kind: A, at: 0}\n    kind: A\n",
			wantErr: "kind applies to get steps only",
		},
		{
			name:    "kind with not_found",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\n    expect: not_found\n    kind: A\n",
			wantErr: "cannot be combined",
		},
		{
			name:    "assertion without type",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - count: 1\n",
			wantErr: "type is required",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: final_state\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "active_at without at",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: active_at\n    kind: A\n",
			wantErr: "at is required for active_at",
		},
		{
			name:    "active_at without kind",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: active_at\n    at: 0\n",
			wantErr: "kind is required for active_at",
		},
		{
			name:    "inactive_at without at",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: inactive_at\n",
			wantErr: "at is required for inactive_at",
		},
		{
			name:    "negative count",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: registry_count\n    count: -1\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "kinds_in_order without kinds",
			yaml:    "name: x\ndescription: d\nsteps:\n  - get: 0\nassertions:\n  - type: kinds_in_order\n",
			wantErr: "kinds list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
