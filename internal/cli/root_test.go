package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tickreg", cmd.Use)
	assert.Contains(t, cmd.Long, "no two events fire at the same tick")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"validate", "query", "timeline", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	tests := []struct {
		command string
		flag    string
	}{
		{"validate", "keep-going"},
		{"query", "at"},
		{"timeline", "from"},
		{"timeline", "to"},
		{"test", "update"},
		{"test", "filter"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			assert.NotNil(t, sub.Flags().Lookup(tt.flag))
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	dir := testutil.WriteCatalog(t, "events.cue", testutil.SampleCatalog)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", dir, "--format", "yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootCommand_LogsToStderr(t *testing.T) {
	t.Setenv("LOG_FORMAT", "text")
	dir := testutil.WriteCatalog(t, "events.cue", `package events

event: {
	A: at: 0
	B: set: [0, 1]
}
`)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{TraceIDs: testutil.NewFixedTraceIDGenerator("trace-root")})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"validate", dir, "--format", "json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Rejections are logged at warn even without --verbose.
	assert.Contains(t, errOut.String(), "event rejected")
	assert.Contains(t, errOut.String(), "code=DUPLICATE_CONDITION")
	assert.NotContains(t, errOut.String(), "event registered")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "trace-root", resp.TraceID)
}

func TestRootCommand_VerboseLogsAcceptance(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	dir := testutil.WriteCatalog(t, "events.cue", testutil.SampleCatalog)

	errOut := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"validate", dir, "-v"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), `"msg":"event registered"`)
}
