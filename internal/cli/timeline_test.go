package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/testutil"
)

func executeTimeline(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTimelineCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const timelineCatalog = `package events

event: {
	A: at: 0
	B: range: {x: 2, y: 10}
	C: set: [11, 12, 15, 20]
}
`

func TestTimelineText(t *testing.T) {
	dir := testutil.WriteCatalog(t, "events.cue", timelineCatalog)

	output, err := executeTimeline(t, "text", dir, "--to", "21")
	require.NoError(t, err)
	assert.Equal(t, "[0,1) A\n[2,10) B\n[11,13) C\n[15,16) C\n[20,21) C\n", output)
}

func TestTimelineWindowClips(t *testing.T) {
	dir := testutil.WriteCatalog(t, "events.cue", timelineCatalog)

	output, err := executeTimeline(t, "json", dir, "--from", "5", "--to", "12")
	require.NoError(t, err)

	var resp struct {
		Data []TimelineSpan `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(5), resp.Data[0].Start)
	assert.Equal(t, int64(10), resp.Data[0].End)
	assert.Equal(t, "B", resp.Data[0].Event.Kind)
	assert.Equal(t, int64(11), resp.Data[1].Start)
	assert.Equal(t, int64(12), resp.Data[1].End)
	assert.Equal(t, int64(3), resp.Data[1].Seq)
}

func TestTimelineEmptyWindow(t *testing.T) {
	dir := testutil.WriteCatalog(t, "events.cue", timelineCatalog)

	output, err := executeTimeline(t, "text", dir, "--from", "30", "--to", "40")
	require.NoError(t, err)
	assert.Equal(t, "No events active in [30,40)\n", output)
}

func TestTimelineInvertedWindow(t *testing.T) {
	dir := testutil.WriteCatalog(t, "events.cue", timelineCatalog)

	_, err := executeTimeline(t, "text", dir, "--from", "10", "--to", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--to 5 is before --from 10")
}
