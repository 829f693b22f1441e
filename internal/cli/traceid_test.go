package cli

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/testutil"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()
	assert.NotEqual(t, first, second)

	id, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRootOptions_TraceIDs(t *testing.T) {
	var opts RootOptions
	assert.IsType(t, UUIDv7Generator{}, opts.traceIDs())

	opts.TraceIDs = testutil.NewFixedTraceIDGenerator("fixed")
	assert.Equal(t, "fixed", opts.traceIDs().Generate())
}
