package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIDDeterministic(t *testing.T) {
	ev := GameEvent{Kind: "B", Condition: Between(2, 10)}

	id1, err := EventID(ev)
	require.NoError(t, err)
	id2, err := EventID(ev.Clone())
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)
}

func TestEventIDDistinguishesKindAndCondition(t *testing.T) {
	base := MustEventID(GameEvent{Kind: "A", Condition: At(0)})

	assert.NotEqual(t, base, MustEventID(GameEvent{Kind: "B", Condition: At(0)}))
	assert.NotEqual(t, base, MustEventID(GameEvent{Kind: "A", Condition: At(1)}))
	assert.NotEqual(t, base, MustEventID(GameEvent{Kind: "A", Condition: Set(0)}))
}

func TestEventIDRequiresCondition(t *testing.T) {
	_, err := EventID(GameEvent{Kind: "A"})
	assert.ErrorContains(t, err, "has no condition")
	assert.Panics(t, func() { MustEventID(GameEvent{Kind: "A"}) })
}

func TestHashWithDomainSeparation(t *testing.T) {
	assert.NotEqual(t, hashWithDomain("a", []byte("b")), hashWithDomain("ab", nil))
}
