package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/ir"
)

type spanView struct {
	start, end int64
	kind       string
}

func view(spans []Span) []spanView {
	out := make([]spanView, len(spans))
	for i, s := range spans {
		out[i] = spanView{s.Start, s.End, s.Entry.Event.Kind}
	}
	return out
}

func TestTimeline(t *testing.T) {
	r := newTestRegistry()
	mustAdd(t, r, "C", ir.Set(20, 11, 15, 16))
	mustAdd(t, r, "B", ir.Between(2, 10))
	mustAdd(t, r, "A", ir.At(0))

	got := view(r.Timeline(0, 30))
	assert.Equal(t, []spanView{
		{0, 1, "A"},
		{2, 10, "B"},
		{11, 12, "C"},
		{15, 17, "C"},
		{20, 21, "C"},
	}, got)
}

func TestTimelineClipsToWindow(t *testing.T) {
	r := newTestRegistry()
	mustAdd(t, r, "B", ir.Between(2, 10))
	mustAdd(t, r, "C", ir.Set(11, 15, 20))

	assert.Equal(t, []spanView{{5, 10, "B"}, {11, 12, "C"}}, view(r.Timeline(5, 12)))
	assert.Equal(t, []spanView{{2, 3, "B"}}, view(r.Timeline(0, 3)))
}

func TestTimelineEmptyWindow(t *testing.T) {
	r := newTestRegistry()
	mustAdd(t, r, "B", ir.Between(2, 10))

	assert.Nil(t, r.Timeline(5, 5))
	assert.Nil(t, r.Timeline(9, 3))
	assert.Empty(t, r.Timeline(10, 11))
}

func TestTimelineAgreesWithGetEvent(t *testing.T) {
	r := newTestRegistry()
	mustAdd(t, r, "A", ir.At(0))
	mustAdd(t, r, "B", ir.Between(2, 10))
	mustAdd(t, r, "C", ir.Set(11, 15, 20))

	active := map[int64]string{}
	for _, s := range r.Timeline(0, 25) {
		for t := s.Start; t < s.End; t++ {
			active[t] = s.Entry.Event.Kind
		}
	}
	for i := int64(0); i < 25; i++ {
		ev, ok := r.GetEvent(i)
		kind, inTimeline := active[i]
		require.Equal(t, ok, inTimeline, "instant %d", i)
		if ok {
			assert.Equal(t, ev.Kind, kind)
		}
	}
}
