package compiler

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/tickreg/internal/ir"
)

// CompileCatalog compiles every event under the top-level "event" struct of
// v, in declaration order. It stops at the first error. A value without an
// "event" struct yields no events.
func CompileCatalog(v cue.Value) ([]ir.GameEvent, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	eventsVal := v.LookupPath(cue.ParsePath("event"))
	if !eventsVal.Exists() {
		return nil, nil
	}

	iter, err := eventsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var events []ir.GameEvent
	for iter.Next() {
		ev, err := CompileEvent(iter.Value())
		if err != nil {
			return events, err
		}
		events = append(events, *ev)
	}
	return events, nil
}

// CompileCatalogSource compiles catalog source text. filename is used in
// error positions only.
func CompileCatalogSource(filename string, src []byte) ([]ir.GameEvent, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return CompileCatalog(v)
}
