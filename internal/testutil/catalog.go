package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCatalog declares one event of each condition kind. Registered in
// order, every event is accepted:
//
//	A fires at 0, B over [2,10), C at 11, 15 and 20.
const SampleCatalog = `package sample

event: {
	A: at: 0
	B: range: {x: 2, y: 10}
	C: set: [11, 15, 20]
}
`

// WriteCatalog writes src as name inside a fresh temporary directory and
// returns the directory.
func WriteCatalog(t testing.TB, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, name, src)
	return dir
}

// WriteFile writes src to dir/name, creating parent directories as needed,
// and returns the file path.
func WriteFile(t testing.TB, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
