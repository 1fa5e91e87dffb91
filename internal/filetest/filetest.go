// Package filetest provides golden-file assertions, used by the
// disassembler's test suite.
package filetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

// SourceFiles returns the dir entries in dir whose name has the given
// extension (e.g. ".veld"), sorted by file name.
func SourceFiles(t *testing.T, dir, ext string) []os.DirEntry {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.DirEntry, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		res = append(res, dent)
	}
	return res
}

// DiffOutput validates output against the golden file at
// resultDir/name+".want", updating it in place when update is true.
func DiffOutput(t *testing.T, name, output, resultDir string, update bool) {
	t.Helper()
	wantFile := filepath.Join(resultDir, name+".want")

	if update {
		if err := os.WriteFile(wantFile, []byte(output), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(wantFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, output); patch != "" {
		t.Errorf("diff for %s:\n%s", name, patch)
	}
}
