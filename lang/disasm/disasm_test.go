package disasm_test

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veld-lang/veld/internal/filetest"
	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/disasm"
	"github.com/veld-lang/veld/lang/parser"
)

var update = flag.Bool("update", false, "update golden .want files")

func TestDisassembleGolden(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".veld") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			srcBytes, err := os.ReadFile(dir + "/" + fi.Name())
			require.NoError(t, err)
			src := string(srcBytes)

			ch, err := parser.Parse(fi.Name(), src)
			require.NoError(t, err)
			co, err := compiler.Compile(compiler.NewGlobals(), ch)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, disasm.Code(&buf, co))

			filetest.DiffOutput(t, fi.Name(), buf.String(), dir, *update)
		})
	}
}
