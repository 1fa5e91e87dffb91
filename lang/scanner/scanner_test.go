package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veld-lang/veld/lang/token"
)

func scanAll(t *testing.T, src string) []Tok {
	t.Helper()
	s := New(src)
	var toks []Tok
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanBasics(t *testing.T) {
	toks := scanAll(t, `var x = 5 + 10.5; if (x >= 1 && !false) { "hi\n" } // comment
`)
	var kinds []token.Token
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Token{
		token.VAR, token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER, token.SEMI,
		token.IF, token.LPAREN, token.IDENT, token.GE, token.NUMBER, token.AND, token.NOT, token.FALSE, token.RPAREN,
		token.LBRACE, token.STRING, token.RBRACE, token.EOF,
	}, kinds)
}

func TestScanNumber(t *testing.T) {
	toks := scanAll(t, "3.25")
	require.Equal(t, 3.25, toks[0].Number)
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\tb\"c"`)
	require.Equal(t, "a\tb\"c", toks[0].Lit)
}

func TestScanUnterminatedString(t *testing.T) {
	s := New(`"abc`)
	_, err := s.Next()
	require.Error(t, err)
}

func TestScanIllegalChar(t *testing.T) {
	s := New("@")
	_, err := s.Next()
	require.Error(t, err)
}
