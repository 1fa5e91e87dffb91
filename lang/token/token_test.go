package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sentinels = map[Token]bool{punctStart: true, punctEnd: true, kwStart: true, kwEnd: true}

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if sentinels[tok] {
			continue
		}
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := kwStart + 1; tok < kwEnd; tok++ {
		require.Equal(t, tok, LookupKw(tok.String()))
	}
	require.Equal(t, IDENT, LookupKw("notakeyword"))
}

func TestLookupPunct(t *testing.T) {
	for tok := punctStart + 1; tok < punctEnd; tok++ {
		require.Equal(t, tok, LookupPunct(tok.String()))
	}
	require.Equal(t, ILLEGAL, LookupPunct("@@"))
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}
