package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type startEnd struct {
	s, e Pos
}

func (se startEnd) Span() (start, end Pos) { return se.s, se.e }

func TestPosInside(t *testing.T) {
	cases := []struct {
		ref, test startEnd
		want      bool
	}{
		{startEnd{1, 2}, startEnd{3, 4}, false},
		{startEnd{1, 3}, startEnd{3, 4}, false},
		{startEnd{1, 4}, startEnd{3, 4}, true},
		{startEnd{2, 4}, startEnd{3, 4}, true},
		{startEnd{3, 4}, startEnd{3, 4}, true},
		{startEnd{4, 5}, startEnd{3, 4}, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, PosInside(c.ref, c.test))
	}
}

func TestMakePosLineCol(t *testing.T) {
	p := MakePos(12, 34)
	l, c := p.LineCol()
	require.Equal(t, 12, l)
	require.Equal(t, 34, c)
	require.False(t, p.Unknown())
	require.True(t, NoPos.Unknown())
}

func TestFormat(t *testing.T) {
	f := NewFile("test.veld")
	p := MakePos(3, 7)
	require.Equal(t, "3:7", Format(f, p, PosShort))
	require.Equal(t, "test.veld:3:7", Format(f, p, PosLong))
	require.Equal(t, "test.veld:-:-", Format(f, NoPos, PosLong))
	require.Equal(t, "", Format(f, p, PosNone))
}
