// Package scanner turns source text into a stream of tokens for the parser.
// It is a supporting collaborator for the compiler/VM core described by the
// engine's specification, not part of the core itself.
package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veld-lang/veld/lang/token"
)

// A ScanError describes a lexical error at a source position.
type ScanError struct {
	Pos token.Pos
	Msg string
}

func (e *ScanError) Error() string {
	l, c := e.Pos.LineCol()
	return fmt.Sprintf("%d:%d: %s", l, c, e.Msg)
}

// A Tok is one lexeme produced by the Scanner.
type Tok struct {
	Kind   token.Token
	Lit    string // source text of the token; decoded contents for STRING
	Number float64
	Pos    token.Pos
}

// Scanner reads a source string and produces Toks on demand.
type Scanner struct {
	src        string
	offset     int
	line, col  int
	start      int // offset of the token currently being scanned
	startLine  int
	startCol   int
}

// New returns a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

func (s *Scanner) peek() byte {
	if s.offset >= len(s.src) {
		return 0
	}
	return s.src[s.offset]
}

func (s *Scanner) peekAt(n int) byte {
	if s.offset+n >= len(s.src) {
		return 0
	}
	return s.src[s.offset+n]
}

func (s *Scanner) advance() byte {
	c := s.src[s.offset]
	s.offset++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) skipSpaceAndComments() {
	for s.offset < len(s.src) {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '/' && s.peekAt(1) == '/':
			for s.offset < len(s.src) && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in the source, or a token of kind token.EOF
// when the input is exhausted.
func (s *Scanner) Next() (Tok, error) {
	s.skipSpaceAndComments()
	s.startLine, s.startCol = s.line, s.col
	startPos := s.pos()
	if s.offset >= len(s.src) {
		return Tok{Kind: token.EOF, Pos: startPos}, nil
	}

	c := s.peek()
	switch {
	case isDigit(c):
		return s.scanNumber(startPos)
	case c == '"':
		return s.scanString(startPos)
	case isIdentStart(c):
		return s.scanIdent(startPos), nil
	}

	// Punctuation, including two-character operators.
	two := string(c) + string(s.peekAt(1))
	switch two {
	case "<=", ">=", "==", "!=", "&&", "||":
		s.advance()
		s.advance()
		return Tok{Kind: token.LookupPunct(two), Lit: two, Pos: startPos}, nil
	}

	one := string(c)
	if tok := token.LookupPunct(one); tok != token.ILLEGAL {
		s.advance()
		return Tok{Kind: tok, Lit: one, Pos: startPos}, nil
	}
	if c == '!' {
		s.advance()
		return Tok{Kind: token.NOT, Lit: "!", Pos: startPos}, nil
	}

	s.advance()
	return Tok{}, &ScanError{Pos: startPos, Msg: fmt.Sprintf("unexpected character %q", c)}
}

func (s *Scanner) scanNumber(startPos token.Pos) (Tok, error) {
	start := s.offset
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lit := s.src[start:s.offset]
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Tok{}, &ScanError{Pos: startPos, Msg: fmt.Sprintf("invalid number literal %q", lit)}
	}
	return Tok{Kind: token.NUMBER, Lit: lit, Number: v, Pos: startPos}, nil
}

func (s *Scanner) scanString(startPos token.Pos) (Tok, error) {
	s.advance() // opening quote
	var sb strings.Builder
	for {
		if s.offset >= len(s.src) {
			return Tok{}, &ScanError{Pos: startPos, Msg: "unterminated string literal"}
		}
		c := s.peek()
		if c == '"' {
			s.advance()
			break
		}
		if c == '\\' {
			s.advance()
			esc := s.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return Tok{}, &ScanError{Pos: startPos, Msg: fmt.Sprintf("invalid escape sequence \\%c", esc)}
			}
			continue
		}
		sb.WriteByte(s.advance())
	}
	return Tok{Kind: token.STRING, Lit: sb.String(), Pos: startPos}, nil
}

func (s *Scanner) scanIdent(startPos token.Pos) Tok {
	start := s.offset
	for isIdentPart(s.peek()) {
		s.advance()
	}
	lit := s.src[start:s.offset]
	return Tok{Kind: token.LookupKw(lit), Lit: lit, Pos: startPos}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
