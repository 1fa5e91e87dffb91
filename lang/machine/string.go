package machine

import "strconv"

// Str is an immutable string value. Despite the byte-sequence framing in §3
// it is represented as a Go string (itself an immutable byte sequence), so
// no copying is needed to hand one to the host.
type Str string

var (
	_ Value   = Str("")
	_ Ordered = Str("")
)

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }

// GoString renders the quoted form used when a string is printed as an
// element of an array (Array.String).
func (s Str) GoString() string { return strconv.Quote(string(s)) }

func (s Str) Cmp(y Value) int {
	t := y.(Str)
	switch {
	case s < t:
		return -1
	case s > t:
		return +1
	default:
		return 0
	}
}
