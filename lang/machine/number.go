package machine

import "strconv"

// Number is the machine's only numeric type: a 64-bit float, per §3.
type Number float64

var (
	_ Value   = Number(0)
	_ Ordered = Number(0)
)

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) Type() string   { return "number" }

func (n Number) Cmp(y Value) int {
	m := y.(Number)
	switch {
	case n < m:
		return -1
	case n > m:
		return +1
	default:
		return 0
	}
}
