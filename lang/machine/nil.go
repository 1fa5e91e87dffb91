package machine

// NilType is the type of Nil. Its only legal value is the Nil constant.
type NilType byte

// Nil is the machine's unit value: the default for uninitialised locals and
// globals, and the result of a function that falls off the end of its body.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
