package machine

// Bool is the machine's boolean type.
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Type() string { return "boolean" }
