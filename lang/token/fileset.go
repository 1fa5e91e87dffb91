package token

import "fmt"

// A File records the name of a source unit so that positions can be
// formatted with a filename instead of a bare line:col pair.
type File struct {
	name string
}

// NewFile returns a File with the given name.
func NewFile(name string) *File { return &File{name: name} }

// Name returns the file's name.
func (f *File) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// PosMode controls how Format renders a Pos.
type PosMode int

const (
	// PosNone omits the position entirely.
	PosNone PosMode = iota
	// PosShort renders "line:col".
	PosShort
	// PosLong renders "file:line:col".
	PosLong
)

// Format renders pos according to mode, using file's name for PosLong.
func Format(file *File, pos Pos, mode PosMode) string {
	switch mode {
	case PosShort:
		l, c := pos.LineCol()
		return fmt.Sprintf("%d:%d", l, c)
	case PosLong:
		l, c := pos.LineCol()
		name := file.Name()
		if pos.Unknown() {
			return fmt.Sprintf("%s:-:-", name)
		}
		return fmt.Sprintf("%s:%d:%d", name, l, c)
	default:
		return ""
	}
}
