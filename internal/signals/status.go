package signals

// StatusLine holds the reactive cells backing the editor's status bar:
// cursor position, dirty flag, and mode string. Nothing in internal/textbuf
// or internal/tui's layout/render path reads through these — they exist
// purely so a StyledLabel can subscribe once (via CreateEffect) and redraw
// itself when any of the three changes, instead of the caller manually
// diffing old and new status text every frame.
type StatusLine struct {
	Line  *Signal[int]
	Col   *Signal[int]
	Dirty *Signal[bool]
	Mode  *Signal[string]

	text *Computed[string]
}

// NewStatusLine returns a StatusLine with zeroed cursor position, a clean
// buffer, and the given initial mode string (e.g. "INSERT").
func NewStatusLine(mode string) *StatusLine {
	s := &StatusLine{
		Line:  NewSignal(0),
		Col:   NewSignal(0),
		Dirty: NewSignal(false),
		Mode:  NewSignal(mode),
	}
	s.text = NewComputed(func() string {
		marker := ""
		if s.Dirty.Get() {
			marker = " [+]"
		}
		return s.Mode.Get() + marker + " " + itoa(s.Line.Get()+1) + ":" + itoa(s.Col.Get()+1)
	})
	return s
}

// SetCursor updates line and column together as one batch, so an Effect
// depending on both only runs once per frame.
func (s *StatusLine) SetCursor(line, col int) {
	Batch(func() {
		s.Line.Set(line)
		s.Col.Set(col)
	})
}

// Text returns the formatted status line, re-evaluated only when one of
// its dependencies actually changed value since the last read.
func (s *StatusLine) Text() string {
	return s.text.Get()
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
