package tui

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// rawState wraps term.State, grounded on the teacher's term.go.
type rawState struct {
	state *term.State
}

func enableRawMode(f *os.File) (*rawState, error) {
	st, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &rawState{state: st}, nil
}

func disableRawMode(f *os.File, s *rawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// Terminal owns the raw-mode lifecycle and the DECSET feature modes spec §6
// requires on entry/exit: alternate screen (1049), mouse tracking
// (1002/1006 — button+drag, and SGR extended coordinates), and
// bracketed paste (2004). Grounded on the teacher's Screen.NewScreen/Close,
// split out into its own type since this package's Screen is now a pure
// paint target with no process lifecycle of its own.
type Terminal struct {
	in, out *os.File
	raw     *rawState
	w       *bufio.Writer
}

// Open enables raw mode and the feature modes, and returns the initial
// terminal size.
func Open() (*Terminal, int, int, error) {
	t := &Terminal{in: os.Stdin, out: os.Stdout, w: bufio.NewWriter(os.Stdout)}
	raw, err := enableRawMode(t.in)
	if err != nil {
		return nil, 0, 0, err
	}
	t.raw = raw

	t.w.WriteString("\x1b[?1049h") // alt screen
	t.w.WriteString("\x1b[?1002h") // mouse button+drag tracking
	t.w.WriteString("\x1b[?1006h") // SGR extended mouse coordinates
	t.w.WriteString("\x1b[?2004h") // bracketed paste
	t.w.WriteString("\x1b[?25l")   // hide cursor until first frame
	t.w.Flush()

	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	return t, w, h, nil
}

// Close reverses every mode Open set and restores the terminal's original
// mode, in the opposite order they were enabled — spec §6's exit contract.
func (t *Terminal) Close() {
	t.w.WriteString("\x1b[?25h")
	t.w.WriteString("\x1b[?2004l")
	t.w.WriteString("\x1b[?1006l")
	t.w.WriteString("\x1b[?1002l")
	t.w.WriteString("\x1b[0 q") // DECSCUSR: restore default cursor shape
	t.w.WriteString("\x1b[?1049l")
	t.w.Flush()
	disableRawMode(t.in, t.raw)
}

// Size re-queries the terminal's current dimensions, for use on SIGWINCH.
func (t *Terminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}

// ProbePalette issues an OSC 4 query for each of the 16 indexed colors. It
// does not read or parse the replies. Reply parsing belongs in the input loop (the reply arrives as an OSC
// token through internal/vt like any other terminal output); this
// function only emits the queries, since this package's Screen has no
// independent input channel of its own (cmd/edit owns the combined
// read/parse loop spec §5 describes as single-threaded).
func (t *Terminal) ProbePalette() {
	for i := 0; i < 16; i++ {
		fmt.Fprintf(t.w, "\x1b]4;%d;?\x1b\\", i)
	}
	t.w.Flush()
}

// ParsePaletteReply parses one OSC 4 reply body ("4;N;rgb:RRRR/GGGG/BBBB")
// into a palette index update, or reports ok=false if body doesn't match.
func ParsePaletteReply(body []byte) (index int, c Color, ok bool) {
	s := string(body)
	if len(s) < 2 || s[0] != '4' || s[1] != ';' {
		return 0, Color{}, false
	}
	s = s[2:]
	semi := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return 0, Color{}, false
	}
	idxStr := s[:semi]
	rest := s[semi+1:]
	idx := 0
	for _, ch := range idxStr {
		if ch < '0' || ch > '9' {
			return 0, Color{}, false
		}
		idx = idx*10 + int(ch-'0')
	}
	if idx < 0 || idx > 15 {
		return 0, Color{}, false
	}
	const prefix = "rgb:"
	if len(rest) < len(prefix) || rest[:len(prefix)] != prefix {
		return 0, Color{}, false
	}
	rest = rest[len(prefix):]
	var parts [3]string
	p := 0
	start := 0
	for i := 0; i <= len(rest) && p < 3; i++ {
		if i == len(rest) || rest[i] == '/' {
			parts[p] = rest[start:i]
			p++
			start = i + 1
		}
	}
	if p != 3 {
		return 0, Color{}, false
	}
	r := hex16(parts[0])
	g := hex16(parts[1])
	b := hex16(parts[2])
	return idx, Color{Index: idx, R: r, G: g, B: b}, true
}

func hex16(s string) uint8 {
	if len(s) == 0 {
		return 0
	}
	v := 0
	for _, ch := range s {
		v *= 16
		switch {
		case ch >= '0' && ch <= '9':
			v += int(ch - '0')
		case ch >= 'a' && ch <= 'f':
			v += int(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			v += int(ch-'A') + 10
		}
	}
	// Values are 4 hex digits (16-bit); downscale to 8-bit.
	if len(s) >= 3 {
		return uint8(v >> 8)
	}
	return uint8(v)
}
