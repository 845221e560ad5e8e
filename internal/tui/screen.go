package tui

import (
	"bufio"
	"os"
	"strconv"
	"sync"
)

// CellStyle is the per-cell attribute set the differential renderer diffs
// against the previous frame. Adapted from the teacher's basement.Style,
// flattened to the subset this package actually paints and extended with
// resolved 24-bit/indexed color per spec §4.F ("gamma-correct sRGB<->linear
// alpha-blended fg/bg color bitmaps").
type CellStyle struct {
	Fg, Bg                      Color
	Bold, Underline, Reverse    bool
}

// Cell is one character position of the screen grid.
type Cell struct {
	Ch    rune
	Style CellStyle
}

// Buffer is a flat width*height grid of Cells, grounded on the teacher's
// screen.go Buffer.
type Buffer struct {
	Width, Height int
	Cells         []Cell
}

func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Cells: make([]Cell, w*h)}
}

func (b *Buffer) Set(x, y int, ch rune, st CellStyle) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = Cell{Ch: ch, Style: st}
}

func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Cell{}
	}
	return b.Cells[y*b.Width+x]
}

func (b *Buffer) Resize(w, h int) {
	n := make([]Cell, w*h)
	minH, minW := h, w
	if b.Height < minH {
		minH = b.Height
	}
	if b.Width < minW {
		minW = b.Width
	}
	for y := 0; y < minH; y++ {
		copy(n[y*w:y*w+minW], b.Cells[y*b.Width:y*b.Width+minW])
	}
	b.Width, b.Height = w, h
	b.Cells = n
}

// Screen owns the double-buffered grid and the raw output stream, and runs
// the SGR-diffing differential render pass (spec §4.F). Grounded on the
// teacher's screen.go Screen type; the resize-signal/input-channel wiring
// the teacher bolts onto Screen itself now lives in terminal.go and
// cmd/edit, so Screen here is just the paint target.
type Screen struct {
	Front, Back *Buffer
	mu          sync.Mutex
	out         *bufio.Writer

	CursorX, CursorY   int
	CursorVisible      bool
	CursorBlock        bool // true = block, false = bar (DECSCUSR)

	palette [16]Color
}

func NewScreen(w, h int) *Screen {
	s := &Screen{
		Front: NewBuffer(w, h),
		Back:  NewBuffer(w, h),
		out:   bufio.NewWriterSize(os.Stdout, 64*1024),
	}
	s.palette = defaultPalette
	return s
}

func (s *Screen) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Front.Resize(w, h)
	s.Back.Resize(w, h)
	for i := range s.Front.Cells {
		s.Front.Cells[i] = Cell{}
	}
}

func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Back.Cells {
		s.Back.Cells[i] = Cell{Ch: ' '}
	}
}

// Frame clears the back buffer, runs draw, then diffs and flushes.
func (s *Screen) Frame(draw func(b *Buffer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Back.Cells {
		s.Back.Cells[i] = Cell{Ch: ' '}
	}
	draw(s.Back)
	s.renderUnlocked()
}

func (s *Screen) renderUnlocked() {
	w, h := s.Back.Width, s.Back.Height
	back, front := s.Back.Cells, s.Front.Cells

	curX, curY := -1, -1
	var lastStyle CellStyle
	styleActive := false
	var posBuf [32]byte

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			idx := row + x
			bc := back[idx]
			if bc == front[idx] {
				continue
			}
			if curX != x || curY != y {
				buf := posBuf[:0]
				buf = append(buf, '\x1b', '[')
				buf = strconv.AppendInt(buf, int64(y+1), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(x+1), 10)
				buf = append(buf, 'H')
				s.out.Write(buf)
				curX, curY = x, y
			}
			if !styleActive || bc.Style != lastStyle {
				if styleActive {
					s.out.WriteString("\x1b[0m")
				}
				writeSGR(s.out, bc.Style)
				lastStyle = bc.Style
				styleActive = true
			}
			ch := bc.Ch
			if ch == 0 {
				ch = ' '
			}
			s.out.WriteRune(ch)
			curX++
			front[idx] = bc
		}
	}
	if styleActive {
		s.out.WriteString("\x1b[0m")
	}

	if s.CursorVisible {
		var buf [32]byte
		b := buf[:0]
		b = append(b, '\x1b', '[')
		b = strconv.AppendInt(b, int64(s.CursorY+1), 10)
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(s.CursorX+1), 10)
		b = append(b, 'H')
		s.out.Write(b)
		if s.CursorBlock {
			s.out.WriteString("\x1b[2 q\x1b[?25h")
		} else {
			s.out.WriteString("\x1b[6 q\x1b[?25h")
		}
	} else {
		s.out.WriteString("\x1b[?25l")
	}

	s.out.Flush()
}

// writeSGR emits the minimal SGR sequence for st: 4-bit (30-37/40-47),
// 8-bit indexed (38;5;n / 48;5;n), or 24-bit truecolor (38;2;r;g;b /
// 48;2;r;g;b), per spec §4.F's color-form rules.
func writeSGR(out *bufio.Writer, st CellStyle) {
	if st.Bold {
		out.WriteString("\x1b[1m")
	}
	if st.Underline {
		out.WriteString("\x1b[4m")
	}
	if st.Reverse {
		out.WriteString("\x1b[7m")
	}
	writeColorSGR(out, st.Fg, true)
	writeColorSGR(out, st.Bg, false)
}

func writeColorSGR(out *bufio.Writer, c Color, fg bool) {
	if c.Index < 0 && !c.Truecolor {
		return
	}
	base := "3"
	if !fg {
		base = "4"
	}
	if c.Truecolor {
		out.WriteString("\x1b[" + base + "8;2;")
		writeUint(out, c.R)
		out.WriteByte(';')
		writeUint(out, c.G)
		out.WriteByte(';')
		writeUint(out, c.B)
		out.WriteByte('m')
		return
	}
	switch {
	case c.Index < 8:
		out.WriteString("\x1b[" + base + strconv.Itoa(c.Index) + "m")
	case c.Index < 16:
		bright := "9"
		if !fg {
			bright = "10"
		}
		out.WriteString("\x1b[" + bright + strconv.Itoa(c.Index-8) + "m")
	default:
		out.WriteString("\x1b[" + base + "8;5;" + strconv.Itoa(c.Index) + "m")
	}
}

func writeUint(out *bufio.Writer, v uint8) {
	out.WriteString(strconv.Itoa(int(v)))
}

// defaultPalette is the standard 16-color ANSI palette, used until an OSC
// 4 probe (terminal.go) returns the terminal's actual configured colors.
var defaultPalette = [16]Color{
	{Index: 0, R: 0, G: 0, B: 0},
	{Index: 1, R: 205, G: 0, B: 0},
	{Index: 2, R: 0, G: 205, B: 0},
	{Index: 3, R: 205, G: 205, B: 0},
	{Index: 4, R: 0, G: 0, B: 238},
	{Index: 5, R: 205, G: 0, B: 205},
	{Index: 6, R: 0, G: 205, B: 205},
	{Index: 7, R: 229, G: 229, B: 229},
	{Index: 8, R: 127, G: 127, B: 127},
	{Index: 9, R: 255, G: 0, B: 0},
	{Index: 10, R: 0, G: 255, B: 0},
	{Index: 11, R: 255, G: 255, B: 0},
	{Index: 12, R: 92, G: 92, B: 255},
	{Index: 13, R: 255, G: 0, B: 255},
	{Index: 14, R: 0, G: 255, B: 255},
	{Index: 15, R: 255, G: 255, B: 255},
}
