// Package uiinput maps a vt token stream onto the semantic UiInput variants
// spec §4.D describes: RESIZE, TEXT, KEYBOARD, MOUSE, or NONE. Grounded on
// the teacher's tui/key.go and tui/input.go CSI-final-byte and SS3 tables,
// extended with modifier bitfields, SGR mouse decode, and the window-size
// report.
package uiinput

import "vted/internal/vt"

// Kind discriminates the UiInput variant produced by Next.
type Kind int

const (
	None Kind = iota
	Resize
	Text
	Keyboard
	Mouse
)

// Modifier bits, shared by KEYBOARD and MOUSE events.
const (
	Shift = 1 << iota
	Alt
	Ctrl
)

// NamedKey enumerates keys with no natural rune representation.
type NamedKey int

const (
	NamedNone NamedKey = iota
	Null
	Tab
	Enter
	Back
	Up
	Down
	Right
	Left
	Home
	End
	Begin
	Insert
	Delete
	PageUp
	PageDown
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Key is either a named key (Named != NamedNone) or a rune (e.g. Ctrl+A
// reports Rune='A', Modifiers=Ctrl; Alt+e reports Rune='e', Modifiers=Alt).
type Key struct {
	Named     NamedKey
	Rune      rune
	Modifiers int
}

// MouseAction enumerates the button/scroll states a MOUSE event reports.
type MouseAction int

const (
	MouseNone MouseAction = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseRelease
	MouseDrag
	MouseScrollUp
	MouseScrollDown
)

// Position is a zero-based (col, row) terminal cell coordinate.
type Position struct {
	Col int
	Row int
}

// Input is the tagged union Next produces, one per call.
type Input struct {
	Kind Kind

	// Resize
	Width, Height int

	// Text
	Text []byte

	// Keyboard
	Key Key

	// Mouse
	MouseAction MouseAction
	MouseMods   int
	MousePos    Position
}

// cursorKeyLUT maps CSI final bytes A..H to named keys, per the xterm
// cursor-key convention; 'G' is the rarely-emitted alternate "begin" code.
var cursorKeyLUT = map[byte]NamedKey{
	'A': Up,
	'B': Down,
	'C': Right,
	'D': Left,
	'E': Begin,
	'F': End,
	'G': Begin,
	'H': Home,
}

// tildeKeyLUT maps the first CSI `~` parameter to a named key.
var tildeKeyLUT = map[int]NamedKey{
	1:  Home,
	2:  Insert,
	3:  Delete,
	4:  End,
	5:  PageUp,
	6:  PageDown,
	7:  Home,
	8:  End,
	11: F1,
	12: F2,
	13: F3,
	14: F4,
	15: F5,
	17: F6,
	18: F7,
	19: F8,
	20: F9,
	21: F10,
	23: F11,
	24: F12,
}

// ss3KeyLUT maps an SS3 final byte to a named key.
var ss3KeyLUT = map[byte]NamedKey{
	'P': F1,
	'Q': F2,
	'R': F3,
	'S': F4,
}

// param returns params[i] if present, else def.
func param(params []int, i, def int) int {
	if i < len(params) {
		return params[i]
	}
	return def
}

// csiModifiers extracts the {shift,alt,ctrl} bitfield from the second CSI
// parameter (1-based VT modifier encoding: value is modifiers+1).
func csiModifiers(params []int) int {
	m := param(params, 1, 1)
	if m <= 0 {
		return 0
	}
	return m - 1
}

const (
	sgrShiftBit  = 0x04
	sgrAltBit    = 0x08
	sgrCtrlBit   = 0x10
	sgrMotionBit = 0x20
	sgrWheelBit  = 0x40
)

// decodeMouse interprets an SGR mouse report (CSI < Pb ; Px ; Py M/m).
func decodeMouse(params []int, final byte) Input {
	pb := param(params, 0, 0)
	col := param(params, 1, 1) - 1
	row := param(params, 2, 1) - 1

	mods := 0
	if pb&sgrShiftBit != 0 {
		mods |= Shift
	}
	if pb&sgrAltBit != 0 {
		mods |= Alt
	}
	if pb&sgrCtrlBit != 0 {
		mods |= Ctrl
	}

	var action MouseAction
	switch {
	case final == 'm':
		action = MouseRelease
	case pb&sgrWheelBit != 0:
		if pb&0x3 == 0 {
			action = MouseScrollUp
		} else {
			action = MouseScrollDown
		}
	case pb&sgrMotionBit != 0:
		action = MouseDrag
	default:
		switch pb & 0x3 {
		case 0:
			action = MouseLeft
		case 1:
			action = MouseMiddle
		case 2:
			action = MouseRight
		default:
			action = MouseNone
		}
	}

	return Input{
		Kind:        Mouse,
		MouseAction: action,
		MouseMods:   mods,
		MousePos:    Position{Col: col, Row: row},
	}
}

// Next maps the completed token held in tok to exactly one Input.
func Next(tok *vt.State) Input {
	switch tok.Kind {
	case vt.Text:
		return Input{Kind: Text, Text: tok.Text}

	case vt.Ctrl:
		return Input{Kind: Keyboard, Key: mapCtrl(tok.Ctrl)}

	case vt.Esc:
		if tok.Esc >= 0x20 && tok.Esc <= 0x7E {
			return Input{Kind: Keyboard, Key: Key{Rune: rune(tok.Esc), Modifiers: Alt}}
		}
		return Input{Kind: None}

	case vt.SS3:
		if nk, ok := ss3KeyLUT[tok.SS3]; ok {
			return Input{Kind: Keyboard, Key: Key{Named: nk}}
		}
		return Input{Kind: None}

	case vt.CSI:
		return mapCSI(tok.CSI)

	default:
		return Input{Kind: None}
	}
}

func mapCtrl(b byte) Key {
	switch b {
	case 0x00:
		return Key{Named: Null}
	case 0x09:
		return Key{Named: Tab}
	case 0x0D:
		return Key{Named: Enter}
	case 0x7F:
		return Key{Named: Back}
	}
	if (b >= 0x01 && b <= 0x08) || (b >= 0x0A && b <= 0x0C) || (b >= 0x0E && b <= 0x1A) {
		return Key{Rune: rune(b | 0x40), Modifiers: Ctrl}
	}
	return Key{Rune: rune(b)}
}

func mapCSI(c vt.CSIToken) Input {
	switch {
	case c.Private == '<' && (c.Final == 'M' || c.Final == 'm'):
		return decodeMouse(c.Params, c.Final)

	case c.Final == 't':
		if param(c.Params, 0, 0) == 8 {
			height := param(c.Params, 1, 0)
			width := param(c.Params, 2, 0)
			return Input{Kind: Resize, Width: width, Height: height}
		}
		return Input{Kind: None}

	case c.Final >= 'A' && c.Final <= 'H':
		if nk, ok := cursorKeyLUT[c.Final]; ok {
			return Input{Kind: Keyboard, Key: Key{Named: nk, Modifiers: csiModifiers(c.Params)}}
		}
		return Input{Kind: None}

	case c.Final == '~':
		code := param(c.Params, 0, 0)
		if nk, ok := tildeKeyLUT[code]; ok {
			return Input{Kind: Keyboard, Key: Key{Named: nk, Modifiers: csiModifiers(c.Params)}}
		}
		return Input{Kind: None}

	default:
		return Input{Kind: None}
	}
}
