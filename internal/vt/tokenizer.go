// Package vt implements the pull-style, stream-incremental VT/xterm
// tokenizer described in spec §4.C. ParseNext consumes bytes from a
// caller-owned buffer and reports how many it consumed; State carries
// enough internal state to resume mid-token across arbitrary byte-boundary
// splits, the property spec §8 calls out explicitly.
package vt

// Kind discriminates the token payload currently held in State.
type Kind int

const (
	// Pending means the call consumed input without completing a token;
	// the caller should supply more bytes in a subsequent call.
	Pending Kind = iota
	Text
	Ctrl
	Esc
	SS3
	CSI
	OSC
	DCS
)

// maxCSIParams is the CSI parameter-count ceiling; additional parameters
// beyond this are parsed (to keep the final byte in sync) but discarded,
// per spec §4.C's overflow policy.
const maxCSIParams = 32

// csiParamMax is the per-parameter clamp.
const csiParamMax = 0xFFFF

// CSIToken holds a fully parsed Control Sequence Introducer.
type CSIToken struct {
	Private byte // one of 0x3C-0x3F, or 0 if absent
	Final   byte
	Params  []int
}

// fsmState is the tokenizer's internal state machine position.
type fsmState int

const (
	stGround fsmState = iota
	stEsc
	stSS3
	stCSI
	stOSC
	stDCS
	stOSCEsc
	stDCSEsc
)

// State is a VT tokenizer instance. Zero value is ready to use (state
// Ground). Payload fields are valid only until the next call to
// ParseNext, which overwrites them — this mirrors spec §4.C's "OSC/DCS
// payloads are only valid until the next parser call", generalized to all
// token kinds, and is implemented by having State own a small
// accumulation buffer rather than aliasing caller-owned memory across
// calls (the original design assumes one long-lived input buffer;
// short-lived per-read buffers are the Go norm, so State buffers
// internally — see DESIGN.md OQ-3).
type State struct {
	st fsmState

	Kind Kind

	Text []byte
	Ctrl byte
	Esc  byte
	SS3  byte
	CSI  CSIToken
	OSC  []byte
	DCS  []byte

	acc []byte

	csiParams   []int
	csiPrivate  byte
	csiCur      int
	csiCurHas   bool
}

func clampCSIParam(v int, has bool) int {
	if !has {
		return 0
	}
	if v > csiParamMax {
		return csiParamMax
	}
	return v
}

// ParseNext consumes bytes from buf[0:], advancing the state machine, and
// returns the number of bytes consumed. On return, state.Kind reports
// either the completed token kind or Pending if no token completed.
func ParseNext(s *State, buf []byte) (consumed int) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		switch s.st {
		case stGround:
			switch {
			case b == 0x1B:
				if len(s.acc) > 0 {
					s.Kind = Text
					s.Text = s.acc
					s.acc = nil
					return i
				}
				i++
				s.st = stEsc
			case b < 0x20 || b == 0x7F:
				if len(s.acc) > 0 {
					s.Kind = Text
					s.Text = s.acc
					s.acc = nil
					return i
				}
				i++
				s.Kind = Ctrl
				s.Ctrl = b
				return i
			default:
				s.acc = append(s.acc, b)
				i++
			}

		case stEsc:
			i++
			switch b {
			case '[':
				s.st = stCSI
				s.csiParams = s.csiParams[:0]
				s.csiPrivate = 0
				s.csiCur = 0
				s.csiCurHas = false
			case ']':
				s.st = stOSC
				s.acc = nil
			case 'O':
				s.st = stSS3
			case 'P':
				s.st = stDCS
				s.acc = nil
			default:
				s.st = stGround
				s.Kind = Esc
				s.Esc = b
				return i
			}

		case stSS3:
			i++
			s.st = stGround
			s.Kind = SS3
			s.SS3 = b
			return i

		case stCSI:
			i++
			switch {
			case b >= 0x3C && b <= 0x3F:
				s.csiPrivate = b
			case b == ';':
				if len(s.csiParams) < maxCSIParams {
					s.csiParams = append(s.csiParams, clampCSIParam(s.csiCur, s.csiCurHas))
				}
				s.csiCur = 0
				s.csiCurHas = false
			case b >= '0' && b <= '9':
				s.csiCurHas = true
				s.csiCur = s.csiCur*10 + int(b-'0')
				if s.csiCur > csiParamMax {
					s.csiCur = csiParamMax
				}
			case b >= 0x40 && b <= 0x7E:
				if len(s.csiParams) < maxCSIParams {
					s.csiParams = append(s.csiParams, clampCSIParam(s.csiCur, s.csiCurHas))
				}
				s.st = stGround
				s.Kind = CSI
				s.CSI = CSIToken{
					Private: s.csiPrivate,
					Final:   b,
					Params:  append([]int(nil), s.csiParams...),
				}
				return i
			default:
				// Intermediate byte (0x20-0x2F): not modeled further, ignored.
			}

		case stOSC, stDCS:
			i++
			switch b {
			case 0x07:
				kind, payload := s.finishStringToken(s.st == stOSC)
				s.st = stGround
				s.Kind = kind
				if kind == OSC {
					s.OSC = payload
				} else {
					s.DCS = payload
				}
				return i
			case 0x1B:
				if s.st == stOSC {
					s.st = stOSCEsc
				} else {
					s.st = stDCSEsc
				}
			default:
				s.acc = append(s.acc, b)
			}

		case stOSCEsc, stDCSEsc:
			i++
			wasOSC := s.st == stOSCEsc
			if b == '\\' {
				kind, payload := s.finishStringToken(wasOSC)
				s.st = stGround
				s.Kind = kind
				if kind == OSC {
					s.OSC = payload
				} else {
					s.DCS = payload
				}
				return i
			}
			// Not a string terminator: the ESC byte (and this one) are
			// part of the payload; resume accumulating.
			s.acc = append(s.acc, 0x1B, b)
			if wasOSC {
				s.st = stOSC
			} else {
				s.st = stDCS
			}
		}
	}

	if s.st == stGround && len(s.acc) > 0 {
		s.Kind = Text
		s.Text = s.acc
		s.acc = nil
		return i
	}
	s.Kind = Pending
	return i
}

func (s *State) finishStringToken(isOSC bool) (Kind, []byte) {
	payload := s.acc
	s.acc = nil
	if isOSC {
		return OSC, payload
	}
	return DCS, payload
}
