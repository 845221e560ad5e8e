package uiinput

import (
	"bytes"
	"testing"

	"vted/internal/vt"
)

func tokenize(t *testing.T, input string) []vt.State {
	t.Helper()
	var toks []vt.State
	var s vt.State
	buf := []byte(input)
	for len(buf) > 0 {
		n := vt.ParseNext(&s, buf)
		if s.Kind != vt.Pending {
			toks = append(toks, s)
		}
		buf = buf[n:]
	}
	return toks
}

func TestTextPassthrough(t *testing.T) {
	toks := tokenize(t, "hello")
	if len(toks) != 1 || toks[0].Kind != vt.Text {
		t.Fatalf("expected one text token, got %+v", toks)
	}
	in := Next(&toks[0])
	if in.Kind != Text || !bytes.Equal(in.Text, []byte("hello")) {
		t.Fatalf("expected TEXT %q, got %+v", "hello", in)
	}
}

func TestCtrlLetter(t *testing.T) {
	toks := tokenize(t, "\x01")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Rune != 'A' || in.Key.Modifiers != Ctrl {
		t.Fatalf("expected Ctrl+A, got %+v", in)
	}
}

func TestCtrlTabEnterNoModifiers(t *testing.T) {
	cases := map[byte]NamedKey{0x09: Tab, 0x0D: Enter, 0x00: Null}
	for b, want := range cases {
		toks := tokenize(t, string([]byte{b}))
		in := Next(&toks[0])
		if in.Kind != Keyboard || in.Key.Named != want || in.Key.Modifiers != 0 {
			t.Fatalf("byte %#x: expected named key %d no modifiers, got %+v", b, want, in)
		}
	}
}

func TestBackspace(t *testing.T) {
	toks := tokenize(t, "\x7f")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Named != Back {
		t.Fatalf("expected BACK, got %+v", in)
	}
}

func TestAltPrintable(t *testing.T) {
	toks := tokenize(t, "\x1be")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Rune != 'e' || in.Key.Modifiers != Alt {
		t.Fatalf("expected Alt+e, got %+v", in)
	}
}

func TestSS3FunctionKeys(t *testing.T) {
	toks := tokenize(t, "\x1bOP")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Named != F1 {
		t.Fatalf("expected F1, got %+v", in)
	}
}

func TestCSIArrowWithModifier(t *testing.T) {
	toks := tokenize(t, "\x1b[1;5A")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Named != Up || in.Key.Modifiers != Ctrl {
		t.Fatalf("expected Ctrl+Up, got %+v", in)
	}
}

func TestCSITildeDelete(t *testing.T) {
	toks := tokenize(t, "\x1b[3~")
	in := Next(&toks[0])
	if in.Kind != Keyboard || in.Key.Named != Delete {
		t.Fatalf("expected Delete, got %+v", in)
	}
}

func TestMouseSGRPressThenRelease(t *testing.T) {
	toks := tokenize(t, "\x1b[<0;10;5M\x1b[<0;10;5m")
	if len(toks) != 2 {
		t.Fatalf("expected 2 CSI tokens, got %d", len(toks))
	}
	press := Next(&toks[0])
	if press.Kind != Mouse || press.MouseAction != MouseLeft || press.MousePos != (Position{Col: 9, Row: 4}) {
		t.Fatalf("expected LEFT press at (9,4), got %+v", press)
	}
	release := Next(&toks[1])
	if release.Kind != Mouse || release.MouseAction != MouseRelease || release.MousePos != (Position{Col: 9, Row: 4}) {
		t.Fatalf("expected RELEASE at (9,4), got %+v", release)
	}
}

func TestWindowSizeReport(t *testing.T) {
	toks := tokenize(t, "\x1b[8;40;120t")
	in := Next(&toks[0])
	if in.Kind != Resize || in.Width != 120 || in.Height != 40 {
		t.Fatalf("expected RESIZE 120x40, got %+v", in)
	}
}
