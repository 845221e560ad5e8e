// Command edit is a terminal text editor built on internal/textbuf's
// gap-buffer document model and internal/tui's immediate-mode UI engine.
//
// Usage: edit <path>
//
// Grounded on the teacher's root main.go for the overall shape of a small
// CLI entry point (argument handling, a single top-level error path to
// stderr), generalized from basement's one-shot parse-and-print to a
// persistent raw-mode event loop, since an editor, unlike a markdown
// renderer, owns the terminal until the user quits.
package main

import (
	"fmt"
	"os"

	"vted/internal/signals"
	"vted/internal/textbuf"
	"vted/internal/tui"
	"vted/internal/uiinput"
	"vted/internal/vt"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: edit <path>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "edit:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	buf, _ := textbuf.Load(data, textbuf.NoWrap)

	term, w, h, err := tui.Open()
	if err != nil {
		return err
	}
	defer term.Close()
	term.ProbePalette()

	screen := tui.NewScreen(w, h)
	ctx := tui.NewContext(screen)

	status := signals.NewStatusLine("INSERT")

	state := &tui.TextAreaState{Buffer: buf, Focused: true}

	loop := &eventLoop{
		term:   term,
		screen: screen,
		ctx:    ctx,
		status: status,
		state:  state,
		vt:     &vt.State{},
		width:  w,
		height: h,
		path:   path,
	}
	return loop.run()
}

type eventLoop struct {
	term   *tui.Terminal
	screen *tui.Screen
	ctx    *tui.UiContext
	status *signals.StatusLine
	state  *tui.TextAreaState
	vt     *vt.State
	width  int
	height int
	path   string
	dirty  bool
}

// run drives the single-threaded read -> tokenize -> map-input ->
// build/layout/route -> render cycle spec §5 describes: one goroutine
// owns the buffer, the UI tree, and the terminal, so no synchronization
// is needed between editing and painting.
func (l *eventLoop) run() error {
	l.buildAndRender(nil)

	inBuf := make([]byte, 4096)
	stdin := os.Stdin
	for {
		n, err := stdin.Read(inBuf)
		if err != nil {
			return err
		}
		chunk := inBuf[:n]
		var inputs []uiinput.Input
		for len(chunk) > 0 {
			consumed := vt.ParseNext(l.vt, chunk)
			if consumed == 0 {
				break
			}
			chunk = chunk[consumed:]
			if l.vt.Kind == vt.Pending {
				continue
			}
			in := uiinput.Next(l.vt)
			if in.Kind == uiinput.None {
				continue
			}
			inputs = append(inputs, in)
		}
		if l.handleQuit(inputs) {
			return nil
		}
		l.buildAndRender(inputs)
	}
}

// handleQuit intercepts Ctrl-Q (the editor's sole built-in shortcut; save
// is Ctrl-S, handled inline in buildAndRender like any other keyboard
// input routed through the textarea) before the frame is built, since
// quitting should not be subject to single-consumer input routing.
func (l *eventLoop) handleQuit(inputs []uiinput.Input) bool {
	for _, in := range inputs {
		if in.Kind == uiinput.Keyboard && in.Key.Rune == 'Q' && in.Key.Modifiers&uiinput.Ctrl != 0 {
			return true
		}
		if in.Kind == uiinput.Resize {
			l.width, l.height = in.Width, in.Height
			l.screen.Resize(in.Width, in.Height)
		}
	}
	return false
}

func (l *eventLoop) buildAndRender(inputs []uiinput.Input) {
	for _, in := range inputs {
		if in.Kind == uiinput.Keyboard && in.Key.Rune == 'S' && in.Key.Modifiers&uiinput.Ctrl != 0 {
			l.save()
		}
	}

	root := l.ctx.BeginFrame(l.width, l.height, inputs)

	editor := l.ctx.ContainerBegin(root, "editor")
	tui.AttrGridColumns(editor, []int{-1})
	tui.TextArea(l.ctx, editor, "doc", l.state)
	l.ctx.ContainerEnd()

	cur := l.state.Buffer.Cursor.Logical
	l.status.SetCursor(cur.Line, cur.Col)
	l.status.Dirty.Set(l.state.Buffer.Dirty)
	statusBar := l.ctx.ContainerBegin(root, "status")
	tui.StyledLabel(l.ctx, statusBar, l.status.Text(), "status")
	l.ctx.ContainerEnd()

	l.ctx.Layout(root, l.width, l.height)
	l.ctx.RenderFrame(root)
}

func (l *eventLoop) save() error {
	data := l.state.Buffer.Text()
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return err
	}
	l.state.Buffer.Dirty = false
	return nil
}
