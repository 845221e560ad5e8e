// Package styledtext parses the inline styling markup consumed by Text and
// StyledLabel tui nodes into a flat run of styled chunks. It is adapted
// from the teacher's basement package (ast.go/parser.go/style.go), which
// parses a small markdown dialect into a tree of block and inline nodes; a
// terminal UI label or text node is one line of inline content, so the
// block-level half of that grammar (headers, lists, quotes, code fences,
// horizontal rules) has no home here and is dropped. What survives is the
// inline token grammar — bold/italic/underline/strikethrough/color
// spans and `%v` argument holes — flattened to a single []Chunk instead of
// a nested *Node tree, and with named ANSI colors replaced by the 16-color
// palette index internal/tui's indexed palette uses.
package styledtext

import (
	"regexp"
	"strconv"
	"strings"
)

// Style is the visual attributes of one chunk of text.
type Style struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Strike    bool
	Reverse   bool
	Blink     bool
	FG, BG    int // palette index 0-15, or -1 for unset
}

// Chunk is one run of text sharing a single Style. Hole marks a %v
// placeholder chunk, to be substituted by the caller with a formatted
// argument; HoleID numbers holes in left-to-right order.
type Chunk struct {
	Text   string
	Style  Style
	Hole   bool
	HoleID int
}

var noStyle = Style{FG: -1, BG: -1}

var inlineTokenRe = regexp.MustCompile(`(%v)|(\*\*.+?\*\*)|(\*.+?\*)|(__.+?__)|(~~.+?~~)|(!?#[a-zA-Z0-9]{3,8}\(.+?\))`)

var colorIndex = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
	"grey":    8,
	"gray":    8,
}

// ColorIndex resolves a color name (or a literal "0".."15" palette index)
// to a palette slot, or -1 if unrecognized.
func ColorIndex(name string) int {
	if idx, ok := colorIndex[name]; ok {
		return idx
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < 16 {
		return n
	}
	return -1
}

// Parse parses one line of inline markup into a flat chunk run, numbering
// %v holes left to right.
func Parse(text string) []Chunk {
	chunks := parseInline(text, noStyle)
	hole := 0
	for i := range chunks {
		if chunks[i].Hole {
			chunks[i].HoleID = hole
			hole++
		}
	}
	return chunks
}

func parseInline(text string, base Style) []Chunk {
	var chunks []Chunk
	lastIndex := 0

	for _, m := range inlineTokenRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		if start > lastIndex {
			chunks = append(chunks, Chunk{Text: text[lastIndex:start], Style: base})
		}

		token := text[start:end]
		switch {
		case token == "%v":
			chunks = append(chunks, Chunk{Hole: true, Style: base})

		case strings.HasPrefix(token, "**"):
			s := base
			s.Bold = true
			chunks = append(chunks, parseInline(token[2:len(token)-2], s)...)

		case strings.HasPrefix(token, "__"):
			s := base
			s.Underline = true
			chunks = append(chunks, parseInline(token[2:len(token)-2], s)...)

		case strings.HasPrefix(token, "~~"):
			s := base
			s.Strike = true
			chunks = append(chunks, parseInline(token[2:len(token)-2], s)...)

		case strings.HasPrefix(token, "*"):
			s := base
			s.Italic = true
			chunks = append(chunks, parseInline(token[1:len(token)-1], s)...)

		case strings.Contains(token, "#"):
			isBg := strings.HasPrefix(token, "!")
			openParen := strings.Index(token, "(")
			closeParen := strings.LastIndex(token, ")")
			if openParen < 0 || closeParen <= openParen {
				chunks = append(chunks, Chunk{Text: token, Style: base})
				break
			}
			nameStart := 1
			if isBg {
				nameStart = 2
			}
			name := token[nameStart:openParen]
			content := token[openParen+1 : closeParen]
			s := base
			if isBg {
				s.BG = ColorIndex(name)
			} else {
				s.FG = ColorIndex(name)
			}
			chunks = append(chunks, parseInline(content, s)...)
		}

		lastIndex = end
	}

	if lastIndex < len(text) {
		chunks = append(chunks, Chunk{Text: text[lastIndex:], Style: base})
	}

	return chunks
}
