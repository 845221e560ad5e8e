package textbuf

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM reports whether data begins with a UTF-8 byte-order mark and
// returns the data with it removed.
func StripBOM(data []byte) (stripped []byte, hadBOM bool) {
	if len(data) >= len(utf8BOM) && data[0] == utf8BOM[0] && data[1] == utf8BOM[1] && data[2] == utf8BOM[2] {
		return data[len(utf8BOM):], true
	}
	return data, false
}

// Load constructs a TextBuffer from file content, stripping a BOM if
// present and reporting whether one was found so the caller can restore it
// on save.
func Load(data []byte, wordWrapColumns int) (tb *TextBuffer, hadBOM bool) {
	stripped, hadBOM := StripBOM(data)
	return New(stripped, wordWrapColumns), hadBOM
}
