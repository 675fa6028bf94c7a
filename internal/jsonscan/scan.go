package jsonscan

import (
	"bytes"
	"encoding/json"
	"strings"
)

// State is the carry-over between two scanned increments of text.
type State struct {
	Depth    int
	InString bool
	Escaped  bool
}

// Open reports whether an object started earlier has not been closed yet.
func (s State) Open() bool {
	return s.Depth > 0
}

// Block is one balanced object found in a buffer. End is inclusive.
type Block struct {
	Start int
	End   int
	Raw   string
}

// Resume continues scanning text with the given state. It returns the index
// of the brace that brings depth back to zero, or -1 and the state to carry
// into the next increment when text runs out first.
func Resume(text string, st State) (int, State) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if st.InString {
			switch {
			case st.Escaped:
				st.Escaped = false
			case c == '\\':
				st.Escaped = true
			case c == '"':
				st.InString = false
			}
			continue
		}
		switch c {
		case '"':
			if st.Depth > 0 {
				st.InString = true
			}
		case '{':
			st.Depth++
		case '}':
			if st.Depth > 0 {
				st.Depth--
				if st.Depth == 0 {
					return i, State{}
				}
			}
		}
	}
	return -1, st
}

// Next locates the next top-level object at or after from. When the buffer
// ends before the object closes, ok is false and the returned state is open.
// When there is no further opening brace, ok is false and the state is zero.
func Next(text string, from int) (Block, State, bool) {
	if from < 0 {
		from = 0
	}
	if from >= len(text) {
		return Block{}, State{}, false
	}
	rel := strings.IndexByte(text[from:], '{')
	if rel < 0 {
		return Block{}, State{}, false
	}
	start := from + rel
	end, st := Resume(text[start:], State{})
	if end < 0 {
		return Block{}, st, false
	}
	end += start
	return Block{Start: start, End: end, Raw: text[start : end+1]}, State{}, true
}

// Find returns every complete top-level object in text, in order. An opening
// brace that never closes is skipped and the search resumes right after it.
func Find(text string) []Block {
	var blocks []Block
	pos := 0
	for pos < len(text) {
		b, st, ok := Next(text, pos)
		if !ok {
			if !st.Open() {
				return blocks
			}
			pos = strings.IndexByte(text[pos:], '{') + pos + 1
			continue
		}
		blocks = append(blocks, b)
		pos = b.End + 1
	}
	return blocks
}

// Pretty renders raw as 2-space indented JSON. It returns false when raw is
// not valid JSON.
func Pretty(raw string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw, false
	}
	return buf.String(), true
}

// Valid reports whether raw parses as JSON.
func Valid(raw string) bool {
	return json.Valid([]byte(raw))
}

// Format replaces every complete, valid object in text with its pretty form.
// A balanced but invalid object is skipped one byte past its opening brace so
// nested objects still get a chance. An opening brace that never closes is
// treated the same way.
func Format(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	pos := 0
	for pos < len(text) {
		b, st, ok := Next(text, pos)
		if !ok {
			if !st.Open() {
				break
			}
			start := strings.IndexByte(text[pos:], '{') + pos
			out.WriteString(text[pos : start+1])
			pos = start + 1
			continue
		}
		pretty, valid := Pretty(b.Raw)
		if !valid {
			out.WriteString(text[pos : b.Start+1])
			pos = b.Start + 1
			continue
		}
		out.WriteString(text[pos:b.Start])
		out.WriteString(pretty)
		pos = b.End + 1
	}
	if pos < len(text) {
		out.WriteString(text[pos:])
	}
	return out.String()
}
