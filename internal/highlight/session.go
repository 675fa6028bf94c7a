package highlight

import (
	"strings"

	"github.com/five82/loupe/internal/jsonscan"
)

// Session owns the annotation of one log buffer.
//
// The raw buffer is kept as loaded so FormatEmbeddedJSON always works from the
// original text. A Session is not safe for concurrent use; it belongs to
// whichever goroutine owns the displayed buffer.
type Session struct {
	classifier *Classifier

	raw   string
	spans []Span

	// Classification resumes at tailStart with tailState when the buffer
	// grows. tailSpans is the number of spans that precede tailStart.
	tailStart int
	tailState jsonscan.State
	tailSpans int

	end jsonscan.State
}

// NewSession returns an empty session using c.
func NewSession(c *Classifier) *Session {
	if c == nil {
		c = NewClassifier(DefaultRules())
	}
	return &Session{classifier: c}
}

// Load replaces the buffer and recomputes every span.
func (s *Session) Load(buffer string) {
	s.raw = ""
	s.spans = nil
	s.tailStart = 0
	s.tailState = jsonscan.State{}
	s.tailSpans = 0
	s.end = jsonscan.State{}
	s.Append(buffer)
}

// Append extends the buffer with text that was written after the last load.
// Only the last unterminated line and the new text are classified again.
func (s *Session) Append(text string) {
	if text == "" {
		return
	}
	s.raw += text
	s.spans = s.spans[:s.tailSpans]

	st := s.tailState
	pos := s.tailStart
	for pos < len(s.raw) {
		nl := strings.IndexByte(s.raw[pos:], '\n')
		if nl < 0 {
			break
		}
		spans, next := s.classifier.Line(s.raw[pos:pos+nl], pos, st)
		s.spans = append(s.spans, spans...)
		st = next
		pos += nl + 1
	}

	s.tailStart = pos
	s.tailState = st
	s.tailSpans = len(s.spans)
	s.end = st

	if pos < len(s.raw) {
		spans, next := s.classifier.Line(s.raw[pos:], pos, st)
		s.spans = append(s.spans, spans...)
		s.end = next
	}
}

// Raw returns the buffer as loaded.
func (s *Session) Raw() string {
	return s.raw
}

// Spans returns a copy of the current annotation.
func (s *Session) Spans() []Span {
	if len(s.spans) == 0 {
		return nil
	}
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// State returns the scanner state after the last line of the buffer. An open
// state means the buffer ends inside an unterminated JSON object.
func (s *Session) State() jsonscan.State {
	return s.end
}

// FormatEmbeddedJSON returns the raw buffer with every valid embedded JSON
// object pretty-printed. The stored buffer is left untouched.
func (s *Session) FormatEmbeddedJSON() string {
	return jsonscan.Format(s.raw)
}

// Formatted returns FormatEmbeddedJSON along with a fresh annotation of it.
func (s *Session) Formatted() (string, []Span) {
	text := s.FormatEmbeddedJSON()
	return text, s.classifier.Classify(text)
}

// Counts tallies spans per category.
func (s *Session) Counts() map[Category]int {
	counts := make(map[Category]int)
	for _, sp := range s.spans {
		counts[sp.Category]++
	}
	return counts
}

// Severities tallies the lines tagged with each severity category.
func (s *Session) Severities() map[Category]int {
	counts := make(map[Category]int)
	for _, sp := range s.spans {
		if sp.Category.IsSeverity() {
			counts[sp.Category]++
		}
	}
	return counts
}
