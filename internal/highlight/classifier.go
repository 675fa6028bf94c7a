package highlight

import (
	"regexp"
	"strings"

	"github.com/five82/loupe/internal/jsonscan"
)

// Rules configures the literal parts of the classifier.
type Rules struct {
	CoreTags []string
	AppTags  []string
}

// DefaultRules matches the engine and client logger names.
func DefaultRules() Rules {
	return Rules{
		CoreTags: []string{"DUIN", "CORE"},
		AppTags:  []string{"APP"},
	}
}

// severityOrder is checked first to last; the first hit wins.
var severityOrder = []struct {
	word     string
	category Category
}{
	{"error", CategoryError},
	{"warn", CategoryWarning},
	{"info", CategoryInfo},
	{"debug", CategoryDebug},
}

var (
	// [ 12:00:01 | 42 ] or [12:00:01.250]
	bracketTimeRe = regexp.MustCompile(`\[\s*(\d{1,2}:\d{2}:\d{2}(?:[.,]\d{1,9})?)(?:\s*\|\s*(\d+))?\s*\]`)
	isoTimeRe     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,9})?`)
	locationRe    = regexp.MustCompile(`\([^()\s]+:\d+\):`)
)

// Classifier assigns categories to the spans of single lines. It holds only
// compiled patterns and is safe for concurrent use.
type Classifier struct {
	coreTag *regexp.Regexp
	appTag  *regexp.Regexp
}

// NewClassifier compiles the tag patterns for rules.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{
		coreTag: tagPattern(rules.CoreTags),
		appTag:  tagPattern(rules.AppTags),
	}
}

func tagPattern(tags []string) *regexp.Regexp {
	quoted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			quoted = append(quoted, regexp.QuoteMeta(tag))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\t(` + strings.Join(quoted, "|") + `)\t`)
}

// Line classifies one line (without its newline) that begins at offset in the
// buffer. in is the scanner state carried from the previous line; the
// returned state is carried into the next one.
func (c *Classifier) Line(line string, offset int, in jsonscan.State) ([]Span, jsonscan.State) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return nil, in
	}

	if in.Open() {
		end, next := jsonscan.Resume(line, in)
		if end >= 0 {
			next = trailingState(line, end+1)
		}
		return []Span{{Start: offset, Length: len(line), Category: CategoryJSON}}, next
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "{") {
		next := trailingState(line, len(line)-len(trimmed))
		return []Span{{Start: offset, Length: len(line), Category: CategoryJSON}}, next
	}

	return c.prose(line, offset), in
}

// trailingState scans line from pos past every object that closes on it and
// returns the state of one that is still open at the end.
func trailingState(line string, pos int) jsonscan.State {
	for {
		b, st, ok := jsonscan.Next(line, pos)
		if !ok {
			return st
		}
		pos = b.End + 1
	}
}

func (c *Classifier) prose(line string, offset int) []Span {
	var spans []Span
	add := func(start, end int, cat Category) {
		if start >= 0 && end > start {
			spans = append(spans, Span{Start: offset + start, Length: end - start, Category: cat})
		}
	}

	if sev, ok := Severity(line); ok {
		add(0, len(line), sev)
	}

	for _, m := range bracketTimeRe.FindAllStringSubmatchIndex(line, -1) {
		add(m[2], m[3], CategoryTimestamp)
		add(m[4], m[5], CategoryFrame)
	}
	for _, m := range isoTimeRe.FindAllStringIndex(line, -1) {
		add(m[0], m[1], CategoryTimestamp)
	}

	if c.coreTag != nil {
		for _, m := range c.coreTag.FindAllStringSubmatchIndex(line, -1) {
			add(m[2], m[3], CategorySubsystemCore)
		}
	}
	if c.appTag != nil {
		for _, m := range c.appTag.FindAllStringSubmatchIndex(line, -1) {
			add(m[2], m[3], CategorySubsystemApp)
		}
	}

	for _, m := range locationRe.FindAllStringIndex(line, -1) {
		add(m[0], m[1], CategoryLocation)
	}

	for _, b := range jsonscan.Find(line) {
		if jsonscan.Valid(b.Raw) {
			add(b.Start, b.End+1, CategoryJSON)
		}
	}

	return spans
}

// Severity returns the line-level severity of line. When several severity
// words appear the highest priority one wins: error, warn, info, debug.
func Severity(line string) (Category, bool) {
	lower := strings.ToLower(line)
	for _, s := range severityOrder {
		if strings.Contains(lower, s.word) {
			return s.category, true
		}
	}
	return "", false
}

// Classify annotates a whole buffer starting from the outside-JSON state.
func (c *Classifier) Classify(text string) []Span {
	s := NewSession(c)
	s.Load(text)
	return s.spans
}
