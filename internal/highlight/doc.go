// Package highlight classifies log text into annotated spans.
//
// # Line Rules
//
// Each line is classified on its own, except for one piece of state carried
// from line to line: whether a JSON object is still open. A line produces
// spans in this order:
//
//   - Inside an open object, or starting with "{": the whole line is json
//     and nothing else applies
//   - Otherwise one severity span over the whole line (error, warning, info
//     or debug, first match in that priority), followed by the timestamp and
//     frame number of a "[ hh:mm:ss | frame ]" prefix (or an ISO 8601
//     timestamp), the subsystem tag
//     between tabs, the "(file:line):" location, and any complete JSON
//     object embedded in the text
//
// Spans may overlap. Renderers apply them in order, so a later span wins.
// Offsets are byte offsets into the buffer handed to Classify or
// Session.Load.
//
// # Sessions
//
// A Session owns one buffer and its spans. Load replaces the buffer. Append
// adds text to the end and re-classifies only from the start of the last
// unterminated line, which is what follow mode uses. Appending in any number
// of pieces yields the same spans as loading the concatenation.
//
// Formatted returns the buffer with every valid embedded JSON object
// pretty-printed, classified from scratch. The raw buffer is never
// modified.
package highlight
