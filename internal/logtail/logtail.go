package logtail

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Chunk is text read from a log file.
type Chunk struct {
	Text string
	// Offset is the file position just after the bytes that produced Text.
	Offset int64
	// Clipped is set when the head of the file was dropped to honour maxBytes.
	Clipped bool
	// Reset is set when the file shrank below the requested offset and was
	// read again from the start.
	Reset bool
}

// ReadAll reads the whole file at path. When maxBytes is positive and the
// file is larger, only the tail is kept, starting at the first full line.
func ReadAll(path string, maxBytes int64) (Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return Chunk{}, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Chunk{}, fmt.Errorf("stat log: %w", err)
	}

	var start int64
	if maxBytes > 0 && info.Size() > maxBytes {
		start = info.Size() - maxBytes
	}
	chunk, err := readAt(file, start)
	if err != nil {
		return Chunk{}, err
	}
	if start > 0 {
		if nl := bytes.IndexByte([]byte(chunk.Text), '\n'); nl >= 0 {
			chunk.Text = chunk.Text[nl+1:]
		}
		chunk.Clipped = true
	}
	return chunk, nil
}

// ReadFrom returns whatever was appended to path after offset. A file that
// is now shorter than offset has been truncated or replaced and is read again
// from the start with Reset set.
func ReadFrom(path string, offset int64) (Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return Chunk{}, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Chunk{}, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < offset {
		chunk, err := readAt(file, 0)
		chunk.Reset = true
		return chunk, err
	}
	return readAt(file, offset)
}

func readAt(file *os.File, offset int64) (Chunk, error) {
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("seek log: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return Chunk{}, fmt.Errorf("read log: %w", err)
	}
	// A writer may be in the middle of a multi-byte rune; leave it for the
	// next read.
	n := completeRunes(data)
	return Chunk{
		Text:   string(bytes.ToValidUTF8(data[:n], nil)),
		Offset: offset + int64(n),
	}, nil
}

// completeRunes returns the length of data without a trailing partial rune.
func completeRunes(data []byte) int {
	n := len(data)
	for back := 1; back <= utf8.UTFMax && back <= n; back++ {
		b := data[n-back]
		if b < utf8.RuneSelf {
			return n
		}
		if utf8.RuneStart(b) {
			if !utf8.FullRune(data[n-back:]) {
				return n - back
			}
			return n
		}
	}
	return n
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
