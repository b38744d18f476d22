// Copyright 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package window provides bounded-window access to large line-oriented
// files.  A fixed-size byte window is remapped across the file so that
// scanning and span reads never allocate more than one window.
package window

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/googlegenomics/bedidx/bed"
)

// DefaultSize is the window size used by the package-level entry points.
const DefaultSize = 4 << 20

// Open memory maps the file at path for random access.  The returned size
// is the file size in bytes.
func Open(path string) (*mmap.ReaderAt, int64, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("mapping %q: %v", path, err)
	}
	return r, int64(r.Len()), nil
}

// Scanner yields the newline-terminated lines of a file together with the
// exact byte span each line occupies, in file order.  It reads through a
// window of at most the configured size, remapping the window forward when
// a line crosses the window boundary.
//
// A line longer than the window grows the window until the line fits.  A
// final line with no trailing newline is dropped and the scan terminates
// cleanly.
type Scanner struct {
	r    io.ReaderAt
	size int64

	window    []byte
	winStart  int64
	winLen    int
	lineStart int

	line string
	span bed.Span
	err  error
	done bool
}

// NewScanner returns a Scanner reading from r, which holds size bytes,
// through windows of windowSize bytes.
func NewScanner(r io.ReaderAt, size int64, windowSize int) *Scanner {
	if windowSize < 1 {
		windowSize = DefaultSize
	}
	return &Scanner{
		r:      r,
		size:   size,
		window: make([]byte, windowSize),
	}
}

// Scan advances to the next line.  It returns false when the scan is
// exhausted or fails; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}

	for {
		if i := bytes.IndexByte(s.window[s.lineStart:s.winLen], '\n'); i >= 0 {
			s.span = bed.Span{Offset: s.winStart + int64(s.lineStart), Length: int32(i)}
			s.line = string(s.window[s.lineStart : s.lineStart+i])
			s.lineStart += i + 1
			return true
		}

		next := s.winStart + int64(s.lineStart)
		if next >= s.size {
			s.done = true
			return false
		}
		if s.lineStart == 0 && s.winLen > 0 {
			// The window already begins at this line, so remapping cannot
			// make progress.
			if s.winStart+int64(s.winLen) >= s.size {
				// Final line with no trailing newline.
				s.done = true
				return false
			}
			// The line is longer than the window: grow it and retry.
			s.window = make([]byte, 2*len(s.window))
		}
		if err := s.load(next); err != nil {
			s.err = err
			return false
		}
	}
}

func (s *Scanner) load(start int64) error {
	n := int64(len(s.window))
	if remaining := s.size - start; remaining < n {
		n = remaining
	}
	if _, err := s.r.ReadAt(s.window[:n], start); err != nil {
		return fmt.Errorf("window: reading %d bytes at offset %d: %v", n, start, err)
	}
	s.winStart = start
	s.winLen = int(n)
	s.lineStart = 0
	return nil
}

// Line returns the most recently scanned line, decoded as UTF-8 text
// without its trailing newline.
func (s *Scanner) Line() string {
	return s.line
}

// Span returns the byte span of the most recently scanned line.
func (s *Scanner) Span() bed.Span {
	return s.span
}

// Err returns the first error encountered by the Scanner.  It returns nil
// if the scan terminated at end of file.
func (s *Scanner) Err() error {
	return s.err
}
