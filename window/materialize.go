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

package window

import (
	"io"

	"github.com/googlegenomics/bedidx/bed"
)

// Materializer decodes byte spans of a file back into text, reusing the
// same bounded-window discipline as Scanner.  Spans need not be sorted,
// but spans that repeatedly jump backwards across window boundaries force
// a remap each time.
type Materializer struct {
	r    io.ReaderAt
	size int64

	window   []byte
	winStart int64
	winLen   int
}

// NewMaterializer returns a Materializer reading from r, which holds size
// bytes, through windows of windowSize bytes.
func NewMaterializer(r io.ReaderAt, size int64, windowSize int) *Materializer {
	if windowSize < 1 {
		windowSize = DefaultSize
	}
	return &Materializer{
		r:      r,
		size:   size,
		window: make([]byte, windowSize),
	}
}

// Text returns the bytes covered by span, decoded as UTF-8 text.  The
// window is remapped to start at the span offset whenever the span falls
// outside the current window, and grown if the span is larger than the
// window.
func (m *Materializer) Text(span bed.Span) (string, error) {
	if span.Offset < 0 || span.Length < 0 || span.Offset+int64(span.Length) > m.size {
		return "", bed.Formatf("window: span %s is outside the file (%d bytes)", span, m.size)
	}

	if !m.contains(span) {
		for int(span.Length) > len(m.window) {
			m.window = make([]byte, 2*len(m.window))
		}
		n := int64(len(m.window))
		if remaining := m.size - span.Offset; remaining < n {
			n = remaining
		}
		if _, err := m.r.ReadAt(m.window[:n], span.Offset); err != nil {
			return "", err
		}
		m.winStart = span.Offset
		m.winLen = int(n)
	}

	start := span.Offset - m.winStart
	return string(m.window[start : start+int64(span.Length)]), nil
}

func (m *Materializer) contains(span bed.Span) bool {
	return span.Offset >= m.winStart && span.Offset+int64(span.Length) <= m.winStart+int64(m.winLen)
}
