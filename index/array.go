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

package index

import (
	"fmt"
	"io"

	"github.com/googlegenomics/bedidx/bed"
	"github.com/googlegenomics/bedidx/internal/binary"
)

// TagArray identifies the array manager in serialized indexes.
const TagArray = 1

// Range is one indexed record: its interval bounds and the byte span of
// its line in the source file.  The layout matches the wire format.
type Range struct {
	Start, End int32
	Offset     int64
	Length     int32
}

// ArrayManager stores ranges exactly in the order records were seen in the
// source file and answers queries with an unfiltered linear scan.  The
// manager tag exists so that a sub-linear structure (a sorted array with
// binary search, or an interval tree) can be added later without changing
// the file format.
type ArrayManager struct {
	ranges []Range
}

// Add appends a range.  Ranges are kept in insertion order.
func (m *ArrayManager) Add(r Range) {
	m.ranges = append(m.ranges, r)
}

// Len returns the number of stored ranges.
func (m *ArrayManager) Len() int {
	return len(m.ranges)
}

// SpansWithin returns the byte spans of all stored ranges contained in
// [start, end], in insertion order.
func (m *ArrayManager) SpansWithin(start, end int64) []bed.Span {
	var spans []bed.Span
	for _, r := range m.ranges {
		if int64(r.Start) >= start && int64(r.End) <= end {
			spans = append(spans, bed.Span{Offset: r.Offset, Length: r.Length})
		}
	}
	return spans
}

// Tag returns TagArray.
func (m *ArrayManager) Tag() byte {
	return TagArray
}

// EncodeTo writes the range count followed by the ranges.
func (m *ArrayManager) EncodeTo(w io.Writer) error {
	if err := binary.Write(w, int32(len(m.ranges))); err != nil {
		return fmt.Errorf("writing range count: %v", err)
	}
	if err := binary.Write(w, m.ranges); err != nil {
		return fmt.Errorf("writing ranges: %v", err)
	}
	return nil
}

func decodeArray(r io.Reader) (Manager, error) {
	var count int32
	if err := binary.Read(r, &count); err != nil {
		return nil, truncated("reading range count", err)
	}
	if count < 0 {
		return nil, bed.Formatf("index: negative range count %d", count)
	}

	ranges := make([]Range, count)
	if err := binary.Read(r, ranges); err != nil {
		return nil, truncated(fmt.Sprintf("reading %d ranges", count), err)
	}
	return &ArrayManager{ranges: ranges}, nil
}
