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
	"reflect"
	"testing"

	"github.com/googlegenomics/bedidx/bed"
)

func testManager() *ArrayManager {
	m := &ArrayManager{}
	m.Add(Range{Start: 100, End: 200, Offset: 0, Length: 12})
	m.Add(Range{Start: 150, End: 160, Offset: 13, Length: 12})
	m.Add(Range{Start: 50, End: 300, Offset: 26, Length: 11})
	return m
}

func TestSpansWithin(t *testing.T) {
	testCases := []struct {
		name       string
		start, end int64
		want       []bed.Span
	}{
		{"all", 0, 1000, []bed.Span{{Offset: 0, Length: 12}, {Offset: 13, Length: 12}, {Offset: 26, Length: 11}}},
		{"exact bounds", 100, 200, []bed.Span{{Offset: 0, Length: 12}, {Offset: 13, Length: 12}}},
		{"inner only", 150, 160, []bed.Span{{Offset: 13, Length: 12}}},
		// Containment, not overlap: [100, 200] straddles the query
		// boundary and must not match.
		{"straddling excluded", 150, 250, []bed.Span{{Offset: 13, Length: 12}}},
		{"empty", 210, 220, nil},
		{"inverted query", 200, 100, nil},
	}

	m := testManager()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.SpansWithin(tc.start, tc.end)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SpansWithin(%d, %d) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestSpansWithin_InvertedRange(t *testing.T) {
	// An inverted stored interval is kept as-is (the parser performs no
	// validation), and still matches any query [s, t] with 10 >= s and
	// 5 <= t under the containment rule.
	m := &ArrayManager{}
	m.Add(Range{Start: 10, End: 5, Offset: 0, Length: 9})

	if got := m.SpansWithin(0, 100); len(got) != 1 {
		t.Fatalf("SpansWithin(0, 100) = %v, want one span", got)
	}
	if got := m.SpansWithin(0, 5); len(got) != 1 {
		t.Fatalf("SpansWithin(0, 5) = %v, want one span", got)
	}
	if got := m.SpansWithin(11, 100); got != nil {
		t.Fatalf("SpansWithin(11, 100) = %v, want none", got)
	}
	if got := m.SpansWithin(0, 4); got != nil {
		t.Fatalf("SpansWithin(0, 4) = %v, want none", got)
	}
}

func TestSpansWithin_PreservesFileOrder(t *testing.T) {
	m := &ArrayManager{}
	m.Add(Range{Start: 300, End: 400, Offset: 40, Length: 10})
	m.Add(Range{Start: 100, End: 200, Offset: 0, Length: 10})

	want := []bed.Span{{Offset: 40, Length: 10}, {Offset: 0, Length: 10}}
	if got := m.SpansWithin(0, 1000); !reflect.DeepEqual(got, want) {
		t.Fatalf("SpansWithin(0, 1000) = %v, want %v (insertion order)", got, want)
	}
}
