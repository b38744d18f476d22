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
	"strings"
	"testing"

	"github.com/googlegenomics/bedidx/bed"
)

type scanned struct {
	line string
	span bed.Span
}

func scanAll(t *testing.T, input string, windowSize int) []scanned {
	t.Helper()

	r := strings.NewReader(input)
	scanner := NewScanner(r, int64(len(input)), windowSize)

	var got []scanned
	for scanner.Scan() {
		got = append(got, scanned{scanner.Line(), scanner.Span()})
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Scanner returned error: %v", err)
	}
	return got
}

func TestScanner(t *testing.T) {
	input := "chr1\t100\t200\n" + "chr1\t300\t400\tname\n" + "chr2\t10\t20\n"
	want := []scanned{
		{"chr1\t100\t200", bed.Span{Offset: 0, Length: 12}},
		{"chr1\t300\t400\tname", bed.Span{Offset: 13, Length: 17}},
		{"chr2\t10\t20", bed.Span{Offset: 31, Length: 10}},
	}

	// Every window size must produce identical output to an unbounded
	// pass, including sizes that force a remap mid-line and a size that
	// divides the input exactly.
	for _, windowSize := range []int{5, 13, 15, 16, 22, 64, DefaultSize} {
		got := scanAll(t, input, windowSize)
		if len(got) != len(want) {
			t.Fatalf("Window size %d: got %d lines, want %d", windowSize, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Window size %d, line %d: got %+v, want %+v", windowSize, i, got[i], want[i])
			}
		}
	}
}

func TestScanner_GrowsPastLongLine(t *testing.T) {
	// The line is longer than the 16 byte window, so the scanner must
	// grow the window rather than drop the line.
	input := "chr7\t127471196\t127472363\tsomeAttr\n"
	got := scanAll(t, input, 16)

	want := []scanned{{"chr7\t127471196\t127472363\tsomeAttr", bed.Span{Offset: 0, Length: 33}}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Got %+v, want %+v", got, want)
	}
}

func TestScanner_EmptyFile(t *testing.T) {
	if got := scanAll(t, "", 16); len(got) != 0 {
		t.Fatalf("Got %d lines from an empty file, want 0", len(got))
	}
}

func TestScanner_DropsUnterminatedFinalLine(t *testing.T) {
	input := "chr1\t100\t200\nchr1\t300\t400"
	got := scanAll(t, input, 16)

	want := []scanned{{"chr1\t100\t200", bed.Span{Offset: 0, Length: 12}}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Got %+v, want %+v", got, want)
	}
}

func TestScanner_WindowMultipleOfFileSize(t *testing.T) {
	// 8 lines of 9 bytes each scanned through an 18 byte window: the file
	// size is an exact multiple of the window size and every remap lands
	// exactly on a line boundary.
	input := strings.Repeat("chr1\t1\t2\n", 8)
	got := scanAll(t, input, 18)
	if len(got) != 8 {
		t.Fatalf("Got %d lines, want 8", len(got))
	}
	for i, s := range got {
		if want := (bed.Span{Offset: int64(i * 9), Length: 8}); s.span != want {
			t.Errorf("Line %d span = %v, want %v", i, s.span, want)
		}
	}
}

func TestScanner_EmptyLines(t *testing.T) {
	got := scanAll(t, "\n\nchr1\t1\t2\n", 8)
	want := []scanned{
		{"", bed.Span{Offset: 0, Length: 0}},
		{"", bed.Span{Offset: 1, Length: 0}},
		{"chr1\t1\t2", bed.Span{Offset: 2, Length: 8}},
	}
	if len(got) != len(want) {
		t.Fatalf("Got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
