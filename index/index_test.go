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
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/googlegenomics/bedidx/bed"
)

func TestReadWrite_RoundTrip(t *testing.T) {
	first := testManager()
	second := &ArrayManager{}
	second.Add(Range{Start: 10, End: 20, Offset: 38, Length: 9})

	var buffer bytes.Buffer
	managers := map[string]Manager{"chr7": first, "chrX": second}
	if err := write(&buffer, []string{"chr7", "chrX"}, managers); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	idx, err := Read(&buffer)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(idx) != 2 {
		t.Fatalf("Read returned %d references, want 2", len(idx))
	}
	for name, manager := range managers {
		got, ok := idx[name].(*ArrayManager)
		if !ok {
			t.Fatalf("Reference %q decoded as %T, want *ArrayManager", name, idx[name])
		}
		if want := manager.(*ArrayManager); !reflect.DeepEqual(got.ranges, want.ranges) {
			t.Fatalf("Reference %q ranges = %v, want %v", name, got.ranges, want.ranges)
		}
	}
}

func TestRead_Empty(t *testing.T) {
	idx, err := Read(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(idx) != 0 {
		t.Fatalf("Read returned %d references, want 0", len(idx))
	}
}

func TestRead_UnknownManager(t *testing.T) {
	var buffer bytes.Buffer
	buffer.Write([]byte{4, 0, 0, 0})
	buffer.WriteString("chr1")
	buffer.WriteByte(0xee)

	_, err := Read(&buffer)
	if err == nil {
		t.Fatal("Read accepted an unknown manager tag")
	}
	if !bed.IsFormat(err) {
		t.Fatalf("Read returned %v, want a FormatError", err)
	}
}

func TestRead_Truncated(t *testing.T) {
	var buffer bytes.Buffer
	if err := write(&buffer, []string{"chr7"}, map[string]Manager{"chr7": testManager()}); err != nil {
		t.Fatalf("write returned error: %v", err)
	}
	whole := buffer.Bytes()

	// Cutting the stream anywhere inside an entry must produce a
	// FormatError, never a partial index.
	for cut := 1; cut < len(whole); cut++ {
		_, err := Read(bytes.NewReader(whole[:cut]))
		if err == nil {
			t.Fatalf("Read accepted stream truncated at %d bytes", cut)
		}
		if !bed.IsFormat(err) {
			t.Fatalf("Read of stream truncated at %d returned %v, want a FormatError", cut, err)
		}
	}
}

func TestRead_DuplicateReferenceLastWins(t *testing.T) {
	first := &ArrayManager{}
	first.Add(Range{Start: 1, End: 2, Offset: 0, Length: 8})
	second := &ArrayManager{}
	second.Add(Range{Start: 3, End: 4, Offset: 9, Length: 8})

	var buffer bytes.Buffer
	if err := write(&buffer, []string{"chr1"}, map[string]Manager{"chr1": first}); err != nil {
		t.Fatalf("write returned error: %v", err)
	}
	if err := write(&buffer, []string{"chr1"}, map[string]Manager{"chr1": second}); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	idx, err := Read(&buffer)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	got := idx["chr1"].(*ArrayManager)
	if !reflect.DeepEqual(got.ranges, second.ranges) {
		t.Fatalf("Duplicate reference decoded to %v, want %v", got.ranges, second.ranges)
	}
}

func TestSpans_UnknownReference(t *testing.T) {
	idx := Index{"chr1": testManager()}
	spans, err := idx.Spans("chr2", 0, 1000)
	if err != nil {
		t.Fatalf("Spans returned error: %v", err)
	}
	if spans != nil {
		t.Fatalf("Spans for unknown reference = %v, want none", spans)
	}
}

type encodeOnlyManager struct{}

func (encodeOnlyManager) Tag() byte                { return 0x7f }
func (encodeOnlyManager) EncodeTo(io.Writer) error { return nil }

func TestSpans_UnsupportedManager(t *testing.T) {
	idx := Index{"chr1": encodeOnlyManager{}}
	if _, err := idx.Spans("chr1", 0, 1000); err != ErrUnsupportedManager {
		t.Fatalf("Spans returned %v, want ErrUnsupportedManager", err)
	}
}
