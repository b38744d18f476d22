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

// Package index contains support for building, serializing and querying
// BED byte-span indexes.
//
// An index file is a sequence of per-reference entries:
//
//	int32    name length in bytes
//	byte[n]  reference name (UTF-8)
//	byte     manager type tag
//	...      manager payload
//
// Integers are little endian.  The manager tag selects the lookup
// structure used for the reference, so new structures can be added without
// changing the file framing.
package index

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/googlegenomics/bedidx/bed"
	"github.com/googlegenomics/bedidx/internal/binary"
)

// ErrUnsupportedManager indicates a query against a manager that does not
// implement RangeQueryer.  This is a programming error, not a data error.
var ErrUnsupportedManager = errors.New("index: manager does not support range queries")

// Manager is a per-reference positional lookup structure that knows how to
// serialize itself.
type Manager interface {
	// Tag returns the manager type tag written before the payload.
	Tag() byte
	// EncodeTo writes the manager payload (not the tag) to w.
	EncodeTo(w io.Writer) error
}

// RangeQueryer is the query capability of a Manager.
type RangeQueryer interface {
	// SpansWithin returns the byte spans of all stored ranges contained
	// in [start, end], in stored order.  A stored range [b, e] matches
	// iff b >= start and e <= end.
	SpansWithin(start, end int64) []bed.Span
}

// DecoderFunc decodes a manager payload from r.
type DecoderFunc func(r io.Reader) (Manager, error)

var decoders = map[byte]DecoderFunc{
	TagArray: decodeArray,
}

// RegisterManager makes decode available for managers written with the
// provided type tag.  It panics if the tag is already registered.
func RegisterManager(tag byte, decode DecoderFunc) {
	if _, ok := decoders[tag]; ok {
		panic(fmt.Sprintf("index: manager tag %#x already registered", tag))
	}
	decoders[tag] = decode
}

// Index maps reference names to their positional lookup structures.
type Index map[string]Manager

// Spans returns the byte spans of all records on reference contained in
// [start, end], in file order.  An unknown reference yields no spans.
func (idx Index) Spans(reference string, start, end int64) ([]bed.Span, error) {
	manager, ok := idx[reference]
	if !ok {
		return nil, nil
	}
	queryer, ok := manager.(RangeQueryer)
	if !ok {
		return nil, ErrUnsupportedManager
	}
	return queryer.SpansWithin(start, end), nil
}

// Read reads a serialized index from r until end of file.  If the same
// reference name appears more than once the last entry wins.
func Read(r io.Reader) (Index, error) {
	idx := make(Index)
	for {
		var nameLength int32
		if err := binary.Read(r, &nameLength); err == io.EOF {
			return idx, nil
		} else if err != nil {
			return nil, truncated("reading name length", err)
		}
		if nameLength < 0 {
			return nil, bed.Formatf("index: negative name length %d", nameLength)
		}

		name := make([]byte, nameLength)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, truncated(fmt.Sprintf("reading %d byte name", nameLength), err)
		}

		var tag [1]byte
		if _, err := io.ReadFull(r, tag[:]); err != nil {
			return nil, truncated(fmt.Sprintf("reading manager tag for %q", name), err)
		}
		decode, ok := decoders[tag[0]]
		if !ok {
			return nil, bed.Formatf("index: unknown manager type %#x for %q", tag[0], name)
		}

		manager, err := decode(r)
		if err != nil {
			return nil, err
		}
		idx[string(name)] = manager
	}
}

// Load reads the index file at path.
func Load(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// write writes entries to w in the order given by names.
func write(w io.Writer, names []string, managers map[string]Manager) error {
	for _, name := range names {
		manager := managers[name]
		if err := binary.Write(w, int32(len(name))); err != nil {
			return fmt.Errorf("writing name length: %v", err)
		}
		if _, err := io.WriteString(w, name); err != nil {
			return fmt.Errorf("writing name: %v", err)
		}
		if _, err := w.Write([]byte{manager.Tag()}); err != nil {
			return fmt.Errorf("writing manager tag: %v", err)
		}
		if err := manager.EncodeTo(w); err != nil {
			return fmt.Errorf("encoding manager for %q: %v", name, err)
		}
	}
	return nil
}

// truncated maps unexpected end of file inside an entry to a FormatError
// and leaves real I/O failures untouched.
func truncated(context string, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return bed.Formatf("index: truncated file: %s: %v", context, err)
	}
	return fmt.Errorf("%s: %v", context, err)
}
