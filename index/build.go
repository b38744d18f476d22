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
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/googlegenomics/bedidx/bed"
	"github.com/googlegenomics/bedidx/window"
)

// Build scans the BED file at source and writes an index of it to dest,
// creating or replacing dest.  Leading browser and track lines are
// skipped.  References appear in the index in the order they are first
// seen, and ranges within a reference keep file order.
//
// The index is written to a temporary file next to dest and renamed into
// place, so a failed build does not leave a partial index behind.
func Build(source, dest string, windowSize int) error {
	r, size, err := window.Open(source)
	if err != nil {
		return err
	}
	defer r.Close()

	var (
		scanner  = window.NewScanner(r, size, windowSize)
		parser   = bed.NewParser()
		managers = make(map[string]*ArrayManager)
		order    []string
		header   = true
	)
	for scanner.Scan() {
		line := scanner.Line()
		if header {
			if bed.IsHeader(line) {
				continue
			}
			header = false
		}

		reference, start, end, err := parser.Bounds(line)
		if err != nil {
			return err
		}

		manager, ok := managers[reference]
		if !ok {
			manager = &ArrayManager{}
			managers[reference] = manager
			order = append(order, reference)
		}
		span := scanner.Span()
		manager.Add(Range{
			Start:  int32(start),
			End:    int32(end),
			Offset: span.Offset,
			Length: span.Length,
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	temp := fmt.Sprintf("%s.%s.tmp", dest, uuid.New().String())
	f, err := os.Create(temp)
	if err != nil {
		return fmt.Errorf("creating index file: %v", err)
	}

	serializable := make(map[string]Manager, len(managers))
	for name, manager := range managers {
		serializable[name] = manager
	}

	w := bufio.NewWriter(f)
	if err := write(w, order, serializable); err != nil {
		f.Close()
		os.Remove(temp)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(temp)
		return fmt.Errorf("flushing index file: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(temp)
		return fmt.Errorf("closing index file: %v", err)
	}
	if err := os.Rename(temp, dest); err != nil {
		os.Remove(temp)
		return fmt.Errorf("renaming index file: %v", err)
	}
	return nil
}
