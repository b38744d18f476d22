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

// Package bedidx indexes BED interval files by byte span so that range
// queries against a single reference can be answered without scanning the
// whole file.
package bedidx

import (
	"fmt"

	"github.com/googlegenomics/bedidx/bed"
	"github.com/googlegenomics/bedidx/index"
	"github.com/googlegenomics/bedidx/window"
)

// Index is the capability required to answer span queries.  index.Index
// satisfies it; alternative implementations can be substituted as long as
// they honor the containment rule described in index.RangeQueryer.
type Index interface {
	Spans(reference string, start, end int64) ([]bed.Span, error)
}

// BuildIndex indexes the BED file at source and writes the index to
// indexPath, creating or replacing it.
func BuildIndex(source, indexPath string) error {
	return index.Build(source, indexPath, window.DefaultSize)
}

// LoadIndex reads a previously built index file.
func LoadIndex(indexPath string) (index.Index, error) {
	return index.Load(indexPath)
}

// Query returns the records on reference whose interval lies entirely
// within [start, end], in file order, by re-reading only the matching
// byte spans of the BED file at source.
func Query(idx Index, source, reference string, start, end int64) ([]bed.Record, error) {
	if idx == nil {
		return nil, index.ErrUnsupportedManager
	}
	spans, err := idx.Spans(reference, start, end)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, nil
	}

	r, size, err := window.Open(source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var (
		m       = window.NewMaterializer(r, size, window.DefaultSize)
		parser  = bed.NewParser()
		records = make([]bed.Record, 0, len(spans))
	)
	for _, span := range spans {
		line, err := m.Text(span)
		if err != nil {
			return nil, fmt.Errorf("materializing span %s: %v", span, err)
		}
		record, err := parser.Parse(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
