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

// Package bedtest generates synthetic BED data and provides a naive
// reference reader used to validate query results.
package bedtest

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/googlegenomics/bedidx/bed"
)

var attributePool = []string{"Pos1", "Neg2", "0", "+", "-", "exon", "3x"}

// Generate returns count newline-terminated BED lines spread across the
// provided references, with random intervals and up to three attribute
// columns.  The output is deterministic for a given rand source.
func Generate(rnd *rand.Rand, references []string, count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		reference := references[rnd.Intn(len(references))]
		start := rnd.Intn(1000000)
		end := start + rnd.Intn(10000)
		fmt.Fprintf(&b, "%s\t%d\t%d", reference, start, end)
		for j := rnd.Intn(4); j > 0; j-- {
			fmt.Fprintf(&b, "\t%s", attributePool[rnd.Intn(len(attributePool))])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Find is the reference oracle: a linear scan of the decoded contents
// filtered by the same containment rule the index uses.  Leading browser
// and track lines are skipped.
func Find(contents, reference string, start, end int64) ([]bed.Record, error) {
	var (
		parser  = bed.NewParser()
		header  = true
		records []bed.Record
	)
	for _, line := range strings.Split(contents, "\n") {
		if line == "" {
			continue
		}
		if header {
			if bed.IsHeader(line) {
				continue
			}
			header = false
		}

		record, err := parser.Parse(line)
		if err != nil {
			return nil, err
		}
		if record.Reference == reference && record.Start >= start && record.End <= end {
			records = append(records, record)
		}
	}
	return records, nil
}
