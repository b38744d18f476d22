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

package bed

import (
	"regexp"
	"strconv"
)

// Fields are separated by a run of spaces or by a single tab.
var defaultDelimiter = regexp.MustCompile(` +|\t`)

// Parser splits BED lines into records.  The zero value is not usable; use
// NewParser or NewParserDelimiter.
type Parser struct {
	delimiter *regexp.Regexp
}

// NewParser returns a Parser using the standard BED field delimiter.
func NewParser() *Parser {
	return &Parser{delimiter: defaultDelimiter}
}

// NewParserDelimiter returns a Parser that splits fields on the provided
// expression instead of the standard BED delimiter.
func NewParserDelimiter(delimiter *regexp.Regexp) *Parser {
	return &Parser{delimiter: delimiter}
}

// Parse parses a single BED line into a Record.  It returns a FormatError
// if the line has fewer than three fields or the interval bounds are not
// integers.  No semantic validation (such as Start < End) is performed.
func (p *Parser) Parse(line string) (Record, error) {
	fields := p.delimiter.Split(line, -1)
	if len(fields) < 3 {
		return Record{}, Formatf("bed: line %q has %d fields, want at least 3", line, len(fields))
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Record{}, Formatf("bed: bad interval start %q: %v", fields[1], err)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Record{}, Formatf("bed: bad interval end %q: %v", fields[2], err)
	}

	return Record{
		Reference:  fields[0],
		Start:      start,
		End:        end,
		Attributes: fields[3:],
	}, nil
}

// Bounds parses only the reference name and interval bounds of a BED line,
// leaving any attribute columns unsplit.  The index build uses this to
// avoid materializing attributes that are only needed at query time.
func (p *Parser) Bounds(line string) (string, int64, int64, error) {
	fields := p.delimiter.Split(line, 4)
	if len(fields) < 3 {
		return "", 0, 0, Formatf("bed: line %q has %d fields, want at least 3", line, len(fields))
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return "", 0, 0, Formatf("bed: bad interval start %q: %v", fields[1], err)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", 0, 0, Formatf("bed: bad interval end %q: %v", fields[2], err)
	}
	return fields[0], start, end, nil
}
