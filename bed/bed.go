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

// Package bed provides support for parsing BED interval files.
package bed

import (
	"errors"
	"fmt"
	"strings"
)

// Record is a single BED line.  Start and End are kept exactly as parsed:
// the format does not require Start < End and no validation is performed.
type Record struct {
	// Reference is the name of the reference sequence (the first BED
	// column).  It is an opaque label.
	Reference string
	// Start and End are the interval bounds in base pairs.
	Start, End int64
	// Attributes holds any remaining columns, unparsed.
	Attributes []string
}

func (r Record) String() string {
	if len(r.Attributes) == 0 {
		return fmt.Sprintf("%s\t%d\t%d", r.Reference, r.Start, r.End)
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s", r.Reference, r.Start, r.End, strings.Join(r.Attributes, "\t"))
}

// Span locates one line inside the source file as an exact byte range,
// excluding the trailing newline.
type Span struct {
	Offset int64
	Length int32
}

func (s Span) String() string {
	return fmt.Sprintf("[%d+%d]", s.Offset, s.Length)
}

// IsHeader reports whether line is a BED metadata line.  The format allows
// leading "browser" and "track" lines which carry no interval data.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "browser ") || strings.HasPrefix(line, "track ")
}

// FormatError indicates malformed BED or index data, as opposed to an I/O
// failure reading it.
type FormatError string

func (e FormatError) Error() string { return string(e) }

// Formatf returns a FormatError with a fmt.Sprintf style message.
func Formatf(format string, args ...interface{}) error {
	return FormatError(fmt.Sprintf(format, args...))
}

// IsFormat reports whether err is a FormatError.
func IsFormat(err error) bool {
	var formatErr FormatError
	return errors.As(err, &formatErr)
}
