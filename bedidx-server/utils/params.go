package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Query holds the parsed parameters of a spans or records request.
type Query struct {
	ID        string
	Reference string
	Start     int64
	End       int64
}

// QueryParams extracts the dataset ID, reference name and interval bounds
// from request parameters.  Missing bounds default to the widest possible
// query.
func QueryParams(params map[string]string) (Query, error) {
	query := Query{
		ID:        params["id"],
		Reference: params["referenceName"],
		End:       math.MaxInt64,
	}
	if query.ID == "" {
		return Query{}, fmt.Errorf("invalid ID")
	}
	if query.Reference == "" {
		return Query{}, fmt.Errorf("missing reference name")
	}

	var err error
	if raw := params["start"]; raw != "" {
		if query.Start, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Query{}, fmt.Errorf("parsing start: %v", err)
		}
	}
	if raw := params["end"]; raw != "" {
		if query.End, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Query{}, fmt.Errorf("parsing end: %v", err)
		}
	}
	return query, nil
}
