// Package model defines the JSON responses served by bedidx-server.
package model

// Span is one matching byte range of the source BED file.
type Span struct {
	Offset int64 `json:"offset"`
	Length int32 `json:"length"`
}

// SpansResponse lists the byte spans matching a query.  Clients can fetch
// the spans themselves and decode the lines locally.
type SpansResponse struct {
	Reference string `json:"referenceName"`
	Spans     []Span `json:"spans"`
}

// Record is one materialized BED record.
type Record struct {
	Reference  string   `json:"referenceName"`
	Start      int64    `json:"start"`
	End        int64    `json:"end"`
	Attributes []string `json:"attributes,omitempty"`
}

// RecordsResponse lists the records matching a query.
type RecordsResponse struct {
	Reference string   `json:"referenceName"`
	Records   []Record `json:"records"`
}
