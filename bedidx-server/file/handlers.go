// Package file serves span and record queries from a directory of BED
// files and their indexes (<id>.bed and <id>.bed.idx).
package file

import (
	"encoding/json"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/bedidx"
	"github.com/googlegenomics/bedidx/bedidx-server/model"
	"github.com/googlegenomics/bedidx/bedidx-server/utils"
	"github.com/googlegenomics/bedidx/index"
)

func params(c *gin.Context) (utils.Query, bool) {
	query, err := utils.QueryParams(map[string]string{
		"id":            c.Param("id"),
		"referenceName": c.Query("referenceName"),
		"start":         c.Query("start"),
		"end":           c.Query("end"),
	})
	if err != nil {
		c.String(400, "Error parsing params: %v", err)
		return utils.Query{}, false
	}
	return query, true
}

// NewSpansHandler builds a gin handler that returns the byte spans of the
// records matching a query.
func NewSpansHandler(directory string) func(c *gin.Context) {
	return func(c *gin.Context) {
		query, ok := params(c)
		if !ok {
			return
		}

		idx, err := index.Load(filepath.Join(directory, query.ID+".bed.idx"))
		if err != nil {
			c.String(404, "Error loading index")
			return
		}
		spans, err := idx.Spans(query.Reference, query.Start, query.End)
		if err != nil {
			c.String(500, "Error querying index")
			return
		}

		response := model.SpansResponse{
			Reference: query.Reference,
			Spans:     make([]model.Span, len(spans)),
		}
		for i, span := range spans {
			response.Spans[i] = model.Span{Offset: span.Offset, Length: span.Length}
		}
		writeJSON(c, &response)
	}
}

// NewRecordsHandler builds a gin handler that returns fully materialized
// records matching a query.
func NewRecordsHandler(directory string) func(c *gin.Context) {
	return func(c *gin.Context) {
		query, ok := params(c)
		if !ok {
			return
		}

		idx, err := index.Load(filepath.Join(directory, query.ID+".bed.idx"))
		if err != nil {
			c.String(404, "Error loading index")
			return
		}
		source := filepath.Join(directory, query.ID+".bed")
		records, err := bedidx.Query(idx, source, query.Reference, query.Start, query.End)
		if err != nil {
			c.String(500, "Error reading records")
			return
		}

		response := model.RecordsResponse{
			Reference: query.Reference,
			Records:   make([]model.Record, len(records)),
		}
		for i, record := range records {
			response.Records[i] = model.Record{
				Reference:  record.Reference,
				Start:      record.Start,
				End:        record.End,
				Attributes: record.Attributes,
			}
		}
		writeJSON(c, &response)
	}
}

func writeJSON(c *gin.Context, v interface{}) {
	enc := json.NewEncoder(c.Writer)
	enc.SetEscapeHTML(false)
	c.Header("Content-Type", "application/json")
	c.Status(200)
	if err := enc.Encode(v); err != nil {
		c.String(500, "Error generating result")
	}
}
