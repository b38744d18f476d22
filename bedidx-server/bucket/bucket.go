// Package bucket serves span and record queries from BED files and
// indexes stored in a Google Cloud Storage bucket.
package bucket

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/bedidx/bed"
	"github.com/googlegenomics/bedidx/bedidx-server/model"
	"github.com/googlegenomics/bedidx/bedidx-server/utils"
	"github.com/googlegenomics/bedidx/index"
	"github.com/googlegenomics/bedidx/source/gcs"
	"github.com/googlegenomics/bedidx/window"
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

func loadIndex(c *gin.Context, newClient gcs.NewClientFunc, bucket, object string) (index.Index, error) {
	client, err := newClient(c.Request)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %v", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(c.Request.Context())
	if err != nil {
		return nil, fmt.Errorf("opening %s/%s: %v", bucket, object, err)
	}
	defer r.Close()
	return index.Read(r)
}

// NewSpansHandler builds a gin handler that answers span queries from
// index objects in bucket.
func NewSpansHandler(newClient gcs.NewClientFunc, bucket string) func(c *gin.Context) {
	return func(c *gin.Context) {
		query, ok := params(c)
		if !ok {
			return
		}

		idx, err := loadIndex(c, newClient, bucket, query.ID+".bed.idx")
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

// NewRecordsHandler builds a gin handler that materializes matching
// records with ranged reads against the BED object in bucket.
func NewRecordsHandler(newClient gcs.NewClientFunc, bucket string) func(c *gin.Context) {
	return func(c *gin.Context) {
		query, ok := params(c)
		if !ok {
			return
		}

		idx, err := loadIndex(c, newClient, bucket, query.ID+".bed.idx")
		if err != nil {
			c.String(404, "Error loading index")
			return
		}
		spans, err := idx.Spans(query.Reference, query.Start, query.End)
		if err != nil {
			c.String(500, "Error querying index")
			return
		}

		response := model.RecordsResponse{
			Reference: query.Reference,
			Records:   make([]model.Record, len(spans)),
		}
		if len(spans) > 0 {
			client, err := newClient(c.Request)
			if err != nil {
				c.String(500, "Error creating storage client")
				return
			}
			object, err := gcs.NewObject(c.Request.Context(), client, bucket, query.ID+".bed")
			if err != nil {
				c.String(404, "Error opening source object")
				return
			}

			var (
				m      = window.NewMaterializer(object, object.Size(), window.DefaultSize)
				parser = bed.NewParser()
			)
			for i, span := range spans {
				line, err := m.Text(span)
				if err != nil {
					c.String(500, "Error reading record")
					return
				}
				record, err := parser.Parse(line)
				if err != nil {
					c.String(500, "Error parsing record")
					return
				}
				response.Records[i] = model.Record{
					Reference:  record.Reference,
					Start:      record.Start,
					End:        record.End,
					Attributes: record.Attributes,
				}
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
