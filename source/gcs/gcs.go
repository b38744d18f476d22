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

// Package gcs exposes Google Cloud Storage objects as random access
// sources for scanning and span materialization.
package gcs

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

var (
	defaultStorageClient           *storage.Client
	initializeDefaultStorageClient sync.Once
)

// NewClientFunc is the type of function that constructs the appropriate
// storage.Client to satisfy an incoming request.
type NewClientFunc func(*http.Request) (*storage.Client, error)

// NewDefaultClient returns a storage client that uses the application
// default credentials.  It caches the storage client for efficiency.
func NewDefaultClient(_ *http.Request) (*storage.Client, error) {
	return newClientWithOptions()
}

// NewPublicClient returns a storage client that does not use any form of
// client authorization.  It can only be used to read publicly-readable
// objects.  It caches the storage client for efficiency.
func NewPublicClient(_ *http.Request) (*storage.Client, error) {
	return newClientWithOptions(option.WithHTTPClient(http.DefaultClient))
}

// NewClientFromBearerToken constructs a storage client that uses the
// OAuth2 bearer token found in req to make storage requests.
func NewClientFromBearerToken(req *http.Request) (*storage.Client, error) {
	authorization := req.Header.Get("Authorization")

	fields := strings.Split(authorization, " ")
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("missing or invalid authorization token")
	}

	token := oauth2.Token{
		TokenType:   fields[0],
		AccessToken: fields[1],
	}
	return storage.NewClient(req.Context(), option.WithTokenSource(oauth2.StaticTokenSource(&token)))
}

func newClientWithOptions(opts ...option.ClientOption) (*storage.Client, error) {
	var err error
	initializeDefaultStorageClient.Do(func() {
		defaultStorageClient, err = storage.NewClient(context.Background(), opts...)
		if err != nil {
			log.Printf("Creating default storage client: %v", err)
		}
	})
	if defaultStorageClient == nil {
		return nil, fmt.Errorf("no default storage client available")
	}
	return defaultStorageClient, nil
}

// Object provides io.ReaderAt access to a GCS object using range reads,
// so the window scanner and materializer can run against bucket-resident
// BED files without downloading them.
type Object struct {
	ctx    context.Context
	handle *storage.ObjectHandle
	size   int64
}

// NewObject returns an Object for the named bucket and object.  The
// object size is fetched once from its attributes.
func NewObject(ctx context.Context, client *storage.Client, bucket, object string) (*Object, error) {
	handle := client.Bucket(bucket).Object(object)
	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %s/%s: %v", bucket, object, err)
	}
	return &Object{ctx: ctx, handle: handle, size: attrs.Size}, nil
}

// Size returns the object size in bytes.
func (o *Object) Size() int64 {
	return o.size
}

// ReadAt implements io.ReaderAt using a ranged object read.
func (o *Object) ReadAt(p []byte, off int64) (int, error) {
	r, err := o.handle.NewRangeReader(o.ctx, off, int64(len(p)))
	if err != nil {
		return 0, fmt.Errorf("creating range reader: %v", err)
	}
	defer r.Close()
	return io.ReadFull(r, p)
}
