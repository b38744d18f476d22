// This binary provides an HTTP server that answers BED range queries from
// prebuilt byte-span indexes, backed by a local directory or a GCS bucket.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/bedidx/bedidx-server/bucket"
	"github.com/googlegenomics/bedidx/bedidx-server/file"
	"github.com/googlegenomics/bedidx/source/gcs"
)

var (
	port = flag.Int("port", 8080, "HTTP service port")

	secure    = flag.Bool("secure", false, "serve in HTTPS-only mode and forward client bearer tokens")
	httpsCert = flag.String("https_cert", "", "HTTPS certificate file")
	httpsKey  = flag.String("https_key", "", "HTTPS key file")

	directory  = flag.String("directory", "", "directory that contains bed/bed.idx files")
	bucketName = flag.String("bucket", "", "GCS bucket that contains bed/bed.idx objects")
)

func main() {
	flag.Parse()

	if *secure && (*httpsCert == "" || *httpsKey == "") {
		log.Fatalf("You must specify both -https_cert and -https_key in secure mode.")
	}

	router := gin.Default()

	switch {
	case *directory != "":
		router.GET("/spans/:id", file.NewSpansHandler(*directory))
		router.GET("/records/:id", file.NewRecordsHandler(*directory))
	case *bucketName != "":
		newClient := gcs.NewDefaultClient
		if *secure {
			newClient = gcs.NewClientFromBearerToken
		}
		router.GET("/spans/:id", bucket.NewSpansHandler(newClient, *bucketName))
		router.GET("/records/:id", bucket.NewRecordsHandler(newClient, *bucketName))
	default:
		log.Fatalf("You must specify either -directory or -bucket.")
	}

	address := fmt.Sprintf(":%d", *port)
	if *secure {
		if err := router.RunTLS(address, *httpsCert, *httpsKey); err != nil {
			log.Fatalf("HTTPS server returned an error: %v", err)
		}
	} else {
		if err := router.Run(address); err != nil {
			log.Fatalf("HTTP server returned an error: %v", err)
		}
	}
}
