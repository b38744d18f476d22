// This binary builds byte-span indexes for BED files and runs range
// queries against them.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/profile"

	"github.com/googlegenomics/bedidx"
)

var (
	indexPath = flag.String("index", "", "index file path (defaults to <source>.idx)")
	build     = flag.Bool("build", false, "build the index instead of querying")

	reference = flag.String("reference", "", "reference name to query")
	start     = flag.Int64("start", 0, "query interval start")
	end       = flag.Int64("end", math.MaxInt64, "query interval end")

	profileDir = flag.String("profile", "", "if set, write a CPU profile to this directory")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.bed\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	source := flag.Arg(0)

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	path := *indexPath
	if path == "" {
		path = source + ".idx"
	}

	if *build {
		if err := bedidx.BuildIndex(source, path); err != nil {
			log.Fatalf("Failed to build index: %v", err)
		}
		return
	}

	if *reference == "" {
		log.Fatalf("You must specify -reference when querying.")
	}

	idx, err := bedidx.LoadIndex(path)
	if err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}
	records, err := bedidx.Query(idx, source, *reference, *start, *end)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	for _, record := range records {
		fmt.Println(record)
	}
}
