// mkfixture trims a large HAR capture into a small fixture that still covers
// every cacheability class.
// Usage: go run ./cmd/mkfixture --in har_files/big.har --out testdata/small.har --entries 40
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/webstats/webstats/internal/cacheability"
	"github.com/webstats/webstats/internal/har"
)

var classes = []cacheability.Class{
	cacheability.ClassNoStore,
	cacheability.ClassMaxAge,
	cacheability.ClassExpires,
	cacheability.ClassValidator,
	cacheability.ClassNone,
	cacheability.ClassEmpty,
}

func main() {
	in := flag.String("in", "", "input .har file (required)")
	out := flag.String("out", "testdata/small.har", "output .har file")
	maxEntries := flag.Int("entries", 40, "max entries to output")
	checkOnly := flag.Bool("check", false, "only print the class distribution, don't write")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "--in is required")
		os.Exit(1)
	}

	f, err := har.ParseFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse input: %v\n", err)
		os.Exit(1)
	}

	if *checkOnly {
		fmt.Printf("Site: %s\n", f.Site())
		printDistribution(f.Entries())
		return
	}

	// Pass 1: bucket every entry by the rule that classifies it.
	want := *maxEntries / len(classes)
	if want < 1 {
		want = 1
	}
	buckets := make(map[cacheability.Class][]har.Entry, len(classes))
	var general []har.Entry
	for _, e := range f.Entries() {
		c := cacheability.Classify(e.Response.HeaderMap())
		if len(buckets[c]) < want {
			buckets[c] = append(buckets[c], e)
			continue
		}
		if len(general) < *maxEntries {
			general = append(general, e)
		}
	}
	fmt.Printf("Scanned %d entries\n", len(f.Entries()))

	// Pass 2: merge buckets in class order, then top up from the rest.
	var selected []har.Entry
	for _, c := range classes {
		for _, e := range buckets[c] {
			if len(selected) >= *maxEntries {
				break
			}
			selected = append(selected, e)
		}
	}
	for _, e := range general {
		if len(selected) >= *maxEntries {
			break
		}
		selected = append(selected, e)
	}

	doc := f.Doc
	doc.Log.Entries = selected
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d entries to %s\n", len(selected), *out)
	printDistribution(selected)
}

func printDistribution(entries []har.Entry) {
	t := har.Analyze(entries)
	counts := make(map[cacheability.Class]int)
	for _, e := range entries {
		counts[cacheability.Classify(e.Response.HeaderMap())]++
	}
	fmt.Println("Class distribution:")
	for _, c := range classes {
		fmt.Printf("  %-10s %4d entries %10d bytes\n", c, counts[c], t.BytesByClass[c])
	}
	fmt.Printf("Cacheable: %d of %d bytes\n", t.CacheableBytes, t.TotalBytes)
}
