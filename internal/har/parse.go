// Package har reads HTTP Archive files and sums their cacheable bytes.
package har

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/webstats/webstats/internal/cacheability"
)

// Ext is the file extension of HAR captures.
const Ext = ".har"

// File is a parsed HAR capture together with the name it was read from.
type File struct {
	Name string
	Doc  Document
}

// ParseFile opens and decodes the HAR file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open har file: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Base(path))
}

// Parse decodes a HAR document from r. A document that is not valid JSON,
// whose shape does not match HAR, or that is followed by anything but
// whitespace is an error; there is no partial result.
func Parse(r io.Reader, name string) (*File, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode har %s: %w", name, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode har %s: trailing data after document", name)
	}
	return &File{Name: name, Doc: doc}, nil
}

// Site returns the display name: the first page's title when the capture
// has pages and that page carries a title, else the file name without its
// .har extension.
func (f *File) Site() string {
	if pages := f.Doc.Log.Pages; len(pages) > 0 && pages[0].Title != nil {
		return *pages[0].Title
	}
	return strings.TrimSuffix(f.Name, Ext)
}

// Entries returns the capture's entries.
func (f *File) Entries() []Entry {
	return f.Doc.Log.Entries
}

// HeaderMap folds the response headers into a lookup mapping. Later
// duplicates overwrite earlier ones.
func (r Response) HeaderMap() cacheability.Headers {
	h := cacheability.NewHeaders(len(r.Headers))
	for _, nv := range r.Headers {
		h.Set(nv.Name, nv.Value)
	}
	return h
}
