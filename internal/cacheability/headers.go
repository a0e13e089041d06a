package cacheability

import "strings"

// Header names the classifier consults.
const (
	HeaderCacheControl = "cache-control"
	HeaderExpires      = "expires"
	HeaderETag         = "etag"
	HeaderLastModified = "last-modified"
)

// Headers maps lower-cased header names to values. Names are folded once on
// insert so lookups never need to try alternate casings.
type Headers map[string]string

// NewHeaders returns an empty mapping sized for n headers.
func NewHeaders(n int) Headers {
	return make(Headers, n)
}

// Set stores value under the lower-cased name, replacing any earlier value.
func (h Headers) Set(name, value string) {
	h[strings.ToLower(name)] = value
}

// Get returns the value for name, or "" when absent.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// FromMap folds a mapping whose keys may use any casing. When both a
// lower-case key and another casing of the same name carry a value, the
// lower-case key wins; an empty lower-case value yields to a non-empty one.
func FromMap(m map[string]string) Headers {
	h := NewHeaders(len(m))
	for k, v := range m {
		if k == strings.ToLower(k) {
			continue
		}
		lk := strings.ToLower(k)
		if h[lk] == "" {
			h[lk] = v
		}
	}
	for k, v := range m {
		if k != strings.ToLower(k) {
			continue
		}
		if v != "" || h[k] == "" {
			h[k] = v
		}
	}
	return h
}
