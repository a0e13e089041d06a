// Package cacheability decides from response headers whether a payload
// counts as cacheable.
package cacheability

import "strings"

// Class names the rule that decided a classification.
type Class int

const (
	ClassEmpty     Class = iota // no headers at all
	ClassNoStore                // cache-control carries no-cache or no-store
	ClassMaxAge                 // positive max-age
	ClassExpires                // expires present
	ClassValidator              // etag or last-modified present
	ClassNone                   // nothing matched
)

var classNames = map[Class]string{
	ClassEmpty:     "empty",
	ClassNoStore:   "no-store",
	ClassMaxAge:    "max-age",
	ClassExpires:   "expires",
	ClassValidator: "validator",
	ClassNone:      "none",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "unknown"
}

// Cacheable reports whether the class counts toward cacheable bytes.
func (c Class) Cacheable() bool {
	switch c {
	case ClassMaxAge, ClassExpires, ClassValidator:
		return true
	}
	return false
}

// Classify applies the rules in order: no-cache/no-store, max-age > 0,
// expires, then etag/last-modified. The first match decides.
//
// Any non-empty Expires counts as cacheable, including dates in the past
// and values that are not dates at all.
func Classify(h Headers) Class {
	if len(h) == 0 {
		return ClassEmpty
	}

	cc := h.Get(HeaderCacheControl)
	if strings.Contains(cc, "no-cache") || strings.Contains(cc, "no-store") {
		return ClassNoStore
	}

	if strings.Contains(cc, "max-age") {
		if n, ok := ParseDirectives(cc).MaxAge(); ok && n > 0 {
			return ClassMaxAge
		}
	}

	if h.Get(HeaderExpires) != "" {
		return ClassExpires
	}

	if h.Get(HeaderETag) != "" || h.Get(HeaderLastModified) != "" {
		return ClassValidator
	}

	return ClassNone
}

// IsCacheable reports whether a response with headers h is cacheable.
func IsCacheable(h Headers) bool {
	return Classify(h).Cacheable()
}
