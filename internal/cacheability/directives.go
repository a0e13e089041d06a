package cacheability

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Directives is a parsed Cache-Control value.
type Directives struct {
	values    map[string]*string
	malformed bool
}

// ParseDirectives splits a Cache-Control value into directives. All
// whitespace is removed first. Each comma-separated part is either a bare
// token or name=value; a repeated name keeps its last value. A part with
// more than one '=' marks the whole list malformed.
func ParseDirectives(value string) Directives {
	d := Directives{values: make(map[string]*string)}
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	if compact == "" {
		return d
	}

	for _, part := range strings.Split(compact, ",") {
		switch strings.Count(part, "=") {
		case 0:
			d.values[part] = nil
		case 1:
			name, val, _ := strings.Cut(part, "=")
			d.values[name] = &val
		default:
			d.malformed = true
		}
	}
	return d
}

// Malformed reports whether any directive could not be split into a
// name and at most one value.
func (d Directives) Malformed() bool {
	return d.malformed
}

// Has reports whether the directive name is present, with or without a value.
func (d Directives) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Value returns the directive's value. ok is false for absent directives
// and bare tokens.
func (d Directives) Value(name string) (string, bool) {
	v, ok := d.values[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// MaxAge returns the integer max-age. ok is false when the list is
// malformed or the directive is absent, bare, or non-numeric. Values
// beyond the int range are clamped to math.MaxInt or math.MinInt.
func (d Directives) MaxAge() (int, bool) {
	if d.malformed {
		return 0, false
	}
	raw, ok := d.Value("max-age")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
