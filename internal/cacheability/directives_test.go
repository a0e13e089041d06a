package cacheability

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirectives(t *testing.T) {
	d := ParseDirectives(`public, max-age=600, stale-while-revalidate = 30 , community="UCI"`)

	assert.False(t, d.Malformed())
	assert.True(t, d.Has("public"))
	_, ok := d.Value("public")
	assert.False(t, ok, "bare token has no value")

	v, ok := d.Value("stale-while-revalidate")
	assert.True(t, ok)
	assert.Equal(t, "30", v)

	v, _ = d.Value("community")
	assert.Equal(t, `"UCI"`, v, "quotes are kept")

	n, ok := d.MaxAge()
	assert.True(t, ok)
	assert.Equal(t, 600, n)
}

func TestParseDirectives_Edges(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		maxAge    int
		ok        bool
		malformed bool
	}{
		{"empty", "", 0, false, false},
		{"whitespace only", "  \t ", 0, false, false},
		{"trailing comma", "max-age=5,", 5, true, false},
		{"tab and newline", "max-age=\t7\n", 7, true, false},
		{"empty value", "max-age=", 0, false, false},
		{"float", "max-age=1.5", 0, false, false},
		{"negative", "max-age=-1", -1, true, false},
		{"double equals", "max-age==5", 0, false, true},
		{"other directive malformed", "a=b=c, max-age=5", 0, false, true},
		{"duplicate", "max-age=1,max-age=9", 9, true, false},
		{"overflow clamps high", "max-age=99999999999999999999", math.MaxInt, true, false},
		{"overflow clamps low", "max-age=-99999999999999999999", math.MinInt, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDirectives(tt.in)
			n, ok := d.MaxAge()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.malformed, d.Malformed())
			if ok {
				assert.Equal(t, tt.maxAge, n)
			}
		})
	}
}
