package cacheability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Class
	}{
		{"nil", nil, ClassEmpty},
		{"empty", map[string]string{}, ClassEmpty},
		{"no-cache beats max-age", map[string]string{"cache-control": "max-age=3600, no-cache"}, ClassNoStore},
		{"no-store beats etag", map[string]string{"cache-control": "no-store", "etag": `"abc"`}, ClassNoStore},
		{"no-store beats expires", map[string]string{"cache-control": "private, no-store", "expires": "Thu, 01 Dec 2094 16:00:00 GMT"}, ClassNoStore},
		{"no-cache substring", map[string]string{"cache-control": "x-no-cache-please"}, ClassNoStore},
		{"positive max-age", map[string]string{"cache-control": "public, max-age=3600"}, ClassMaxAge},
		{"max-age spaced", map[string]string{"cache-control": "public , max-age = 60"}, ClassMaxAge},
		{"max-age zero falls through", map[string]string{"cache-control": "max-age=0"}, ClassNone},
		{"max-age zero then etag", map[string]string{"cache-control": "max-age=0", "etag": "W/1"}, ClassValidator},
		{"negative max-age then expires", map[string]string{"cache-control": "max-age=-5", "expires": "0"}, ClassExpires},
		{"non-numeric max-age", map[string]string{"cache-control": "max-age=soon", "last-modified": "yesterday"}, ClassValidator},
		{"bare max-age", map[string]string{"cache-control": "max-age"}, ClassNone},
		{"malformed list swallowed", map[string]string{"cache-control": "max-age=60, foo=a=b", "expires": "x"}, ClassExpires},
		{"repeated max-age last wins", map[string]string{"cache-control": "max-age=60, max-age=0"}, ClassNone},
		{"repeated max-age last wins positive", map[string]string{"cache-control": "max-age=0, max-age=60"}, ClassMaxAge},
		{"s-maxage alone does not count", map[string]string{"cache-control": "s-maxage=600"}, ClassNone},
		{"expires not a date", map[string]string{"expires": "not-a-date"}, ClassExpires},
		{"expires in the past", map[string]string{"expires": "Thu, 01 Jan 1970 00:00:00 GMT"}, ClassExpires},
		{"empty expires", map[string]string{"expires": ""}, ClassNone},
		{"etag only", map[string]string{"etag": `"v1"`}, ClassValidator},
		{"last-modified only", map[string]string{"last-modified": "Wed, 21 Oct 2015 07:28:00 GMT"}, ClassValidator},
		{"unrelated headers", map[string]string{"content-type": "text/html", "vary": "accept"}, ClassNone},
		{"title case", map[string]string{"Cache-Control": "max-age=10"}, ClassMaxAge},
		{"title case etag", map[string]string{"ETag": "x"}, ClassValidator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(FromMap(tt.headers))
			assert.Equal(t, tt.want, got, "class %s", got)
			assert.Equal(t, tt.want.Cacheable(), IsCacheable(FromMap(tt.headers)))
		})
	}
}

func TestIsCacheable_NoStoreOverridesEverything(t *testing.T) {
	for _, cc := range []string{"no-cache", "no-store", "public, max-age=31536000, no-store"} {
		h := FromMap(map[string]string{
			"cache-control": cc,
			"expires":       "Thu, 01 Dec 2094 16:00:00 GMT",
			"etag":          `"abc"`,
			"last-modified": "Wed, 21 Oct 2015 07:28:00 GMT",
		})
		assert.False(t, IsCacheable(h), cc)
	}
}

func TestIsCacheable_PositiveMaxAge(t *testing.T) {
	for _, n := range []string{"1", "60", "3600", "31536000", "+5"} {
		h := FromMap(map[string]string{"cache-control": "max-age=" + n})
		assert.True(t, IsCacheable(h), n)
	}
}

func TestFromMap_PrefersLowerCase(t *testing.T) {
	h := FromMap(map[string]string{
		"cache-control": "no-store",
		"Cache-Control": "max-age=600",
	})
	assert.Equal(t, "no-store", h.Get(HeaderCacheControl))
	assert.False(t, IsCacheable(h))

	h = FromMap(map[string]string{
		"expires": "",
		"Expires": "tomorrow",
	})
	assert.Equal(t, "tomorrow", h.Get(HeaderExpires))
}

func TestHeaders_SetLastWins(t *testing.T) {
	h := NewHeaders(2)
	h.Set("Cache-Control", "max-age=60")
	h.Set("cache-control", "no-store")
	assert.Len(t, h, 1)
	assert.Equal(t, "no-store", h.Get("CACHE-CONTROL"))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "max-age", ClassMaxAge.String())
	assert.Equal(t, "unknown", Class(99).String())
}
