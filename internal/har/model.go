package har

// Document is the top-level HAR structure.
type Document struct {
	Log Log `json:"log"`
}

// Log contains the pages and entries of a capture.
type Log struct {
	Version string  `json:"version,omitempty"`
	Pages   []Page  `json:"pages,omitempty"`
	Entries []Entry `json:"entries"`
}

// Page describes one top-level page load. Title is nil when the key is absent.
type Page struct {
	ID    string  `json:"id,omitempty"`
	Title *string `json:"title,omitempty"`
}

// Entry represents a single HTTP request/response pair.
type Entry struct {
	StartedDateTime string   `json:"startedDateTime,omitempty"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
}

// Request carries the fields the analysis reads from a request.
type Request struct {
	Method string `json:"method,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Response represents an HTTP response. BodySize is nil when the key is
// absent, which is treated the same as the -1 "unknown" sentinel.
type Response struct {
	Status   int         `json:"status,omitempty"`
	Headers  []NameValue `json:"headers"`
	Content  Content     `json:"content"`
	BodySize *float64    `json:"bodySize,omitempty"`
}

// Content represents response body metadata. Size is nil when absent.
type Content struct {
	Size     *float64 `json:"size,omitempty"`
	MimeType string   `json:"mimeType,omitempty"`
}

// NameValue is a generic name/value pair for headers.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
