package lighthouse

import "strings"

// ResourceType is a resource-summary bucket.
type ResourceType int

const (
	ResourceOther ResourceType = iota
	ResourceScript
	ResourceImage
	ResourceStylesheet
	ResourceFont
	ResourceDocument
)

var resourceLabels = map[string]ResourceType{
	"script":     ResourceScript,
	"image":      ResourceImage,
	"stylesheet": ResourceStylesheet,
	"font":       ResourceFont,
	"document":   ResourceDocument,
}

// ClassifyResource maps a resourceType label to its bucket, ignoring case.
// Unknown labels, including Lighthouse's own "total" and "third-party"
// rows, land in ResourceOther.
func ClassifyResource(label string) ResourceType {
	if rt, ok := resourceLabels[strings.ToLower(label)]; ok {
		return rt
	}
	return ResourceOther
}

func (rt ResourceType) String() string {
	switch rt {
	case ResourceScript:
		return "js"
	case ResourceImage:
		return "img"
	case ResourceStylesheet:
		return "css"
	case ResourceFont:
		return "font"
	case ResourceDocument:
		return "html"
	default:
		return "other"
	}
}
