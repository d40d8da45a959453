package i18nsync

import "strings"

// Directive is one ";"-separated unit of an annotation.
type Directive interface {
	// DirectiveKey returns the dictionary key the directive binds.
	DirectiveKey() string
}

// TextDirective binds a key to the element's trimmed text content.
type TextDirective struct {
	Key string
}

// AttributeDirective binds a key to the value of an element attribute.
type AttributeDirective struct {
	Key  string
	Attr string
}

func (d TextDirective) DirectiveKey() string      { return d.Key }
func (d AttributeDirective) DirectiveKey() string { return d.Key }

// ParseAnnotation parses an annotation value such as "title;[placeholder]search.hint".
//
// Segments are taken verbatim, without trimming. A segment that starts with
// "[" but has no closing "]" produces no directive, and neither does a segment
// whose key is empty (e.g. the trailing segment of "title;").
func ParseAnnotation(value string) []Directive {
	segments := strings.Split(value, ";")
	directives := make([]Directive, 0, len(segments))

	for _, seg := range segments {
		if strings.HasPrefix(seg, "[") {
			end := strings.IndexByte(seg, ']')
			if end == -1 {
				continue
			}
			if end == len(seg)-1 {
				continue
			}
			directives = append(directives, AttributeDirective{
				Attr: seg[1:end],
				Key:  seg[end+1:],
			})
			continue
		}
		if seg == "" {
			continue
		}
		directives = append(directives, TextDirective{Key: seg})
	}

	return directives
}
