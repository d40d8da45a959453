package processor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/i18nsync"
	"golang.org/x/net/html"
)

// HTMLProcessor extracts annotation bindings from HTML documents.
type HTMLProcessor struct {
	attribute string
}

// HTMLOption configures the HTML processor.
type HTMLOption func(*HTMLProcessor)

// WithAttribute sets the annotation attribute (default "data-i18n").
// HTML attribute names are case-insensitive, so the name is lowercased.
func WithAttribute(name string) HTMLOption {
	return func(p *HTMLProcessor) {
		if name != "" {
			p.attribute = strings.ToLower(name)
		}
	}
}

// NewHTMLProcessor creates a new HTML processor.
func NewHTMLProcessor(opts ...HTMLOption) *HTMLProcessor {
	p := &HTMLProcessor{attribute: i18nsync.DefaultAttribute}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attribute returns the annotation attribute name.
func (p *HTMLProcessor) Attribute() string {
	return p.attribute
}

// Scan parses content and returns every binding in document order, including
// repeated keys.
func (p *HTMLProcessor) Scan(content string) ([]Binding, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &i18nsync.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var bindings []Binding
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		annotation, ok := sel.Attr(p.attribute)
		if !ok {
			return
		}

		tag := goquery.NodeName(sel)
		for _, d := range i18nsync.ParseAnnotation(annotation) {
			switch d := d.(type) {
			case i18nsync.AttributeDirective:
				// Parsed attribute names are lowercase; a missing attribute binds "".
				value, _ := sel.Attr(strings.ToLower(d.Attr))
				bindings = append(bindings, Binding{Key: d.Key, Value: value, Tag: tag, Attr: d.Attr})
			case i18nsync.TextDirective:
				bindings = append(bindings, Binding{Key: d.Key, Value: visibleText(sel), Tag: tag})
			}
		}
	})

	return bindings, nil
}

// Extract parses content and returns its key→text mapping. A later binding
// for a key overwrites an earlier one.
func (p *HTMLProcessor) Extract(content string) (*i18nsync.Mapping, error) {
	bindings, err := p.Scan(content)
	if err != nil {
		return nil, err
	}

	m := i18nsync.NewMapping()
	for _, b := range bindings {
		m.Set(b.Key, b.Value)
	}
	return m, nil
}

// visibleText returns the element's text content with surrounding whitespace
// trimmed. Comments are not text nodes and are left out.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.TrimSpace(sb.String())
}

// Verify HTMLProcessor implements Extractor
var _ Extractor = (*HTMLProcessor)(nil)
