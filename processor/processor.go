// Package processor provides markup extractors for annotation directives.
package processor

import "github.com/ZaguanLabs/i18nsync"

// Extractor is an alias to the main package interface.
type Extractor = i18nsync.Extractor

// Directive is an alias to the main package type.
type Directive = i18nsync.Directive

// Binding is one key→text binding found in a document.
type Binding struct {
	Key   string
	Value string
	Tag   string // Element the annotation was found on
	Attr  string // Source attribute; empty for text directives
}
