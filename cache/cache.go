// Package cache provides translation caching implementations.
package cache

import "github.com/ZaguanLabs/i18nsync"

// TranslationCache is an alias to the main package interface.
type TranslationCache = i18nsync.TranslationCache

// ExportableCache is a cache whose live entries can be enumerated, for
// persisting translations between runs.
type ExportableCache interface {
	TranslationCache
	// Entries returns all non-expired entries.
	Entries() (map[string]string, error)
}
