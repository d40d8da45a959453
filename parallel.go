package i18nsync

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SortDocuments orders documents by ascending path. Merging in this order makes
// the canonical mapping independent of filesystem enumeration order.
func SortDocuments(docs []Document) []Document {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// ParallelExtract parses documents with at most workers goroutines and returns
// the per-document mappings index-aligned with docs. Parsing is a pure read
// pass, so only the merge order matters; callers merge the result in order.
func ParallelExtract(ctx context.Context, extractor Extractor, docs []Document, workers int) ([]*Mapping, error) {
	results := make([]*Mapping, len(docs))
	if len(docs) == 0 {
		return results, nil
	}

	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := extractor.Extract(doc.Content)
			if err != nil {
				return withPath(err, doc.Path)
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MergeMappings folds mappings into one, later mappings overwriting earlier
// bindings for the same key.
func MergeMappings(mappings []*Mapping) *Mapping {
	merged := NewMapping()
	for _, m := range mappings {
		merged.Merge(m)
	}
	return merged
}

// withPath attaches a document path to processor errors that lack one.
func withPath(err error, path string) error {
	if pe, ok := err.(*ProcessorError); ok && pe.Path == "" {
		cp := *pe
		cp.Path = path
		return &cp
	}
	return &ProcessorError{
		Message:     "failed to extract annotations",
		Cause:       err,
		ContentType: "html",
		Path:        path,
	}
}
