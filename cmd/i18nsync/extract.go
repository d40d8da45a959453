package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/ZaguanLabs/i18nsync/dictionary"
)

// printCanonical writes the merged key→text mapping in dictionary format.
func printCanonical(ctx context.Context, w io.Writer, a *app, root string) error {
	canonical, err := a.syncer.ExtractAll(ctx, root)
	if err != nil {
		return err
	}
	data, err := dictionary.Marshal(canonical)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// printBindings lists every annotation binding, one per line, grouped by file.
func printBindings(w io.Writer, a *app, root string) error {
	docs, err := a.syncer.Documents(root)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, doc := range docs {
		bindings, err := a.processor.Scan(doc.Content)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.Path, err)
		}
		rel, err := filepath.Rel(root, doc.Path)
		if err != nil {
			rel = doc.Path
		}
		for _, b := range bindings {
			where := b.Tag
			if b.Attr != "" {
				where += "[" + b.Attr + "]"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%q\n", filepath.ToSlash(rel), where, b.Key, b.Value)
		}
	}
	return tw.Flush()
}
