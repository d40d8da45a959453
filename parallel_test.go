package i18nsync

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// lineExtractor binds "key=value" lines, optionally sleeping to force
// out-of-order completion.
type lineExtractor struct {
	delay  func(content string) time.Duration
	active int64
	peak   int64
}

func (e *lineExtractor) Extract(content string) (*Mapping, error) {
	n := atomic.AddInt64(&e.active, 1)
	defer atomic.AddInt64(&e.active, -1)
	for {
		p := atomic.LoadInt64(&e.peak)
		if n <= p || atomic.CompareAndSwapInt64(&e.peak, p, n) {
			break
		}
	}

	if e.delay != nil {
		time.Sleep(e.delay(content))
	}
	if strings.Contains(content, "BROKEN") {
		return nil, errors.New("cannot parse")
	}

	m := NewMapping()
	for _, line := range strings.Split(content, "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			m.Set(k, v)
		}
	}
	return m, nil
}

func TestSortDocuments(t *testing.T) {
	docs := []Document{{Path: "b.html"}, {Path: "a/z.html"}, {Path: "a.html"}}
	sorted := SortDocuments(docs)

	want := []string{"a.html", "a/z.html", "b.html"}
	for i, d := range sorted {
		if d.Path != want[i] {
			t.Fatalf("SortDocuments order = %v, want %v", sorted, want)
		}
	}
	if docs[0].Path != "b.html" {
		t.Error("SortDocuments should not modify its input")
	}
}

func TestParallelExtract_IndexAligned(t *testing.T) {
	ext := &lineExtractor{
		delay: func(content string) time.Duration {
			if strings.HasPrefix(content, "slow") {
				return 30 * time.Millisecond
			}
			return 0
		},
	}
	docs := []Document{
		{Path: "1.html", Content: "slow=1\nk=first"},
		{Path: "2.html", Content: "k=second"},
	}

	results, err := ParallelExtract(context.Background(), ext, docs, 4)
	if err != nil {
		t.Fatalf("ParallelExtract failed: %v", err)
	}

	merged := MergeMappings(results)
	if v, _ := merged.Get("k"); v != "second" {
		t.Errorf("Expected later document to win, got %q", v)
	}
}

func TestParallelExtract_RespectsWorkerLimit(t *testing.T) {
	ext := &lineExtractor{delay: func(string) time.Duration { return 10 * time.Millisecond }}
	docs := make([]Document, 8)
	for i := range docs {
		docs[i] = Document{Path: string(rune('a' + i)), Content: "k=v"}
	}

	if _, err := ParallelExtract(context.Background(), ext, docs, 2); err != nil {
		t.Fatalf("ParallelExtract failed: %v", err)
	}
	if peak := atomic.LoadInt64(&ext.peak); peak > 2 {
		t.Errorf("Expected at most 2 concurrent extractions, got %d", peak)
	}
}

func TestParallelExtract_ErrorCarriesPath(t *testing.T) {
	ext := &lineExtractor{}
	docs := []Document{{Path: "ok.html", Content: "a=b"}, {Path: "bad.html", Content: "BROKEN"}}

	_, err := ParallelExtract(context.Background(), ext, docs, 1)
	if err == nil {
		t.Fatal("Expected error for broken document")
	}

	var pe *ProcessorError
	if !errors.As(err, &pe) || pe.Path != "bad.html" {
		t.Errorf("Expected ProcessorError for bad.html, got %v", err)
	}
}

func TestParallelExtract_Empty(t *testing.T) {
	results, err := ParallelExtract(context.Background(), &lineExtractor{}, nil, 3)
	if err != nil || len(results) != 0 {
		t.Errorf("Expected empty result, got %v, %v", results, err)
	}
}
