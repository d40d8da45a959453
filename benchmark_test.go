package i18nsync_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/ZaguanLabs/i18nsync/cache"
	"github.com/ZaguanLabs/i18nsync/dictionary"
	"github.com/ZaguanLabs/i18nsync/processor"
)

func BenchmarkHashText(b *testing.B) {
	text := "Hello World, this is a sample text for hashing"
	for b.Loop() {
		i18nsync.HashText(text)
	}
}

func BenchmarkCacheKey(b *testing.B) {
	hash := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e"
	for b.Loop() {
		i18nsync.CacheKey(hash, "en", "pt-BR")
	}
}

func BenchmarkInMemoryCache_Get(b *testing.B) {
	c := cache.NewInMemoryCache(0)
	_ = c.Set("test-key", "test-value")
	for b.Loop() {
		c.Get("test-key")
	}
}

func BenchmarkParseAnnotation(b *testing.B) {
	value := "title;[placeholder]search.placeholder;[aria-label]search.label"
	for b.Loop() {
		i18nsync.ParseAnnotation(value)
	}
}

func BenchmarkHTMLProcessor_Extract_Small(b *testing.B) {
	proc := processor.NewHTMLProcessor()
	html := `<div><p data-i18n="hello">Hello World</p></div>`
	for b.Loop() {
		_, _ = proc.Extract(html)
	}
}

func BenchmarkHTMLProcessor_Extract_Medium(b *testing.B) {
	proc := processor.NewHTMLProcessor()
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><body>")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, `<section><h2 data-i18n="s%d.title">Section %d</h2>`, i, i)
		fmt.Fprintf(&sb, `<input data-i18n="[placeholder]s%d.input" placeholder="Value %d"></section>`, i, i)
	}
	sb.WriteString("</body></html>")
	html := sb.String()
	for b.Loop() {
		_, _ = proc.Extract(html)
	}
}

func benchMapping(n int) *i18nsync.Mapping {
	m := i18nsync.NewMapping()
	for i := 0; i < n; i++ {
		m.Set(fmt.Sprintf("key.%04d", i), fmt.Sprintf("Text number %d with \"quotes\"", i))
	}
	return m
}

func BenchmarkDictionary_Marshal(b *testing.B) {
	m := benchMapping(1000)
	for b.Loop() {
		_, _ = dictionary.Marshal(m)
	}
}

func BenchmarkDictionary_Parse(b *testing.B) {
	data, err := dictionary.Marshal(benchMapping(1000))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_, _ = dictionary.Parse(data)
	}
}

func BenchmarkDiff(b *testing.B) {
	canonical := benchMapping(1000)
	dict := benchMapping(900)
	dict.Set("stale.key", "gone")
	for b.Loop() {
		i18nsync.Diff(dict, canonical)
	}
}

func BenchmarkSyncer_Sync(b *testing.B) {
	fs := newSite(b, map[string]string{"fr.json": `{}`, "de.json": `{}`})
	s := newSyncer(fs, nil)
	req := i18nsync.SyncRequest{Root: "/site", Flags: i18nsync.DefaultFlags()}
	for b.Loop() {
		if _, err := s.Sync(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetLanguageName(b *testing.B) {
	for b.Loop() {
		i18nsync.GetLanguageName("pt-BR")
	}
}
