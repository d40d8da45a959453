package i18nsync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Syncer extracts the canonical mapping from markup and reconciles dictionaries
// against it.
type Syncer struct {
	fs             afero.Fs
	extractor      Extractor
	store          DictionaryStore
	provider       Provider
	recorder       Recorder
	sourceLang     string
	localesDir     string
	include        []string
	exclude        []string
	referenceNames []string
	workers        int
	workDir        string
	out            io.Writer
	logger         *slog.Logger
}

// Provider is the interface for machine-translation backends.
//
// Implementations report a language code they do not accept with an
// *UnsupportedLanguageError so callers can retry with a fallback code.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	Key        string // Dictionary key, usable as a disambiguation hint
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Extractor parses one markup document into its key→text bindings.
type Extractor interface {
	Extract(content string) (*Mapping, error)
}

// DictionaryStore loads and persists dictionary files.
type DictionaryStore interface {
	Load(path string) (*Mapping, error)
	Save(path string, dict *Mapping) error
	// List returns the dictionary files in dir in lexicographic order.
	List(dir string) ([]string, error)
}

// Recorder observes reconciliation outcomes, e.g. to export metrics.
type Recorder interface {
	ObserveResult(res *Result)
	ObserveLoadError(path string)
}

// SyncerOption is a functional option for configuring the Syncer.
type SyncerOption func(*Syncer)

// WithFs sets the filesystem markup documents are read from.
func WithFs(fs afero.Fs) SyncerOption {
	return func(s *Syncer) {
		s.fs = fs
	}
}

// WithExtractor sets the markup extractor.
func WithExtractor(extractor Extractor) SyncerOption {
	return func(s *Syncer) {
		s.extractor = extractor
	}
}

// WithStore sets the dictionary store.
func WithStore(store DictionaryStore) SyncerOption {
	return func(s *Syncer) {
		s.store = store
	}
}

// WithProvider sets the translation provider used when AutoTranslate is on.
func WithProvider(provider Provider) SyncerOption {
	return func(s *Syncer) {
		s.provider = provider
	}
}

// WithRecorder sets an observer for reconciliation outcomes.
func WithRecorder(recorder Recorder) SyncerOption {
	return func(s *Syncer) {
		s.recorder = recorder
	}
}

// WithSourceLang sets the reference language of canonical texts.
func WithSourceLang(lang string) SyncerOption {
	return func(s *Syncer) {
		s.sourceLang = lang
	}
}

// WithLocalesDir sets the name of the dictionary directory under the root.
func WithLocalesDir(dir string) SyncerOption {
	return func(s *Syncer) {
		s.localesDir = dir
	}
}

// WithInclude sets the doublestar globs selecting markup documents,
// relative to the root.
func WithInclude(patterns []string) SyncerOption {
	return func(s *Syncer) {
		s.include = patterns
	}
}

// WithExclude sets doublestar globs of documents to skip.
func WithExclude(patterns []string) SyncerOption {
	return func(s *Syncer) {
		s.exclude = patterns
	}
}

// WithReferenceNames sets the dictionary names skipped in batch mode.
func WithReferenceNames(names []string) SyncerOption {
	return func(s *Syncer) {
		s.referenceNames = names
	}
}

// WithWorkers sets how many documents are parsed concurrently.
func WithWorkers(n int) SyncerOption {
	return func(s *Syncer) {
		s.workers = n
	}
}

// WithWorkDir sets the directory relative dictionary targets are resolved
// against first. Defaults to the process working directory.
func WithWorkDir(dir string) SyncerOption {
	return func(s *Syncer) {
		s.workDir = dir
	}
}

// WithOutput sets the writer receiving progress lines.
func WithOutput(w io.Writer) SyncerOption {
	return func(s *Syncer) {
		s.out = w
	}
}

// WithLogger sets the logger receiving diagnostics.
func WithLogger(logger *slog.Logger) SyncerOption {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// NewSyncer creates a Syncer. An extractor and a store must be configured
// before Sync is called.
func NewSyncer(opts ...SyncerOption) *Syncer {
	s := &Syncer{
		fs:             afero.NewOsFs(),
		sourceLang:     DefaultSourceLang,
		localesDir:     DefaultLocalesDir,
		include:        DefaultInclude,
		referenceNames: DefaultReferenceNames,
		workers:        1,
		out:            io.Discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return s
}

// SourceLang returns the reference language.
func (s *Syncer) SourceLang() string {
	return s.sourceLang
}

// LocalesDir returns the name of the dictionary directory.
func (s *Syncer) LocalesDir() string {
	return s.localesDir
}

// Documents reads every markup document under root selected by the include
// and exclude globs, sorted by path.
func (s *Syncer) Documents(root string) ([]Document, error) {
	var docs []Document

	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !s.selected(filepath.ToSlash(rel)) {
			return nil
		}

		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, Document{Path: path, Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return SortDocuments(docs), nil
}

// selected reports whether a slash-separated path relative to the root is a
// markup document to scan.
func (s *Syncer) selected(rel string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	for _, pattern := range s.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ExtractDocuments builds the canonical mapping from docs. Documents are
// merged in ascending path order; a later document's binding for a key
// overwrites an earlier one.
func (s *Syncer) ExtractDocuments(ctx context.Context, docs []Document) (*Mapping, error) {
	if s.extractor == nil {
		return nil, &ProcessorError{Message: "no extractor configured", ContentType: "html"}
	}

	sorted := SortDocuments(docs)
	mappings, err := ParallelExtract(ctx, s.extractor, sorted, s.workers)
	if err != nil {
		return nil, err
	}

	return MergeMappings(mappings), nil
}

// ExtractAll scans every markup document under root and returns the
// canonical mapping.
func (s *Syncer) ExtractAll(ctx context.Context, root string) (*Mapping, error) {
	docs, err := s.Documents(root)
	if err != nil {
		return nil, err
	}

	canonical, err := s.ExtractDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("extracted canonical mapping",
		slog.String("root", root),
		slog.Int("documents", len(docs)),
		slog.Int("keys", canonical.Len()))

	return canonical, nil
}
