package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// SnapshotVersion is the layout version of a saved translation memo.
const SnapshotVersion = 2

// Snapshot is the on-disk form of a translation memo. Translations are
// ordered by key so that an unchanged memo saves to identical bytes.
type Snapshot struct {
	Version      int               `json:"version"`
	SavedAt      string            `json:"saved_at"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Translations []Memo            `json:"translations"`
}

// Memo is one remembered translation.
type Memo struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Exporter saves the contents of a cache as a Snapshot.
type Exporter struct {
	cache ExportableCache
	fs    afero.Fs
	now   func() time.Time
}

// NewExporter returns an Exporter writing to fs, or to the OS filesystem
// when fs is nil.
func NewExporter(cache ExportableCache, fs afero.Fs) *Exporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Exporter{cache: cache, fs: fs, now: time.Now}
}

// Export encodes a snapshot of the cache to w and returns the number of
// translations written.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) (int, error) {
	entries, err := e.cache.Entries()
	if err != nil {
		return 0, fmt.Errorf("listing cache entries: %w", err)
	}

	snap := Snapshot{
		Version:      SnapshotVersion,
		SavedAt:      e.now().UTC().Format(time.RFC3339),
		Metadata:     metadata,
		Translations: make([]Memo, 0, len(entries)),
	}
	for k, v := range entries {
		snap.Translations = append(snap.Translations, Memo{Key: k, Text: v})
	}
	sort.Slice(snap.Translations, func(i, j int) bool {
		return snap.Translations[i].Key < snap.Translations[j].Key
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&snap); err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}
	return len(snap.Translations), nil
}

// ExportToFile saves a snapshot to path through a temporary file in the
// same directory that is renamed into place.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) (int, error) {
	dir := filepath.Dir(path)
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(e.fs, dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}
	n, err := e.Export(tmp, metadata)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = e.fs.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = e.fs.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

// Importer loads a Snapshot back into a cache.
type Importer struct {
	cache TranslationCache
	fs    afero.Fs
}

// NewImporter returns an Importer reading from fs, or from the OS
// filesystem when fs is nil.
func NewImporter(cache TranslationCache, fs afero.Fs) *Importer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Importer{cache: cache, fs: fs}
}

// ImportResult counts what an import did.
type ImportResult struct {
	Version  int
	Metadata map[string]string
	Loaded   int
	// Rejected counts translations with an empty key or that the cache
	// refused to store.
	Rejected int
}

// Import decodes a snapshot from r and stores its translations.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is not supported (want %d)", snap.Version, SnapshotVersion)
	}

	res := &ImportResult{Version: snap.Version, Metadata: snap.Metadata}
	for _, m := range snap.Translations {
		if m.Key == "" || i.cache.Set(m.Key, m.Text) != nil {
			res.Rejected++
			continue
		}
		res.Loaded++
	}
	return res, nil
}

// ImportFromFile imports the snapshot at path. A missing file yields an
// error matching fs.ErrNotExist.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := i.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := i.Import(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
