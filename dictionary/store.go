package dictionary

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/spf13/afero"
)

// Store loads and saves dictionary files on an afero filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore creates a new store. A nil fs means the OS filesystem.
func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

// Load reads and parses the dictionary at path. Any failure is returned as
// an *i18nsync.LoadError.
func (s *Store) Load(path string) (*i18nsync.Mapping, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &i18nsync.LoadError{Path: path, Cause: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &i18nsync.LoadError{Path: path, Cause: err}
	}
	return m, nil
}

// Save writes dict to path through a temporary file in the same directory,
// so an interrupted write never leaves a truncated dictionary behind.
func (s *Store) Save(path string, dict *i18nsync.Mapping) error {
	data, err := Marshal(dict)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := s.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Chmod(tmpName, perm); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}

	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	return nil
}

// List returns the ".json" files directly inside dir, sorted by name.
func (s *Store) List(dir string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Verify Store implements DictionaryStore
var _ i18nsync.DictionaryStore = (*Store)(nil)
