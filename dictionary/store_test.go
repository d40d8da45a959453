package dictionary

import (
	"errors"
	"testing"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/l/de.json", []byte(`{"b":"B","a":"A"}`), 0o600))
	s := NewStore(fs)

	m, err := s.Load("/l/de.json")
	require.NoError(t, err)
	m.Set("c", "Ç")

	require.NoError(t, s.Save("/l/de.json", m))

	data, err := afero.ReadFile(fs, "/l/de.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"b\": \"B\",\n    \"a\": \"A\",\n    \"c\": \"Ç\"\n}\n", string(data))

	info, err := fs.Stat("/l/de.json")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String(), "permissions are kept")

	entries, err := afero.ReadDir(fs, "/l")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestStore_SaveNewFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/l", 0o755))
	s := NewStore(fs)

	require.NoError(t, s.Save("/l/fr.json", i18nsync.MappingOf("a", "b")))

	m, err := s.Load("/l/fr.json")
	require.NoError(t, err)
	assert.True(t, m.Equal(i18nsync.MappingOf("a", "b")))
}

func TestStore_LoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/l/bad.json", []byte(`{"a": 1}`), 0o644))
	s := NewStore(fs)

	for _, path := range []string{"/l/bad.json", "/l/missing.json"} {
		_, err := s.Load(path)

		var le *i18nsync.LoadError
		require.True(t, errors.As(err, &le), "expected LoadError for %s, got %v", path, err)
		assert.Equal(t, path, le.Path)
	}
}

func TestStore_List(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/l/fr.json", "/l/de.json", "/l/readme.md", "/l/sub/x.json"} {
		require.NoError(t, afero.WriteFile(fs, p, []byte("{}"), 0o644))
	}
	s := NewStore(fs)

	paths, err := s.List("/l")
	require.NoError(t, err)
	assert.Equal(t, []string{"/l/de.json", "/l/fr.json"}, paths)

	_, err = s.List("/missing")
	assert.Error(t, err)
}
