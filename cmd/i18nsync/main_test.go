package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<body>
  <h1 data-i18n="title">Welcome</h1>
  <p data-i18n="greeting">Hello</p>
  <input data-i18n="[placeholder]search" placeholder="Search">
  <span data-i18n="blank"></span>
</body>
</html>
`

// newSite writes a project with one page and the given dictionaries and
// returns its root.
func newSite(t *testing.T, dicts map[string]string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "locales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(testPage), 0o644))
	for name, content := range dicts {
		require.NoError(t, os.WriteFile(filepath.Join(root, "locales", name), []byte(content), 0o644))
	}
	return root
}

func readDict(t *testing.T, root, name string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "locales", name))
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func runCLI(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := run(append([]string{"--no-color"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI("version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("i18nsync %s\n", i18nsync.FullVersion()), stdout)
}

func TestRun_Batch(t *testing.T) {
	root := newSite(t, map[string]string{
		"en.json": `{"title": "Welcome"}`,
		"fr.json": `{"title": "Bienvenue", "old": "Ancien"}`,
		"de.json": `{}`,
	})

	stdout, _, err := runCLI("--root", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Updating all JSON files...")
	assert.Contains(t, stdout, "[ADD] fr.json: greeting = \"Hello\"")
	assert.Contains(t, stdout, "[REMOVE] fr.json: old")
	assert.Contains(t, stdout, "Done!")

	assert.Equal(t, map[string]string{
		"title":    "Bienvenue",
		"greeting": "Hello",
		"search":   "Search",
	}, readDict(t, root, "fr.json"))
	assert.Equal(t, map[string]string{
		"title":    "Welcome",
		"greeting": "Hello",
		"search":   "Search",
	}, readDict(t, root, "de.json"))

	// The reference dictionary is left alone.
	assert.Equal(t, map[string]string{"title": "Welcome"}, readDict(t, root, "en.json"))
}

func TestRun_PositionalTargetAndRoot(t *testing.T) {
	root := newSite(t, map[string]string{
		"fr.json": `{}`,
		"de.json": `{}`,
	})

	stdout, _, err := runCLI("fr", root)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Updating all JSON files...")

	assert.Len(t, readDict(t, root, "fr.json"), 3)
	assert.Empty(t, readDict(t, root, "de.json"))
}

func TestRun_RootWithLocalesSuffix(t *testing.T) {
	root := newSite(t, map[string]string{"fr.json": `{}`})

	_, _, err := runCLI("--root", filepath.Join(root, "locales")+"/")
	require.NoError(t, err)
	assert.Len(t, readDict(t, root, "fr.json"), 3)
}

func TestRun_AutoTranslate(t *testing.T) {
	root := newSite(t, map[string]string{"pt-br.json": `{}`})

	_, _, err := runCLI("--root", root, "--provider", "mock", "--auto-translate")
	require.NoError(t, err)

	dict := readDict(t, root, "pt-br.json")
	assert.Equal(t, "[pt-br] Welcome", dict["title"])
	assert.Equal(t, "Hola", dict["greeting"])
	assert.NotContains(t, dict, "blank")
}

func TestRun_SortKeys(t *testing.T) {
	root := newSite(t, map[string]string{
		"fr.json": "{\n    \"search\": \"Chercher\",\n    \"title\": \"Bienvenue\"\n}\n",
	})

	_, _, err := runCLI("--root", root, "--sort-keys")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "locales", "fr.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"title\": \"Bienvenue\",\n    \"greeting\": \"Hello\",\n    \"search\": \"Chercher\"\n}\n", string(data))
}

func TestRun_ConfigFile(t *testing.T) {
	root := newSite(t, map[string]string{"fr.json": `{"old": "Ancien"}`})
	cfgPath := filepath.Join(t.TempDir(), "i18nsync.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("flags:\n  auto_remove: false\n"), 0o644))

	stdout, _, err := runCLI("--config", cfgPath, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "[STALE] fr.json: old (kept)")
	assert.Equal(t, "Ancien", readDict(t, root, "fr.json")["old"])

	// An explicit flag beats the file.
	_, _, err = runCLI("--config", cfgPath, "--root", root, "--auto-remove")
	require.NoError(t, err)
	assert.NotContains(t, readDict(t, root, "fr.json"), "old")
}

func TestRun_Quiet(t *testing.T) {
	root := newSite(t, map[string]string{"fr.json": `{}`})

	stdout, _, err := runCLI("--root", root, "-q")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRun_Errors(t *testing.T) {
	root := newSite(t, nil)

	tests := []struct {
		name   string
		args   []string
		target any
		code   int
	}{
		{"missing root", []string{"--root", filepath.Join(root, "nope")}, new(*i18nsync.DirectoryNotFoundError), 2},
		{"missing target", []string{"xx", root}, new(*i18nsync.DictionaryNotFoundError), 2},
		{"unknown provider", []string{"--root", root, "--provider", "babel"}, nil, 1},
		{"too many args", []string{"a", "b", "c"}, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.As(err, tt.target), "unexpected error %v", err)
			}
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestRun_BatchLoadErrorDoesNotFail(t *testing.T) {
	root := newSite(t, map[string]string{
		"fr.json": `{not json`,
		"de.json": `{}`,
	})

	_, stderr, err := runCLI("--root", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "fr.json")
	assert.Len(t, readDict(t, root, "de.json"), 3)
}

func TestRun_Check(t *testing.T) {
	root := newSite(t, map[string]string{"fr.json": `{"old": "Ancien"}`})

	stdout, _, err := runCLI("check", "--root", root)
	require.Error(t, err)
	assert.Contains(t, stdout, "fr.json: 3 missing, 1 stale")
	assert.Equal(t, 1, exitCode(err))

	stdout, _, err = runCLI("check", "fr.json", root)
	require.Error(t, err)
	assert.Contains(t, stdout, "fr.json: 3 missing, 1 stale")

	// Check never writes.
	assert.Equal(t, map[string]string{"old": "Ancien"}, readDict(t, root, "fr.json"))

	_, _, err = runCLI("--root", root)
	require.NoError(t, err)

	stdout, _, err = runCLI("check", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 dictionaries up to date")
}

func TestRun_Extract(t *testing.T) {
	root := newSite(t, nil)

	stdout, _, err := runCLI("extract", root)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"title\": \"Welcome\",\n    \"greeting\": \"Hello\",\n    \"search\": \"Search\",\n    \"blank\": \"\"\n}\n", stdout)
}

func TestRun_ExtractBindings(t *testing.T) {
	root := newSite(t, nil)

	stdout, _, err := runCLI("extract", "--bindings", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "index.html")
	assert.Contains(t, stdout, "input[placeholder]")
	assert.Contains(t, stdout, `"Search"`)
}

func TestRun_CacheFileAndMetrics(t *testing.T) {
	root := newSite(t, map[string]string{"fr.json": `{}`})
	out := t.TempDir()
	cacheFile := filepath.Join(out, "cache.json")
	metricsFile := filepath.Join(out, "i18nsync.prom")

	_, _, err := runCLI("--root", root, "--provider", "mock", "--auto-translate",
		"--cache-file", cacheFile, "--metrics-textfile", metricsFile)
	require.NoError(t, err)

	cacheData, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	assert.Contains(t, string(cacheData), "[fr] Welcome")

	metricsData, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metricsData), `i18nsync_keys_added_total{language="fr"} 3`)
	assert.Contains(t, string(metricsData), `i18nsync_cache_lookups{result="miss"} 3`)
}

func TestRun_ConfigShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	stdout, _, err := runCLI("config", "show", "--source-lang", "de")
	require.NoError(t, err)
	assert.Contains(t, stdout, "root: public")
	assert.Contains(t, stdout, "source_lang: de")
}

func TestRun_ConfigInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	stdout, _, err := runCLI("config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".config", "i18nsync", "config.yaml"))
	assert.Contains(t, stdout, "config.yaml")
}

func TestWatcher_ReportsMarkupChanges(t *testing.T) {
	root := t.TempDir()
	locales := filepath.Join(root, "locales")
	require.NoError(t, os.MkdirAll(locales, 0o755))

	w, err := newWatcher(root, []string{locales}, 20*time.Millisecond, newLogger(&bytes.Buffer{}, &options{quiet: true}))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) { changes <- paths })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(locales, "fr.json"), []byte("{}\n"), 0o644))
	page := filepath.Join(root, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(testPage), 0o644))

	select {
	case paths := <-changes:
		assert.Equal(t, []string{page}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Ignored(t *testing.T) {
	w := &watcher{root: "site", skip: []string{filepath.Join("site", "locales")}}

	assert.True(t, w.ignored(filepath.Join("site", "locales")))
	assert.True(t, w.ignored(filepath.Join("site", "locales", "fr.json")))
	assert.True(t, w.ignored(filepath.Join("site", ".git")))
	assert.False(t, w.ignored("site"))
	assert.False(t, w.ignored(filepath.Join("site", "locales-old", "a.html")))
	assert.False(t, w.ignored(filepath.Join("site", "index.html")))
}
