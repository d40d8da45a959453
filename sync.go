package i18nsync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SyncRequest describes one Sync or Check run.
type SyncRequest struct {
	// Root is the project directory containing the markup documents. A
	// trailing "/" or "/<locales dir>" is stripped.
	Root string

	// Target names a single dictionary to reconcile. Empty means every
	// non-reference dictionary under <Root>/<locales dir>.
	Target string

	Flags Flags
}

// NormalizeRoot strips a trailing separator and a trailing locales directory
// from root, so "site/", "site/locales" and "site" all name the same project.
func NormalizeRoot(root, localesDir string) string {
	if root == "" {
		return "."
	}
	root = strings.TrimSuffix(root, "/")
	if localesDir != "" {
		root = strings.TrimSuffix(root, "/"+localesDir)
	}
	if root == "" {
		return "/"
	}
	return root
}

// ResolveRoot normalizes root and checks that it is an existing directory.
func (s *Syncer) ResolveRoot(root string) (string, error) {
	root = NormalizeRoot(root, s.localesDir)
	ok, err := afero.DirExists(s.fs, root)
	if err != nil || !ok {
		return "", &DirectoryNotFoundError{Path: root}
	}
	return root, nil
}

// ResolveDictionaryPath locates the dictionary named by target. ".json" is
// appended when missing. A relative target is looked up in the working
// directory first and then in localesPath.
func (s *Syncer) ResolveDictionaryPath(target, localesPath string) (string, error) {
	path := target
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}

	if filepath.IsAbs(path) {
		if s.exists(path) {
			return path, nil
		}
	} else {
		if s.exists(filepath.Join(s.cwd(), path)) {
			return filepath.Join(s.cwd(), path), nil
		}
		if candidate := filepath.Join(localesPath, path); s.exists(candidate) {
			return candidate, nil
		}
	}

	return "", &DictionaryNotFoundError{Path: path}
}

func (s *Syncer) exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

func (s *Syncer) cwd() string {
	if s.workDir != "" {
		return s.workDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// prepare validates the request and builds the canonical mapping. It returns
// the normalized root and the resolved single target, if any.
func (s *Syncer) prepare(ctx context.Context, req SyncRequest) (root, target string, canonical *Mapping, err error) {
	root, err = s.ResolveRoot(req.Root)
	if err != nil {
		return "", "", nil, err
	}

	if req.Target != "" {
		target, err = s.ResolveDictionaryPath(req.Target, filepath.Join(root, s.localesDir))
		if err != nil {
			return "", "", nil, err
		}
	}

	canonical, err = s.ExtractAll(ctx, root)
	if err != nil {
		return "", "", nil, err
	}

	return root, target, canonical, nil
}

// Sync extracts the canonical mapping under req.Root and reconciles either
// the single target dictionary or every non-reference dictionary in the
// locales directory.
//
// A missing root or target is fatal. A target dictionary that cannot be
// loaded is fatal; in batch mode such dictionaries are skipped and listed in
// Report.LoadErrors.
func (s *Syncer) Sync(ctx context.Context, req SyncRequest) (*Report, error) {
	root, target, canonical, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if target != "" {
		res, err := s.Reconcile(ctx, target, canonical, req.Flags)
		if err != nil {
			return nil, err
		}
		return &Report{Root: root, Canonical: canonical, Results: []*Result{res}}, nil
	}

	localesPath := filepath.Join(root, s.localesDir)
	if ok, _ := afero.DirExists(s.fs, localesPath); !ok {
		s.logger.Warn("no locales directory", slog.String("path", localesPath))
		return &Report{Root: root, Canonical: canonical}, nil
	}

	report, err := s.ReconcileAll(ctx, localesPath, canonical, req.Flags)
	if report != nil {
		report.Root = root
	}
	return report, err
}

// Check computes what Sync would change without writing anything.
func (s *Syncer) Check(ctx context.Context, req SyncRequest) (*CheckReport, error) {
	if s.store == nil {
		return nil, errors.New("no dictionary store configured")
	}

	root, target, canonical, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{Root: root, Canonical: canonical}

	var paths []string
	if target != "" {
		paths = []string{target}
	} else {
		localesPath := filepath.Join(root, s.localesDir)
		if ok, _ := afero.DirExists(s.fs, localesPath); ok {
			all, err := s.store.List(localesPath)
			if err != nil {
				return nil, err
			}
			for _, p := range all {
				if !IsReferenceDictionary(p, s.referenceNames) {
					paths = append(paths, p)
				}
			}
		}
	}

	for _, path := range paths {
		dict, err := s.store.Load(path)
		if err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				err = &LoadError{Path: path, Cause: err}
			}
			if target != "" {
				return nil, err
			}
			report.LoadErrors = append(report.LoadErrors, err)
			continue
		}
		report.Files = append(report.Files, FileDiff{Path: path, Diff: Diff(dict, canonical)})
	}

	return report, nil
}
