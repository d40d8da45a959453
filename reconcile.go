package i18nsync

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
)

var (
	addColor      = color.New(color.FgGreen)
	removeColor   = color.New(color.FgRed)
	staleColor    = color.New(color.FgYellow)
	skipColor     = color.New(color.FgHiBlack)
	fallbackColor = color.New(color.FgCyan)
)

// progress writes one human-readable line to the progress writer.
func (s *Syncer) progress(c *color.Color, format string, args ...any) {
	_, _ = c.Fprintf(s.out, format+"\n", args...)
}

// Reconcile brings the dictionary at path in line with canonical and saves it.
//
// The addition pass walks canonical in order. Keys with empty canonical text
// are skipped; with AutoAdd off nothing is inserted; with AutoTranslate on
// each text goes through the provider, retrying the dictionary's fallback
// language codes while the provider reports the code as unsupported. A
// translation failure aborts the rest of the addition pass and is reported
// in Result.Err; keys inserted before it are kept, the removal pass still
// runs and the file is still saved.
//
// A dictionary that cannot be loaded is returned as a *LoadError and the
// file is left untouched.
func (s *Syncer) Reconcile(ctx context.Context, path string, canonical *Mapping, flags Flags) (*Result, error) {
	if s.store == nil {
		return nil, errors.New("no dictionary store configured")
	}

	dict, err := s.store.Load(path)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Cause: err}
	}

	res := &Result{
		Path:     path,
		Language: LanguageFromPath(path),
	}
	name := filepath.Base(path)

	if err := s.addMissing(ctx, res, name, dict, canonical, flags); err != nil {
		res.Err = err
		s.logger.Error("addition pass aborted",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}

	for _, key := range dict.Keys() {
		if canonical.Has(key) {
			continue
		}
		if flags.AutoRemove {
			dict.Delete(key)
			res.Removed = append(res.Removed, key)
			s.progress(removeColor, "[REMOVE] %s: %s", name, key)
			continue
		}
		res.Stale = append(res.Stale, key)
		s.progress(staleColor, "[STALE] %s: %s (kept)", name, key)
	}

	if flags.SortKeys {
		dict.Reorder(canonical)
	}

	if err := s.store.Save(path, dict); err != nil {
		return nil, err
	}

	res.Dictionary = dict
	if s.recorder != nil {
		s.recorder.ObserveResult(res)
	}

	return res, nil
}

func (s *Syncer) addMissing(ctx context.Context, res *Result, name string, dict, canonical *Mapping, flags Flags) error {
	candidates := CandidateLanguages(res.Language)

	for _, key := range canonical.keys {
		if dict.Has(key) {
			continue
		}

		text := canonical.values[key]
		if text == "" {
			res.SkippedEmpty = append(res.SkippedEmpty, key)
			s.progress(skipColor, "[SKIP] %s: %s (empty text)", name, key)
			continue
		}

		if !flags.AutoAdd {
			res.SkippedDisabled = append(res.SkippedDisabled, key)
			s.progress(skipColor, "[SKIP] %s: %s (auto-add disabled)", name, key)
			continue
		}

		value := text
		if flags.AutoTranslate {
			translated, used, err := s.translate(ctx, name, key, text, candidates)
			if err != nil {
				return err
			}
			value = translated
			res.TranslatedAs = candidates[used]
			// Later keys start at the code the provider accepted.
			candidates = candidates[used:]
		}

		dict.Set(key, value)
		res.Added = append(res.Added, key)
		s.progress(addColor, "[ADD] %s: %s = %q", name, key, value)
	}

	return nil
}

// translate asks the provider for text in each candidate code until one is
// accepted, returning the translation and the index of the accepted code.
func (s *Syncer) translate(ctx context.Context, name, key, text string, candidates []string) (string, int, error) {
	if s.provider == nil {
		return "", 0, &TranslationError{
			Message: "no translation provider configured",
			Key:     key,
			Lang:    candidates[0],
		}
	}

	var lastErr error
	for i, code := range candidates {
		translated, err := s.provider.Translate(ctx, TranslateRequest{
			Text:       text,
			SourceLang: s.sourceLang,
			TargetLang: code,
			Key:        key,
		})
		if err == nil {
			return translated, i, nil
		}
		if !IsUnsupportedLanguage(err) {
			return "", i, &TranslationError{
				Message: "translation failed",
				Key:     key,
				Lang:    code,
				Cause:   err,
			}
		}

		lastErr = err
		if i+1 < len(candidates) {
			s.progress(fallbackColor, "[FALLBACK] %s: '%s' not supported, trying '%s'", name, code, candidates[i+1])
		}
	}

	return "", len(candidates) - 1, &TranslationError{
		Message: "no supported language code",
		Key:     key,
		Lang:    candidates[0],
		Cause:   lastErr,
	}
}

// ReconcileAll reconciles every dictionary in dir except reference
// dictionaries, in lexicographic order. Dictionaries that fail to load are
// logged, collected in Report.LoadErrors and skipped.
func (s *Syncer) ReconcileAll(ctx context.Context, dir string, canonical *Mapping, flags Flags) (*Report, error) {
	if s.store == nil {
		return nil, errors.New("no dictionary store configured")
	}

	report := &Report{Canonical: canonical}

	paths, err := s.store.List(dir)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if IsReferenceDictionary(path, s.referenceNames) {
			s.logger.Debug("skipping reference dictionary", slog.String("file", path))
			continue
		}

		res, err := s.Reconcile(ctx, path, canonical, flags)
		if err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				return report, err
			}
			s.logger.Error("skipping dictionary",
				slog.String("file", path),
				slog.String("error", err.Error()))
			if s.recorder != nil {
				s.recorder.ObserveLoadError(path)
			}
			report.LoadErrors = append(report.LoadErrors, err)
			continue
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// FileDiff pairs a dictionary path with its difference from the canonical
// mapping.
type FileDiff struct {
	Path string
	Diff *DiffResult
}

// CheckReport is the outcome of a read-only Check run.
type CheckReport struct {
	Root       string
	Canonical  *Mapping
	Files      []FileDiff
	LoadErrors []error
}

// Drifted returns the files that reconciling with flags would modify.
func (r *CheckReport) Drifted(flags Flags) []FileDiff {
	var drifted []FileDiff
	for _, f := range r.Files {
		if f.Diff.HasChanges(flags) {
			drifted = append(drifted, f)
		}
	}
	return drifted
}
