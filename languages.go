package i18nsync

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageFromPath derives a dictionary's language code from its file name
// (e.g. "public/locales/pt-br.json" → "pt-br").
func LanguageFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CandidateLanguages returns the language codes to try, in order, when asking
// a translation service for code: the code itself, the code with its region
// subtag upper-cased, then the bare primary subtag. Duplicates are dropped.
//
//	CandidateLanguages("pt-br") // ["pt-br", "pt-BR", "pt"]
//	CandidateLanguages("de")    // ["de"]
func CandidateLanguages(code string) []string {
	candidates := []string{code}

	sep := strings.IndexAny(code, "-_")
	if sep <= 0 || sep == len(code)-1 {
		return candidates
	}

	primary := code[:sep]
	upper := primary + code[sep:sep+1] + strings.ToUpper(code[sep+1:])

	for _, c := range []string{upper, primary} {
		if c != candidates[len(candidates)-1] && c != code {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// IsReferenceDictionary reports whether a dictionary file is excluded from
// batch reconciliation: its name (without extension) equals one of names, or
// ends with one of them after a "-", "_" or "." separator.
func IsReferenceDictionary(path string, names []string) bool {
	stem := LanguageFromPath(path)
	for _, name := range names {
		if name == "" {
			continue
		}
		if stem == name {
			return true
		}
		for _, sep := range []string{"-", "_", "."} {
			if strings.HasSuffix(stem, sep+name) {
				return true
			}
		}
	}
	return false
}

// NormalizeLocale converts a locale code to BCP 47 separators (e.g. "es_ES" → "es-ES").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}

// ParseLanguage parses a language code as a BCP 47 tag, accepting "_" separators.
func ParseLanguage(langCode string) (language.Tag, error) {
	return language.Parse(NormalizeLocale(langCode))
}

// GetLanguageName returns the English name of a language code for prompts and
// reports. Falls back to the code itself if it cannot be parsed.
func GetLanguageName(langCode string) string {
	tag, err := ParseLanguage(langCode)
	if err != nil {
		return langCode
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return langCode
	}
	return name
}

// BaseLanguage returns the lower-cased primary subtag (e.g. "pt" from "pt-BR").
func BaseLanguage(langCode string) string {
	if sep := strings.IndexAny(langCode, "-_"); sep > 0 {
		langCode = langCode[:sep]
	}
	return strings.ToLower(langCode)
}
