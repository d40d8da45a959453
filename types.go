package i18nsync

// DefaultAttribute is the markup attribute that carries annotation directives.
const DefaultAttribute = "data-i18n"

// DefaultSourceLang is the reference language canonical texts are written in.
const DefaultSourceLang = "en"

// DefaultLocalesDir is the directory under the root that holds dictionaries.
const DefaultLocalesDir = "locales"

// DefaultInclude selects the markup documents scanned for annotations.
var DefaultInclude = []string{"**/*.html"}

// DefaultReferenceNames are dictionary names skipped in batch mode: the
// reference language itself and the language-list manifest.
var DefaultReferenceNames = []string{"en", "lang"}

// Flags controls which passes of a reconciliation are allowed to modify a
// dictionary. The zero value disables everything; use DefaultFlags.
type Flags struct {
	AutoAdd       bool // Insert canonical keys missing from the dictionary
	AutoTranslate bool // Machine-translate inserted texts instead of copying them
	AutoRemove    bool // Delete dictionary keys absent from the canonical mapping
	SortKeys      bool // Rewrite key order to match the canonical mapping
}

// DefaultFlags enables adding and removing keys; translation and sorting are off.
func DefaultFlags() Flags {
	return Flags{
		AutoAdd:    true,
		AutoRemove: true,
	}
}

// Document is a markup document to scan.
type Document struct {
	Path    string
	Content string
}

// Result is the outcome of reconciling one dictionary file.
type Result struct {
	Path       string   // Dictionary file path
	Language   string   // Language code derived from the file name
	Dictionary *Mapping // Dictionary as persisted

	Added           []string // Keys inserted during the addition pass
	Removed         []string // Stale keys deleted
	Stale           []string // Stale keys kept because AutoRemove was off
	SkippedEmpty    []string // Missing keys whose canonical text is empty
	SkippedDisabled []string // Missing keys left out because AutoAdd was off

	// TranslatedAs is the language code the provider accepted, which may be a
	// fallback of Language (e.g. "pt" for "pt-br").
	TranslatedAs string

	// Err is the non-fatal error that aborted the addition pass, if any.
	Err error
}

// Changed reports whether the reconciliation modified the key set.
func (r *Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Report is the outcome of a full Sync run.
type Report struct {
	Root       string
	Canonical  *Mapping
	Results    []*Result
	LoadErrors []error // Dictionaries that could not be loaded in batch mode
}

// Failed returns the results whose addition pass was aborted.
func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
