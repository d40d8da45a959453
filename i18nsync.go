// Package i18nsync keeps per-language JSON dictionaries in sync with the
// translation keys annotated in HTML documents.
//
// Markup authors tag elements with a data-i18n attribute. Each attribute holds
// a ";"-separated list of directives: a bare key binds the element's trimmed
// text, "[attr]key" binds the value of attr. The canonical key→text mapping
// built from every document is then reconciled against each dictionary in the
// locales directory: missing keys are added (optionally machine-translated),
// stale keys are removed and keys can be reordered to match the markup.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/ZaguanLabs/i18nsync"
//	    "github.com/ZaguanLabs/i18nsync/dictionary"
//	    "github.com/ZaguanLabs/i18nsync/processor"
//	    "github.com/ZaguanLabs/i18nsync/provider"
//	    "github.com/spf13/afero"
//	)
//
//	func main() {
//	    fs := afero.NewOsFs()
//	    s := i18nsync.NewSyncer(
//	        i18nsync.WithFs(fs),
//	        i18nsync.WithExtractor(processor.NewHTMLProcessor()),
//	        i18nsync.WithStore(dictionary.NewStore(fs)),
//	        i18nsync.WithProvider(provider.NewGoogleProvider(provider.GoogleConfig{})),
//	    )
//
//	    report, err := s.Sync(context.Background(), i18nsync.SyncRequest{
//	        Root:  "public",
//	        Flags: i18nsync.DefaultFlags(),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(len(report.Results), "dictionaries updated")
//	}
package i18nsync
