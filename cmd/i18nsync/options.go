package main

import (
	"github.com/ZaguanLabs/i18nsync/config"
	"github.com/spf13/pflag"
)

// options holds the command-line flags shared by all commands.
type options struct {
	configPath string
	root       string

	autoAdd       bool
	autoTranslate bool
	autoRemove    bool
	sortKeys      bool

	provider   string
	model      string
	sourceLang string
	attribute  string
	cacheType  string
	redisURL   string
	cacheFile  string
	metricsOut string
	workers    int

	quiet   bool
	verbose bool
	noColor bool
}

func (o *options) bind(fs *pflag.FlagSet) {
	defaults := config.DefaultConfig()
	flags := defaults.ReconcileFlags()

	fs.StringVar(&o.configPath, "config", "", "Config file (default: i18nsync.yaml in the current or a parent directory)")
	fs.StringVar(&o.root, "root", defaults.Root, "Project directory containing the markup files")

	fs.BoolVar(&o.autoAdd, "auto-add", flags.AutoAdd, "Insert keys missing from a dictionary")
	fs.BoolVar(&o.autoTranslate, "auto-translate", flags.AutoTranslate, "Machine-translate inserted texts")
	fs.BoolVar(&o.autoRemove, "auto-remove", flags.AutoRemove, "Delete keys no longer used in the markup")
	fs.BoolVar(&o.sortKeys, "sort-keys", flags.SortKeys, "Reorder dictionary keys to match the markup")

	fs.StringVar(&o.provider, "provider", defaults.Provider.Name, "Translation provider: google, openai or mock")
	fs.StringVar(&o.model, "model", defaults.Provider.Model, "Model for the openai provider")
	fs.StringVar(&o.sourceLang, "source-lang", defaults.SourceLang, "Language of the markup texts")
	fs.StringVar(&o.attribute, "attribute", defaults.Attribute, "Annotation attribute")
	fs.StringVar(&o.cacheType, "cache", defaults.Cache.Type, "Translation cache: none, memory or redis")
	fs.StringVar(&o.redisURL, "redis-url", "", "Redis URL for --cache=redis")
	fs.StringVar(&o.cacheFile, "cache-file", "", "Persist the memory cache to this file between runs")
	fs.StringVar(&o.metricsOut, "metrics-textfile", "", "Write Prometheus metrics to this file after each run")
	fs.IntVar(&o.workers, "workers", defaults.Workers, "Markup files parsed concurrently")

	fs.BoolVarP(&o.quiet, "quiet", "q", false, "Only print errors")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print debug diagnostics")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

// apply overrides cfg with the flags the user set explicitly.
func (o *options) apply(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("root") {
		cfg.Root = o.root
	}
	if fs.Changed("auto-add") {
		cfg.Flags.AutoAdd = &o.autoAdd
	}
	if fs.Changed("auto-translate") {
		cfg.Flags.AutoTranslate = &o.autoTranslate
	}
	if fs.Changed("auto-remove") {
		cfg.Flags.AutoRemove = &o.autoRemove
	}
	if fs.Changed("sort-keys") {
		cfg.Flags.SortKeys = &o.sortKeys
	}
	if fs.Changed("provider") {
		cfg.Provider.Name = o.provider
	}
	if fs.Changed("model") {
		cfg.Provider.Model = o.model
	}
	if fs.Changed("source-lang") {
		cfg.SourceLang = o.sourceLang
	}
	if fs.Changed("attribute") {
		cfg.Attribute = o.attribute
	}
	if fs.Changed("cache") {
		cfg.Cache.Type = o.cacheType
	}
	if fs.Changed("redis-url") {
		cfg.Cache.RedisURL = o.redisURL
	}
	if fs.Changed("cache-file") {
		cfg.Cache.File = o.cacheFile
	}
	if fs.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = o.metricsOut
	}
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
}
