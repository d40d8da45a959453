package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/ZaguanLabs/i18nsync/cache"
	"github.com/ZaguanLabs/i18nsync/config"
	"github.com/ZaguanLabs/i18nsync/dictionary"
	"github.com/ZaguanLabs/i18nsync/metrics"
	"github.com/ZaguanLabs/i18nsync/processor"
	"github.com/ZaguanLabs/i18nsync/provider"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// app wires a Syncer and its collaborators from a resolved config.
type app struct {
	cfg       *config.Config
	fs        afero.Fs
	logger    *slog.Logger
	syncer    *i18nsync.Syncer
	processor *processor.HTMLProcessor
	collector *metrics.Collector
	cache     cache.ExportableCache
	cached    *i18nsync.CachedProvider
	closers   []func() error
}

func newLogger(stderr io.Writer, o *options) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case o.verbose:
		level = slog.LevelDebug
	case o.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers config files, then explicit flags, then positional
// arguments, and validates the result.
func loadConfig(o *options, flags *pflag.FlagSet, logger *slog.Logger, rootArg string) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(o.configPath)
	if err != nil {
		return nil, err
	}
	o.apply(cfg, flags)
	if rootArg != "" {
		cfg.Root = rootArg
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newApp(cfg *config.Config, o *options, stdout io.Writer, logger *slog.Logger) (*app, error) {
	if o.noColor {
		color.NoColor = true
	}

	a := &app{
		cfg:       cfg,
		fs:        afero.NewOsFs(),
		logger:    logger,
		processor: processor.NewHTMLProcessor(processor.WithAttribute(cfg.Attribute)),
		collector: metrics.NewCollector(),
	}

	p, err := a.buildProvider()
	if err != nil {
		a.close()
		return nil, err
	}

	out := stdout
	if o.quiet {
		out = io.Discard
	}

	a.syncer = i18nsync.NewSyncer(
		i18nsync.WithFs(a.fs),
		i18nsync.WithExtractor(a.processor),
		i18nsync.WithStore(dictionary.NewStore(a.fs)),
		i18nsync.WithProvider(p),
		i18nsync.WithRecorder(a.collector),
		i18nsync.WithSourceLang(cfg.SourceLang),
		i18nsync.WithLocalesDir(cfg.LocalesDir),
		i18nsync.WithInclude(cfg.Include),
		i18nsync.WithExclude(cfg.Exclude),
		i18nsync.WithReferenceNames(cfg.ReferenceNames),
		i18nsync.WithWorkers(cfg.Workers),
		i18nsync.WithOutput(out),
		i18nsync.WithLogger(logger),
	)

	return a, nil
}

// buildProvider assembles base provider → metrics → rate limit → retry → cache.
// The provider is only called when auto-translate is on, so a missing API
// key is not an error here.
func (a *app) buildProvider() (i18nsync.Provider, error) {
	var base i18nsync.Provider
	namespace := a.cfg.Provider.Name

	switch a.cfg.Provider.Name {
	case "google":
		base = provider.NewGoogleProvider(provider.GoogleConfig{
			ExtraLanguages: a.cfg.Provider.ExtraLanguages,
		})
	case "openai":
		if a.cfg.ReconcileFlags().AutoTranslate && a.cfg.APIKey() == "" {
			return nil, fmt.Errorf("the openai provider needs an API key in $%s", a.cfg.Provider.APIKeyEnv)
		}
		base = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:      a.cfg.APIKey(),
			Model:       a.cfg.Provider.Model,
			Temperature: a.cfg.Provider.Temperature,
			BaseURL:     a.cfg.Provider.BaseURL,
			Timeout:     a.cfg.Provider.Timeout,
		})
		namespace += ":" + a.cfg.Provider.Model
	case "mock":
		base = provider.NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown provider %q", a.cfg.Provider.Name)
	}

	var p i18nsync.Provider = a.collector.Instrument(base)
	p = i18nsync.NewRateLimitedProvider(p, a.cfg.RateLimitPolicy())
	retry := a.cfg.RetryPolicy()
	retry.Logger = a.logger
	p = i18nsync.NewRetryableProvider(p, retry)

	c, err := a.buildCache()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return p, nil
	}

	a.cache = c
	a.cached = i18nsync.NewCachedProvider(p, c, namespace)
	return a.cached, nil
}

func (a *app) buildCache() (cache.ExportableCache, error) {
	switch a.cfg.Cache.Type {
	case "none":
		return nil, nil
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL:       a.cfg.Cache.RedisURL,
			TTL:       a.cfg.Cache.TTL,
			KeyPrefix: a.cfg.Cache.KeyPrefix,
			Logger:    a.logger,
		})
		if err != nil {
			return nil, &i18nsync.CacheError{Message: "connecting to redis", Cause: err}
		}
		a.closers = append(a.closers, rc.Close)
		return rc, nil
	default:
		mc := cache.NewInMemoryCache(a.cfg.Cache.TTL)
		if a.cfg.Cache.File != "" {
			res, err := cache.NewImporter(mc, a.fs).ImportFromFile(a.cfg.Cache.File)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				a.logger.Debug("no cache file yet", slog.String("path", a.cfg.Cache.File))
			case err != nil:
				a.logger.Warn("ignoring unreadable cache file", slog.String("path", a.cfg.Cache.File), slog.String("error", err.Error()))
			default:
				a.logger.Debug("loaded cache file", slog.String("path", a.cfg.Cache.File), slog.Int("entries", res.Loaded), slog.Int("rejected", res.Rejected))
			}
		}
		return mc, nil
	}
}

// finish persists the cache and metrics of a run. Failures are logged, not
// returned: the dictionaries are already written.
func (a *app) finish() {
	if a.cached != nil {
		hits, misses := a.cached.Stats()
		a.collector.ObserveCache(hits, misses)
		a.logger.Debug("translation cache", slog.Int("hits", hits), slog.Int("misses", misses))
	}

	if mc, ok := a.cache.(*cache.InMemoryCache); ok && a.cfg.Cache.File != "" {
		if pruned := mc.Prune(); pruned > 0 {
			a.logger.Debug("pruned expired cache entries", slog.Int("entries", pruned))
		}
		n, err := cache.NewExporter(a.cache, a.fs).ExportToFile(a.cfg.Cache.File, map[string]string{
			"provider":    a.cfg.Provider.Name,
			"source_lang": a.cfg.SourceLang,
		})
		if err != nil {
			a.logger.Error("saving cache file failed", slog.String("path", a.cfg.Cache.File), slog.String("error", err.Error()))
		} else {
			a.logger.Debug("saved cache file", slog.String("path", a.cfg.Cache.File), slog.Int("entries", n))
		}
	}

	if a.cfg.Metrics.Textfile != "" {
		a.collector.MarkRun(time.Now())
		if err := a.collector.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			a.logger.Error("writing metrics failed", slog.String("path", a.cfg.Metrics.Textfile), slog.String("error", err.Error()))
		}
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c()
	}
}
