package i18nsync

import "context"

// CachedProvider memoizes translations in a TranslationCache. Failed
// translations are never cached.
type CachedProvider struct {
	provider  Provider
	cache     TranslationCache
	namespace string
	hits      int
	misses    int
}

// NewCachedProvider wraps provider with cache. A non-empty namespace (usually
// the provider or model name) is folded into every cache key.
func NewCachedProvider(provider Provider, cache TranslationCache, namespace string) *CachedProvider {
	return &CachedProvider{
		provider:  provider,
		cache:     cache,
		namespace: namespace,
	}
}

// Translate implements Provider, consulting the cache first.
func (p *CachedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	key := p.cacheKey(req)

	if cached, ok := p.cache.Get(key); ok {
		p.hits++
		return cached, nil
	}
	p.misses++

	translated, err := p.provider.Translate(ctx, req)
	if err != nil {
		return "", err
	}

	_ = p.cache.Set(key, translated) // Ignore cache set errors
	return translated, nil
}

// Stats returns the number of cache hits and misses so far.
func (p *CachedProvider) Stats() (hits, misses int) {
	return p.hits, p.misses
}

func (p *CachedProvider) cacheKey(req TranslateRequest) string {
	hash := HashText(req.Text)
	if p.namespace == "" {
		return CacheKey(hash, req.SourceLang, req.TargetLang)
	}
	return CacheKeyExtended(hash, req.SourceLang, req.TargetLang, p.namespace)
}
