package provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/bregydoc/gtranslate"
)

// googleLanguages are the target codes accepted by the Google Translate web
// endpoint. Codes are matched exactly: "zh-CN" is accepted, "pt-BR" is not.
var googleLanguages = []string{
	"af", "ak", "am", "ar", "as", "ay", "az", "be", "bg", "bho", "bm", "bn",
	"bs", "ca", "ceb", "ckb", "co", "cs", "cy", "da", "de", "doi", "dv", "ee",
	"el", "en", "eo", "es", "et", "eu", "fa", "fi", "fr", "fy", "ga", "gd",
	"gl", "gn", "gom", "gu", "ha", "haw", "hi", "hmn", "hr", "ht", "hu", "hy",
	"id", "ig", "ilo", "is", "it", "iw", "ja", "jw", "ka", "kk", "km", "kn",
	"ko", "kri", "ku", "ky", "la", "lb", "lg", "ln", "lo", "lt", "lus", "lv",
	"mai", "mg", "mi", "mk", "ml", "mn", "mni-Mtei", "mr", "ms", "mt", "my",
	"ne", "nl", "no", "nso", "ny", "om", "or", "pa", "pl", "ps", "pt", "qu",
	"ro", "ru", "rw", "sa", "sd", "si", "sk", "sl", "sm", "sn", "so", "sq",
	"sr", "st", "su", "sv", "sw", "ta", "te", "tg", "th", "ti", "tk", "tl",
	"tr", "ts", "tt", "ug", "uk", "ur", "uz", "vi", "xh", "yi", "yo", "zh-CN",
	"zh-TW", "zu",
}

// GoogleProvider implements Provider using the free Google Translate web
// endpoint. It needs no credentials.
type GoogleProvider struct {
	supported map[string]bool
	translate func(text string, params gtranslate.TranslationParams) (string, error)
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	// ExtraLanguages are accepted in addition to the built-in code table.
	ExtraLanguages []string
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	supported := make(map[string]bool, len(googleLanguages)+len(cfg.ExtraLanguages))
	for _, code := range googleLanguages {
		supported[code] = true
	}
	for _, code := range cfg.ExtraLanguages {
		supported[code] = true
	}

	return &GoogleProvider{
		supported: supported,
		translate: gtranslate.TranslateWithParams,
	}
}

// Supports reports whether code is an accepted target code.
func (p *GoogleProvider) Supports(code string) bool {
	return p.supported[code]
}

// Translate translates a single text. Only the code table decides whether a
// language is unsupported; request failures are always a ProviderError.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if !p.supported[req.TargetLang] {
		return "", &i18nsync.UnsupportedLanguageError{Lang: req.TargetLang}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Text == "" {
		return "", nil
	}

	source := req.SourceLang
	if source == "" {
		source = "auto"
	}

	translated, err := p.translate(req.Text, gtranslate.TranslationParams{
		From: source,
		To:   req.TargetLang,
	})
	if err != nil {
		return "", &i18nsync.ProviderError{
			Message:   "Google Translate request failed",
			Cause:     err,
			Retryable: isBlocked(err) || isRetryableError(err),
		}
	}

	return translated, nil
}

// isBlocked reports whether the endpoint answered with something other than
// JSON, which is how throttling shows up: an HTML block page.
func isBlocked(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr)
}

// Verify GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)
