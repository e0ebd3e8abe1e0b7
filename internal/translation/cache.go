package translation

import "context"

// TranslationCache stores sentence translations in memory for a session
type TranslationCache struct {
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(sentence, translation string) {
	tc.translations[sentence] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(sentence string) (string, bool) {
	translation, ok := tc.translations[sentence]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	return len(tc.translations)
}

// CachedTranslator answers repeated sentences from a TranslationCache
type CachedTranslator struct {
	Translator
	cache *TranslationCache
}

// NewCachedTranslator wraps t with cache
func NewCachedTranslator(t Translator, cache *TranslationCache) *CachedTranslator {
	if cache == nil {
		cache = NewTranslationCache()
	}
	return &CachedTranslator{Translator: t, cache: cache}
}

// Translate returns the cached translation or asks the wrapped translator
func (c *CachedTranslator) Translate(ctx context.Context, sentence string) (string, error) {
	if translation, ok := c.cache.Get(sentence); ok {
		return translation, nil
	}

	translation, err := c.Translator.Translate(ctx, sentence)
	if err != nil {
		return "", err
	}
	c.cache.Add(sentence, translation)
	return translation, nil
}
