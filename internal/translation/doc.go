// Package translation provides Japanese to English sentence translation
// using the OpenAI or Gemini APIs. Backends sit behind a circuit breaker and
// a per-session translation cache.
package translation
