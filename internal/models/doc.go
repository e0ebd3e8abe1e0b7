// Package models lists the OpenAI and Gemini models that can serve as
// sentence translators for the current API keys.
package models
