// Package testutil provides mocks for the analyzer, translator and
// recognizer collaborators plus file assertions shared by tests.
package testutil
