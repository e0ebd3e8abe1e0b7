// Package batch reads sentence batch files.
//
// Each non-blank line holds one Japanese sentence, optionally followed by
// "= translation" when the English is already known. Lines starting with
// '#' are comments.
package batch
