// Package article turns a web page into candidate sentences.
//
// Pages are fetched over HTTP, furigana is stripped, the main text is
// extracted with go-readability and then split on Japanese sentence
// delimiters. Only sentences containing Kanji are kept.
package article
