// Package morph provides the Japanese morphological analyzer used by the
// Kanji extractor. It runs kagome over the embedded IPA dictionary and maps
// the IPA part-of-speech labels onto the coarse tags in package extract.
package morph
