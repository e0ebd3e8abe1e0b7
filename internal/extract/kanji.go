package extract

// CJK Unified Ideographs as used for the Kanji test.
const (
	kanjiFirst = '\u4e00'
	kanjiLast  = '\u9faf'
)

// IsKanji reports whether r is in U+4E00..U+9FAF.
func IsKanji(r rune) bool {
	return r >= kanjiFirst && r <= kanjiLast
}

// ContainsKanji reports whether s has at least one Kanji anywhere in it.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}
