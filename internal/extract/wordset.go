package extract

// WordSet is a set of lemmas that remembers insertion order.
type WordSet struct {
	index map[string]int
	words []string
}

// NewWordSet creates an empty set.
func NewWordSet() *WordSet {
	return &WordSet{index: make(map[string]int)}
}

// Add inserts w and reports whether it was new.
func (s *WordSet) Add(w string) bool {
	if _, ok := s.index[w]; ok {
		return false
	}
	s.index[w] = len(s.words)
	s.words = append(s.words, w)
	return true
}

// Contains reports whether w is in the set.
func (s *WordSet) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// Len returns the number of distinct words.
func (s *WordSet) Len() int {
	return len(s.words)
}

// Words returns a copy of the words in first-seen order.
func (s *WordSet) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}
