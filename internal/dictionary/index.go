package dictionary

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrNoFragment means no fragment reaches the requested match count for the
// loaded word list. It is a tuning problem, not a bad submission.
var ErrNoFragment = errors.New("no fragment meets the minimum word count")

const (
	minFragmentLen = 2
	maxFragmentLen = 3
)

// Index is an immutable view of one loaded word list plus its fragment
// match counts. A reload builds a new Index instead of mutating this one.
type Index struct {
	words     map[string]struct{}
	fragments map[string]int
	intN      func(n int) int
}

type Stats struct {
	Words     int `json:"words"`
	Fragments int `json:"fragments"`
}

// NewIndex lowercases and trims every word, skips blanks and builds the
// fragment table from every contiguous 2 and 3 letter substring.
func NewIndex(words []string) *Index {
	idx := &Index{
		words:     make(map[string]struct{}, len(words)),
		fragments: make(map[string]int),
		intN:      rand.IntN,
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := idx.words[w]; dup {
			continue
		}
		idx.words[w] = struct{}{}
		idx.countFragments(w)
	}
	return idx
}

func (idx *Index) countFragments(w string) {
	r := []rune(w)
	seen := make(map[string]struct{})
	for size := minFragmentLen; size <= maxFragmentLen; size++ {
		for i := 0; i+size <= len(r); i++ {
			f := string(r[i : i+size])
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			idx.fragments[f]++
		}
	}
}

// IsValid reports whether word is in the list, ignoring case.
func (idx *Index) IsValid(word string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.words[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// MatchCount returns how many words contain fragment.
func (idx *Index) MatchCount(fragment string) int {
	if idx == nil {
		return 0
	}
	return idx.fragments[strings.ToLower(fragment)]
}

// RandomFragment picks uniformly among fragments contained in at least
// minWords words. It returns ErrNoFragment when none qualify.
func (idx *Index) RandomFragment(minWords int) (string, error) {
	if idx == nil {
		return "", fmt.Errorf("threshold %d: %w", minWords, ErrNoFragment)
	}
	var eligible []string
	for f, n := range idx.fragments {
		if n >= minWords {
			eligible = append(eligible, f)
		}
	}
	if len(eligible) == 0 {
		return "", fmt.Errorf("threshold %d: %w", minWords, ErrNoFragment)
	}
	return eligible[idx.intN(len(eligible))], nil
}

func (idx *Index) Stats() Stats {
	if idx == nil {
		return Stats{}
	}
	return Stats{Words: len(idx.words), Fragments: len(idx.fragments)}
}
