package models

import "strings"

const (
	MinWordLength = 3
	MaxWordLength = 20

	// lengthBonusThreshold is where the per-letter bonus kicks in.
	lengthBonusThreshold = 5
)

// Lexicon answers whether a word is a real word. The store of words is an
// injected dependency so tests and deployments can swap in a fixed set or
// a full dictionary.
type Lexicon interface {
	Contains(word string) bool
}

// AllowAllLexicon accepts every word. This matches the reference behavior,
// which only enforces shape and prefix.
type AllowAllLexicon struct{}

func (AllowAllLexicon) Contains(string) bool { return true }

// NewLexicon provides the default lexicon for the application root.
func NewLexicon() Lexicon {
	return AllowAllLexicon{}
}

// ValidWord reports whether word is playable for the given fragment: it
// must start with the fragment case-insensitively, contain only letters,
// sit within [MinWordLength, MaxWordLength] and pass the lexicon.
func ValidWord(word, fragment string, lexicon Lexicon) bool {
	if !strings.HasPrefix(strings.ToLower(word), strings.ToLower(fragment)) {
		return false
	}
	if len(word) < MinWordLength || len(word) > MaxWordLength {
		return false
	}
	for _, r := range word {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return lexicon == nil || lexicon.Contains(word)
}

// WordScore is the word's length plus two points for every letter past
// five. A 9-letter word scores 9 + 2*4 = 17.
func WordScore(word string) int {
	score := len(word)
	if bonus := len(word) - lengthBonusThreshold; bonus > 0 {
		score += 2 * bonus
	}
	return score
}
