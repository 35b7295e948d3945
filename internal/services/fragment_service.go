package services

import (
	"fmt"
	"fragments/internal/models"
	"fragments/internal/providers"
	"math/rand"
)

// fragments is the curated list of short letter sequences a day's words
// must start with. Common 2-3 letter openings that begin many words.
var fragments = []string{
	"an", "ar", "at", "be", "co", "de", "ex", "in", "on", "or", "re", "st", "th", "to", "un",
	"ab", "ad", "al", "as", "ba", "ca", "ch", "cl", "cr", "di", "dr", "el", "en", "er", "es",
	"fl", "fr", "gr", "ha", "he", "ho", "im", "is", "it", "la", "le", "li", "ma", "me", "mi",
	"mo", "ne", "no", "of", "pa", "pl", "pr", "qu", "ra", "ro", "sc", "sh", "sl", "sp", "sw",
	"ta", "te", "tr", "up", "wa", "we", "wi", "wo", "yo",
	"ant", "app", "art", "ask", "bad", "bag", "bar", "bat", "bed", "big", "bit", "box", "boy",
	"bus", "but", "buy", "can", "car", "cat", "cup", "cut", "day", "did", "dog", "ear", "eat",
	"end", "eye", "far", "few", "for", "fun", "get", "got", "had", "has", "her", "him", "his",
	"hot", "how", "job", "key", "kid", "let", "man", "may", "new", "not", "now", "old", "one",
	"our", "out", "own", "put", "red", "run", "say", "see", "she", "sit", "six", "sun", "ten",
	"the", "top", "try", "two", "use", "way", "who", "why", "win", "yes", "you",
}

type FragmentServiceInterface interface {
	// DailyFragment returns the fragment for the date, drawing and
	// persisting one on first request.
	DailyFragment(date string) (string, error)
	// FragmentForDate is a read-only lookup; it returns "" when no
	// fragment was ever drawn for the date.
	FragmentForDate(date string) (string, error)
}

type FragmentService struct {
	store  providers.StoreProviderInterface
	window DateWindowInterface
	logger providers.Logger
}

func NewFragmentService(store providers.StoreProviderInterface, window DateWindowInterface, logger providers.Logger) FragmentServiceInterface {
	return &FragmentService{store: store, window: window, logger: logger}
}

func (fs *FragmentService) DailyFragment(date string) (string, error) {
	key := models.FragmentKey(date)

	fragment, found, err := fs.store.Get(key)
	if err != nil {
		return "", fmt.Errorf("fragment read failed: %w", err)
	}
	if found {
		return fragment, nil
	}

	pick := fragments[rand.Intn(len(fragments))]
	created, err := fs.store.SetNX(key, pick, fs.window.Retention())
	if err != nil {
		return "", fmt.Errorf("fragment write failed: %w", err)
	}
	if created {
		fs.logger.Infof(providers.TypeApp, "New daily fragment set: %s (date %s)", pick, date)
		return pick, nil
	}

	// lost the first-writer race; the stored fragment is authoritative
	fragment, found, err = fs.store.Get(key)
	if err != nil || !found {
		return "", fmt.Errorf("fragment re-read failed: %w", err)
	}
	return fragment, nil
}

func (fs *FragmentService) FragmentForDate(date string) (string, error) {
	fragment, found, err := fs.store.Get(models.FragmentKey(date))
	if err != nil {
		return "", fmt.Errorf("fragment read failed: %w", err)
	}
	if !found {
		return "", nil
	}
	return fragment, nil
}
