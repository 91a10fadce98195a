package stoplist

import "strings"

// defaultTerms is the closed list of English function words (conjunctions,
// articles, pronouns, auxiliaries) excluded from single-word counting.
var defaultTerms = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
	"is", "was", "are", "be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "must", "can",
	"it", "this", "that", "these", "those",
	"i", "you", "he", "she", "we", "they",
	"my", "your", "his", "her", "our", "their",
}

// Default returns a fresh copy of the built-in stopword terms.
func Default() []string {
	out := make([]string, len(defaultTerms))
	copy(out, defaultTerms)
	return out
}

// Manager holds a stopword set. Lookups are case-sensitive on the stored
// lowercase form; callers feed it lowercased tokens.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager seeded with the given terms.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = struct{}{}
	}
	return &Manager{stops: stops}
}

// NewDefault creates a manager seeded with Default().
func NewDefault() *Manager {
	return NewManager(defaultTerms)
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[strings.ToLower(token)] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	return result
}
