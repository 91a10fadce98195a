package analytics

import "sort"

// TermCount pairs a term (word, phrase, emoji or hashtag) with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// counter tallies terms and remembers the order in which each term was
// first seen. Ranking is stable over that order, so equal counts keep
// first-seen-wins ordering.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(term string) {
	if _, ok := c.counts[term]; !ok {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

func (c *counter) addAll(terms []string) {
	for _, term := range terms {
		c.add(term)
	}
}

// ranked returns terms with count >= minCount sorted by count descending.
// A limit <= 0 means no limit.
func (c *counter) ranked(minCount, limit int) []TermCount {
	out := make([]TermCount, 0, len(c.order))
	for _, term := range c.order {
		out = append(out, TermCount{Term: term, Count: c.counts[term]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return filterAndCap(out, minCount, limit)
}

// filterAndCap drops entries under minCount from an already ranked slice
// and truncates to limit.
func filterAndCap(ranked []TermCount, minCount, limit int) []TermCount {
	out := make([]TermCount, 0, len(ranked))
	for _, tc := range ranked {
		if tc.Count < minCount {
			continue
		}
		out = append(out, tc)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
