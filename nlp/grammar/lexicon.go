package grammar

import (
	"math"
	"sort"
)

// UNKNOWN_WORD is the reserved spelling whose lexical entries back off
// words never seen in the model.
const UNKNOWN_WORD = "<unk>"

// Lexicon proposes the preterminal labels a word may take.
type Lexicon interface {
	TagsForWord(word string) []int
}

// TagEntry holds the refined log weights of one (word, tag) pair.
type TagEntry struct {
	Tag    int
	Scores []float64
}

// SimpleLexicon is a table lexicon. Words without entries fall back to
// the entries of UNKNOWN_WORD, when the model has any.
type SimpleLexicon struct {
	Entries map[string][]TagEntry

	counts []int
}

func NewSimpleLexicon(refinementCounts []int) *SimpleLexicon {
	return &SimpleLexicon{
		Entries: make(map[string][]TagEntry),
		counts:  refinementCounts,
	}
}

// SetScore records the log weight of tagging word with the given
// refined tag. Refinements never set stay impossible.
func (l *SimpleLexicon) SetScore(word string, tag, ref int, score float64) {
	entries := l.Entries[word]
	for i := range entries {
		if entries[i].Tag == tag {
			entries[i].Scores[ref] = score
			return
		}
	}
	scores := make([]float64, l.counts[tag])
	for i := range scores {
		scores[i] = math.Inf(-1)
	}
	scores[ref] = score
	l.Entries[word] = append(entries, TagEntry{tag, scores})
}

func (l *SimpleLexicon) entriesFor(word string) []TagEntry {
	if entries, exists := l.Entries[word]; exists {
		return entries
	}
	return l.Entries[UNKNOWN_WORD]
}

func (l *SimpleLexicon) TagsForWord(word string) []int {
	entries := l.entriesFor(word)
	tags := make([]int, len(entries))
	for i, entry := range entries {
		tags[i] = entry.Tag
	}
	return tags
}

// Tags returns the sorted set of tags with at least one lexical entry.
func (l *SimpleLexicon) Tags() []int {
	seen := make(map[int]bool)
	for _, entries := range l.Entries {
		for _, entry := range entries {
			seen[entry.Tag] = true
		}
	}
	tags := make([]int, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return tags
}

// Score returns the log weight of (word, tag, ref), -Inf when absent.
func (l *SimpleLexicon) Score(word string, tag, ref int) float64 {
	for _, entry := range l.entriesFor(word) {
		if entry.Tag == tag {
			if ref >= 0 && ref < len(entry.Scores) {
				return entry.Scores[ref]
			}
			return math.Inf(-1)
		}
	}
	return math.Inf(-1)
}
