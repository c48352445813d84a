package events

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/JasonWyse/epic/eval"
)

const (
	MISSING  = "missing"
	EXTRA    = "extra"
	DIVERGED = "diverged"
)

// eventKey identifies an event within a sentence, count excluded.
type eventKey struct {
	Kind              string
	Begin, Split, End int
	Name              string
	Ref               int
}

func keyOf(e Event) eventKey {
	return eventKey{e.Kind, e.Begin, e.Split, e.End, e.Name, e.Ref}
}

type eventError struct {
	class string
	event Event
	got   float64
}

func (e eventError) Class() string {
	return e.class
}

func (e eventError) String() string {
	if e.class == DIVERGED {
		return fmt.Sprintf("%s: %s got %s", e.class, e.event.String(),
			strconv.FormatFloat(e.got, 'g', -1, 64))
	}
	return fmt.Sprintf("%s: %s", e.class, e.event.String())
}

// Compare measures the agreement of a test event stream against a
// gold stream. Events match on everything but count, and matched
// counts must agree within an absolute tolerance. The total holds one
// result per sentence appearing in either stream; gold events absent
// from test tally as missing, test events absent from gold as extra,
// and matched events outside tolerance as diverged.
func Compare(test, gold []Event, tolerance float64) *eval.Total {
	testBySent := groupBySentence(test)
	goldBySent := groupBySentence(gold)

	seen := make(map[int]bool, len(goldBySent))
	sentences := make([]int, 0, len(goldBySent))
	for sent := range goldBySent {
		seen[sent] = true
		sentences = append(sentences, sent)
	}
	for sent := range testBySent {
		if !seen[sent] {
			sentences = append(sentences, sent)
		}
	}
	sort.Ints(sentences)

	total := &eval.Total{Results: make([]*eval.Result, 0, len(sentences))}
	for _, sent := range sentences {
		result := &eval.Result{Other: sent}
		testIndex := indexEvents(testBySent[sent])
		goldIndex := indexEvents(goldBySent[sent])
		for _, goldEvent := range goldBySent[sent] {
			count, exists := testIndex[keyOf(goldEvent)]
			switch {
			case !exists:
				result.FN++
				result.Errors = append(result.Errors, eventError{MISSING, goldEvent, 0})
			case math.Abs(count-goldEvent.Count) <= tolerance:
				result.TP++
			default:
				result.FP++
				result.FN++
				result.Errors = append(result.Errors, eventError{DIVERGED, goldEvent, count})
			}
		}
		for _, testEvent := range testBySent[sent] {
			if _, exists := goldIndex[keyOf(testEvent)]; !exists {
				result.FP++
				result.Errors = append(result.Errors, eventError{EXTRA, testEvent, 0})
			}
		}
		total.Add(result)
	}
	return total
}

func groupBySentence(events []Event) map[int][]Event {
	grouped := make(map[int][]Event)
	for _, e := range events {
		grouped[e.Sentence] = append(grouped[e.Sentence], e)
	}
	return grouped
}

func indexEvents(events []Event) map[eventKey]float64 {
	index := make(map[eventKey]float64, len(events))
	for _, e := range events {
		index[keyOf(e)] = e.Count
	}
	return index
}
