package counts

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/JasonWyse/epic/nlp/format/rules"
	"github.com/JasonWyse/epic/nlp/grammar"
	"github.com/JasonWyse/epic/nlp/parser/chart"
)

var _ chart.Visitor = &Accumulator{}

// Count table kinds, doubling as store bucket names.
const (
	RULES   = "rules"
	LEXICON = "lexicon"
	SPANS   = "spans"
)

// LexicalKey identifies one refined tagging of one word.
type LexicalKey struct {
	Word string
	Tag  int
	Ref  int
}

// Accumulator gathers expected counts from marginal traversals: rule
// variant counts from binary and unary events, word tagging counts
// from width one spans, and label occupancy from wider spans. Identity
// unaries are not model parameters and are left out. An accumulator
// serves one goroutine; fan in concurrent ones with Merge.
type Accumulator struct {
	Rules   [][]float64
	Labels  [][]float64
	Lexical map[LexicalKey]float64

	g     *grammar.Grammar
	refs  *grammar.Refinements
	words []string
}

func NewAccumulator(g *grammar.Grammar, refs *grammar.Refinements) *Accumulator {
	ruleCounts := make([][]float64, g.NumRules())
	for id := range ruleCounts {
		ruleCounts[id] = make([]float64, refs.NumRuleRefinements(id))
	}
	labelCounts := make([][]float64, g.NumLabels())
	for label := range labelCounts {
		labelCounts[label] = make([]float64, refs.Counts[label])
	}
	return &Accumulator{
		Rules:   ruleCounts,
		Labels:  labelCounts,
		Lexical: make(map[LexicalKey]float64),
		g:       g,
		refs:    refs,
	}
}

// SetSentence names the words width one span events refer to. Call it
// before each traversal.
func (a *Accumulator) SetSentence(words []string) {
	a.words = words
}

func (a *Accumulator) VisitSpan(begin, end, label, ref int, count float64) {
	if end-begin == 1 {
		a.Lexical[LexicalKey{a.words[begin], label, ref}] += count
		return
	}
	a.Labels[label][ref] += count
}

func (a *Accumulator) VisitBinaryRule(begin, split, end, rule, ruleRef int, count float64) {
	a.Rules[rule][ruleRef] += count
}

func (a *Accumulator) VisitUnaryRule(begin, end, rule, ruleRef int, count float64) {
	if a.g.IsIdentity(rule) {
		return
	}
	a.Rules[rule][ruleRef] += count
}

// Merge folds the counts of another accumulator over the same model
// into this one.
func (a *Accumulator) Merge(other *Accumulator) {
	for id := range a.Rules {
		for k := range a.Rules[id] {
			a.Rules[id][k] += other.Rules[id][k]
		}
	}
	for label := range a.Labels {
		for ref := range a.Labels[label] {
			a.Labels[label][ref] += other.Labels[label][ref]
		}
	}
	for key, count := range other.Lexical {
		a.Lexical[key] += count
	}
}

// Each calls fn once per nonzero count. Spellings follow the rules
// format, so a dump reads like the grammar it was counted under.
func (a *Accumulator) Each(fn func(kind, spelling string, count float64)) {
	for id := range a.Rules {
		for k, count := range a.Rules[id] {
			if count != 0 {
				fn(RULES, rules.SpellRule(a.g, a.refs, id, k), count)
			}
		}
	}
	for key, count := range a.Lexical {
		if count != 0 {
			fn(LEXICON, fmt.Sprintf("%s %s %s",
				rules.SpellLabel(a.g, a.refs, key.Tag, key.Ref), rules.LEXICAL_SEP, key.Word), count)
		}
	}
	for label := range a.Labels {
		for ref, count := range a.Labels[label] {
			if count != 0 {
				fn(SPANS, rules.SpellLabel(a.g, a.refs, label, ref), count)
			}
		}
	}
}

// WriteTSV dumps the counts as kind, spelling, count records, largest
// counts first.
func (a *Accumulator) WriteTSV(writer io.Writer) error {
	var table []row
	a.Each(func(kind, spelling string, count float64) {
		table = append(table, row{kind, spelling, count})
	})
	return writeRows(writer, table)
}

type row struct {
	kind     string
	spelling string
	count    float64
}

func writeRows(writer io.Writer, table []row) error {
	sort.Slice(table, func(i, j int) bool {
		if table[i].count != table[j].count {
			return table[i].count > table[j].count
		}
		if table[i].kind != table[j].kind {
			return table[i].kind < table[j].kind
		}
		return table[i].spelling < table[j].spelling
	})
	for _, r := range table {
		_, err := fmt.Fprintf(writer, "%s\t%s\t%s\n",
			r.kind, r.spelling, strconv.FormatFloat(r.count, 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}
