package grammar

import "math"

// Weights is a refined PCFG model: one log weight row per rule,
// aligned with its variants, plus a table lexicon.
type Weights struct {
	G       *Grammar
	Refs    *Refinements
	Rules   [][]float64
	Lexicon *SimpleLexicon
}

// NewWeights allocates weight rows aligned with the refinement layer.
// Identity variants weigh log(1); every other variant starts
// impossible until a score is set.
func NewWeights(g *Grammar, refs *Refinements, lex *SimpleLexicon) *Weights {
	rules := make([][]float64, g.NumRules())
	for id := range rules {
		row := make([]float64, refs.NumRuleRefinements(id))
		if !g.IsIdentity(id) {
			for i := range row {
				row[i] = math.Inf(-1)
			}
		}
		rules[id] = row
	}
	return &Weights{g, refs, rules, lex}
}

func (w *Weights) SetRuleScore(rule, ruleRef int, score float64) {
	w.Rules[rule][ruleRef] = score
}

// Anchor binds the model to one sentence with the identity core.
func (w *Weights) Anchor(words []string) *Anchoring {
	return w.AnchorWithCore(words, IdentityCore{})
}

func (w *Weights) AnchorWithCore(words []string, core CoreScorer) *Anchoring {
	return &Anchoring{
		Grammar: w.G,
		Lexicon: w.Lexicon,
		Words:   words,
		Core:    core,
		Refined: &tableScorer{w, words},
	}
}

// tableScorer adapts Weights to RefinedScorer. Refinement validity is
// span ignorant; only lexical scores vary with the anchor.
type tableScorer struct {
	w     *Weights
	words []string
}

var _ RefinedScorer = &tableScorer{}

func (t *tableScorer) ScoreSpan(begin, end, label, ref int) float64 {
	if end-begin == 1 {
		return t.w.Lexicon.Score(t.words[begin], label, ref)
	}
	return 0
}

func (t *tableScorer) ScoreBinaryRule(begin, split, end, rule, ruleRef int) float64 {
	return t.w.Rules[rule][ruleRef]
}

func (t *tableScorer) ScoreUnaryRule(begin, end, rule, ruleRef int) float64 {
	return t.w.Rules[rule][ruleRef]
}

func (t *tableScorer) NumValidRefinements(label int) int {
	return t.w.Refs.Counts[label]
}

func (t *tableScorer) ValidLabelRefinements(begin, end, label int) []int {
	return t.w.Refs.AllLabelRefinements(label)
}

func (t *tableScorer) ValidRuleRefinementsGivenParent(begin, end, rule, parentRef int) []int {
	return t.w.Refs.ByParent(rule, parentRef)
}

func (t *tableScorer) ValidUnaryRefinementsGivenChild(begin, end, rule, childRef int) []int {
	return t.w.Refs.ByChild(rule, childRef)
}

func (t *tableScorer) ParentRefinement(rule, ruleRef int) int {
	return t.w.Refs.Variant(rule, ruleRef).Parent
}

func (t *tableScorer) LeftChildRefinement(rule, ruleRef int) int {
	return t.w.Refs.Variant(rule, ruleRef).Left
}

func (t *tableScorer) RightChildRefinement(rule, ruleRef int) int {
	return t.w.Refs.Variant(rule, ruleRef).Right
}

func (t *tableScorer) ChildRefinement(rule, ruleRef int) int {
	return t.w.Refs.Variant(rule, ruleRef).Left
}
