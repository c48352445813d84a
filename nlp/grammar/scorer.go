package grammar

// CoreScorer scores spans and anchored rules while ignoring the
// refinement layer. It carries signals shared by all refinements of a
// label, a span classifier or a surface feature model. Scores are log
// domain and added to every refined score of the same span or rule.
type CoreScorer interface {
	ScoreSpan(begin, end, label int) float64
	ScoreBinaryRule(begin, split, end, rule int) float64
	ScoreUnaryRule(begin, end, rule int) float64
}

// IdentityCore contributes log(1) everywhere.
type IdentityCore struct{}

func (IdentityCore) ScoreSpan(begin, end, label int) float64 {
	return 0
}

func (IdentityCore) ScoreBinaryRule(begin, split, end, rule int) float64 {
	return 0
}

func (IdentityCore) ScoreUnaryRule(begin, end, rule int) float64 {
	return 0
}

// RefinedScorer scores refined labels and rules for one anchored
// sentence and exposes the refinement topology the chart builders
// iterate over. Lexical scores are delivered through ScoreSpan on
// width-one spans. Implementations return math.Inf(-1) for impossible
// combinations and must never return NaN.
type RefinedScorer interface {
	ScoreSpan(begin, end, label, ref int) float64
	ScoreBinaryRule(begin, split, end, rule, ruleRef int) float64
	ScoreUnaryRule(begin, end, rule, ruleRef int) float64

	NumValidRefinements(label int) int
	ValidLabelRefinements(begin, end, label int) []int
	ValidRuleRefinementsGivenParent(begin, end, rule, parentRef int) []int
	ValidUnaryRefinementsGivenChild(begin, end, rule, childRef int) []int

	ParentRefinement(rule, ruleRef int) int
	LeftChildRefinement(rule, ruleRef int) int
	RightChildRefinement(rule, ruleRef int) int
	ChildRefinement(rule, ruleRef int) int
}

// Anchoring binds a grammar and its scorers to one sentence. It is
// immutable once built and safe to share across goroutines.
type Anchoring struct {
	Grammar *Grammar
	Lexicon Lexicon
	Words   []string
	Core    CoreScorer
	Refined RefinedScorer
}

func (a *Anchoring) Length() int {
	return len(a.Words)
}
