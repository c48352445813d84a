package chart

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/nlp/grammar"
)

// ErrNoParse reports a sentence outside the grammar's coverage: the
// partition is zero and no posterior is defined.
var ErrNoParse = errors.New("no parse: zero partition")

// Marginal bundles the inside and outside charts of one anchored
// sentence with its log partition. It is immutable once built.
type Marginal struct {
	Anchoring    *grammar.Anchoring
	Inside       *Chart
	Outside      *Chart
	LogPartition float64

	builder Builder
}

func NewMarginal(anch *grammar.Anchoring) *Marginal {
	return Builder{}.Marginal(anch)
}

func (b Builder) Marginal(anch *grammar.Anchoring) *Marginal {
	inside := b.Inside(anch)
	outside := b.Outside(anch, inside)
	return &Marginal{
		Anchoring:    anch,
		Inside:       inside,
		Outside:      outside,
		LogPartition: logPartition(anch, inside),
		builder:      b,
	}
}

// WithChartFactory rebuilds the marginal under a different chart
// semiring, reusing the anchoring. Under Viterbi charts LogPartition
// is the score of the best derivation.
func (m *Marginal) WithChartFactory(f Factory) *Marginal {
	b := m.builder
	b.Factory = f
	return b.Marginal(m.Anchoring)
}

// Partition computes the log partition of one sentence from the
// inside pass alone.
func (b Builder) Partition(anch *grammar.Anchoring) float64 {
	return logPartition(anch, b.Inside(anch))
}

// logPartition reduces the root refinements of the full span in the
// top half of the inside chart.
func logPartition(anch *grammar.Anchoring, inside *Chart) float64 {
	g := anch.Grammar
	n := anch.Length()
	if n == 0 {
		return math.Inf(-1)
	}
	refs := inside.Top.EnteredRefs(0, n, g.Root)
	if len(refs) == 0 {
		return math.Inf(-1)
	}
	buf := make([]float64, len(refs))
	for i, ref := range refs {
		buf[i] = inside.Top.Score(0, n, g.Root, ref)
	}
	return inside.Reduce(buf, len(buf))
}

// VisitPostorder walks every anchored event with nonzero posterior in
// postorder: lexical entries first, then per span the binary events
// before the unary ones, shorter spans first. Returns ErrNoParse when
// the sentence has no derivation.
func (m *Marginal) VisitPostorder(v Visitor) error {
	if math.IsNaN(m.LogPartition) {
		panic("NaN partition: a scorer returned NaN")
	}
	if math.IsInf(m.LogPartition, -1) {
		return errors.Wrapf(ErrNoParse, "sentence %q", strings.Join(m.Anchoring.Words, " "))
	}
	n := m.Anchoring.Length()
	for begin := 0; begin < n; begin++ {
		m.visitLexical(v, begin)
		m.visitUnaries(v, begin, begin+1)
	}
	for width := 2; width <= n; width++ {
		for begin := 0; begin+width <= n; begin++ {
			end := begin + width
			m.visitBinaries(v, begin, end)
			m.visitUnaries(v, begin, end)
		}
	}
	return nil
}

// visitLexical reports the posterior of each refined tag over one
// word. Width-one bottom cells hold exactly the lexical score, so the
// chart entry substitutes for rescoring.
func (m *Marginal) visitLexical(v Visitor, begin int) {
	end := begin + 1
	for _, tag := range m.Inside.Bot.Entered(begin, end) {
		for _, ref := range m.Inside.Bot.EnteredRefs(begin, end, tag) {
			outsideScore := m.Outside.Bot.Score(begin, end, tag, ref)
			if math.IsInf(outsideScore, -1) {
				continue
			}
			insideScore := m.Inside.Bot.Score(begin, end, tag, ref)
			count := math.Exp(insideScore + outsideScore - m.LogPartition)
			if count > 0 {
				v.VisitSpan(begin, end, tag, ref, count)
			}
		}
	}
}

// visitBinaries reports the posterior of every anchored binary rule
// application over (begin, end) and, per refined parent, the summed
// posterior of the parent holding the span at all.
func (m *Marginal) visitBinaries(v Visitor, begin, end int) {
	anch := m.Anchoring
	g := anch.Grammar
	refined := anch.Refined
	for _, parent := range m.Inside.Bot.Entered(begin, end) {
		rules := g.BinaryRulesWithParent(parent)
		if len(rules) == 0 {
			continue
		}
		coreSpan := anch.Core.ScoreSpan(begin, end, parent)
		if math.IsInf(coreSpan, -1) {
			continue
		}
		for _, parentRef := range m.Inside.Bot.EnteredRefs(begin, end, parent) {
			outsideScore := m.Outside.Bot.Score(begin, end, parent, parentRef)
			if math.IsInf(outsideScore, -1) {
				continue
			}
			spanScore := refined.ScoreSpan(begin, end, parent, parentRef) + coreSpan
			if math.IsInf(spanScore, -1) {
				continue
			}
			parentScore := outsideScore + spanScore
			var spanCount float64
			for _, id := range rules {
				rule := g.Rule(id)
				if !m.builder.Exhaustive && !m.Inside.Top.CoarseFeasible(begin, end, rule.Left, rule.Right) {
					continue
				}
				for _, ruleRef := range refined.ValidRuleRefinementsGivenParent(begin, end, id, parentRef) {
					leftRef := refined.LeftChildRefinement(id, ruleRef)
					rightRef := refined.RightChildRefinement(id, ruleRef)
					min, max := begin+1, end-1
					if !m.builder.Exhaustive {
						var ok bool
						min, max, ok = m.Inside.Top.SplitRange(begin, end, rule.Left, leftRef, rule.Right, rightRef)
						if !ok {
							continue
						}
					}
					for split := min; split <= max; split++ {
						leftScore := m.Inside.Top.Score(begin, split, rule.Left, leftRef)
						if math.IsInf(leftScore, -1) {
							continue
						}
						rightScore := m.Inside.Top.Score(split, end, rule.Right, rightRef)
						if math.IsInf(rightScore, -1) {
							continue
						}
						ruleScore := refined.ScoreBinaryRule(begin, split, end, id, ruleRef) +
							anch.Core.ScoreBinaryRule(begin, split, end, id)
						if math.IsInf(ruleScore, -1) {
							continue
						}
						count := math.Exp(parentScore + ruleScore + leftScore + rightScore - m.LogPartition)
						if count > 0 {
							v.VisitBinaryRule(begin, split, end, id, ruleRef, count)
							spanCount += count
						}
					}
				}
			}
			if spanCount > 0 {
				v.VisitSpan(begin, end, parent, parentRef, spanCount)
			}
		}
	}
}

// visitUnaries reports the posterior of every anchored unary rule
// application over (begin, end), identity rewrites included.
func (m *Marginal) visitUnaries(v Visitor, begin, end int) {
	anch := m.Anchoring
	g := anch.Grammar
	refined := anch.Refined
	for _, parent := range m.Inside.Top.Entered(begin, end) {
		for _, id := range g.UnaryRulesWithParent(parent) {
			coreRule := anch.Core.ScoreUnaryRule(begin, end, id)
			if math.IsInf(coreRule, -1) {
				continue
			}
			child := g.Rule(id).Child()
			for _, parentRef := range m.Inside.Top.EnteredRefs(begin, end, parent) {
				outsideScore := m.Outside.Top.Score(begin, end, parent, parentRef)
				if math.IsInf(outsideScore, -1) {
					continue
				}
				for _, ruleRef := range refined.ValidRuleRefinementsGivenParent(begin, end, id, parentRef) {
					childRef := refined.ChildRefinement(id, ruleRef)
					childScore := m.Inside.Bot.Score(begin, end, child, childRef)
					if math.IsInf(childScore, -1) {
						continue
					}
					ruleScore := refined.ScoreUnaryRule(begin, end, id, ruleRef) + coreRule
					if math.IsInf(ruleScore, -1) {
						continue
					}
					count := math.Exp(outsideScore + childScore + ruleScore - m.LogPartition)
					if count > 0 {
						v.VisitUnaryRule(begin, end, id, ruleRef, count)
					}
				}
			}
		}
	}
}
