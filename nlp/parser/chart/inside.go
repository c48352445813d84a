package chart

import (
	"math"

	"github.com/JasonWyse/epic/alg/logsum"
	"github.com/JasonWyse/epic/nlp/grammar"
)

// Builder configures chart construction. The zero value computes
// marginals on log-sum charts with default buffering.
type Builder struct {
	// Factory picks the chart semiring; nil means LogSum.
	Factory Factory
	// Exhaustive scans every split point instead of consulting the
	// boundary tables. Results are identical; only work differs.
	Exhaustive bool
	// BufferSize is the accumulator buffer size, 0 means
	// logsum.DEFAULT_BUFFER_SIZE.
	BufferSize int
}

func (b Builder) factory() Factory {
	if b.Factory == nil {
		return LogSum
	}
	return b.Factory
}

func (b Builder) bufferSize() int {
	if b.BufferSize <= 0 {
		return logsum.DEFAULT_BUFFER_SIZE
	}
	return b.BufferSize
}

func refinementCounts(anch *grammar.Anchoring) []int {
	counts := make([]int, anch.Grammar.NumLabels())
	for label := range counts {
		counts[label] = anch.Refined.NumValidRefinements(label)
	}
	return counts
}

// Inside builds the inside chart of one anchored sentence, spans by
// increasing width. Bottom cells hold lexical and binary derivations,
// the unary step then carries each span to the top half in a single
// rewrite.
func (b Builder) Inside(anch *grammar.Anchoring) *Chart {
	n := anch.Length()
	inside := b.factory().New(refinementCounts(anch), n)
	acc := logsum.NewAccumulator(b.bufferSize(), inside.reduce)

	for begin := 0; begin < n; begin++ {
		end := begin + 1
		word := anch.Words[begin]
		for _, tag := range anch.Lexicon.TagsForWord(word) {
			coreScore := anch.Core.ScoreSpan(begin, end, tag)
			if math.IsInf(coreScore, -1) {
				continue
			}
			for _, ref := range anch.Refined.ValidLabelRefinements(begin, end, tag) {
				score := anch.Refined.ScoreSpan(begin, end, tag, ref) + coreScore
				if math.IsInf(score, -1) {
					continue
				}
				inside.Bot.Enter(begin, end, tag, ref, score)
			}
		}
		b.insideUnaryStep(anch, inside, begin, end)
	}

	for width := 2; width <= n; width++ {
		for begin := 0; begin+width <= n; begin++ {
			end := begin + width
			b.insideBinaryStep(anch, inside, acc, begin, end)
			b.insideUnaryStep(anch, inside, begin, end)
		}
	}
	return inside
}

// insideBinaryStep enters every refined parent of (begin, end) whose
// binary rules can join two top entries of shorter spans.
func (b Builder) insideBinaryStep(anch *grammar.Anchoring, inside *Chart, acc *logsum.Accumulator, begin, end int) {
	g := anch.Grammar
	refined := anch.Refined
	for parent := 0; parent < g.NumLabels(); parent++ {
		rules := g.BinaryRulesWithParent(parent)
		if len(rules) == 0 {
			continue
		}
		coreSpan := anch.Core.ScoreSpan(begin, end, parent)
		if math.IsInf(coreSpan, -1) {
			continue
		}
		for _, parentRef := range refined.ValidLabelRefinements(begin, end, parent) {
			spanScore := refined.ScoreSpan(begin, end, parent, parentRef) + coreSpan
			if math.IsInf(spanScore, -1) {
				continue
			}
			acc.Reset()
			for _, id := range rules {
				rule := g.Rule(id)
				if !b.Exhaustive && !inside.Top.CoarseFeasible(begin, end, rule.Left, rule.Right) {
					continue
				}
				for _, ruleRef := range refined.ValidRuleRefinementsGivenParent(begin, end, id, parentRef) {
					leftRef := refined.LeftChildRefinement(id, ruleRef)
					rightRef := refined.RightChildRefinement(id, ruleRef)
					min, max := begin+1, end-1
					if !b.Exhaustive {
						var ok bool
						min, max, ok = inside.Top.SplitRange(begin, end, rule.Left, leftRef, rule.Right, rightRef)
						if !ok {
							continue
						}
					}
					for split := min; split <= max; split++ {
						leftScore := inside.Top.Score(begin, split, rule.Left, leftRef)
						if math.IsInf(leftScore, -1) {
							continue
						}
						rightScore := inside.Top.Score(split, end, rule.Right, rightRef)
						if math.IsInf(rightScore, -1) {
							continue
						}
						ruleScore := refined.ScoreBinaryRule(begin, split, end, id, ruleRef) +
							anch.Core.ScoreBinaryRule(begin, split, end, id)
						if math.IsInf(ruleScore, -1) {
							continue
						}
						acc.Push(leftScore + rightScore + ruleScore)
					}
				}
			}
			if !acc.Empty() {
				inside.Bot.Enter(begin, end, parent, parentRef, acc.Total()+spanScore)
			}
		}
	}
}

// insideUnaryStep rewrites the bottom entries of one span to the top
// half. Chains are assumed collapsed in the grammar, so a single step
// suffices; the implicit identity rules carry every bottom entry up.
func (b Builder) insideUnaryStep(anch *grammar.Anchoring, inside *Chart, begin, end int) {
	g := anch.Grammar
	refined := anch.Refined
	for _, child := range inside.Bot.Entered(begin, end) {
		for _, id := range g.UnaryRulesWithChild(child) {
			coreRule := anch.Core.ScoreUnaryRule(begin, end, id)
			if math.IsInf(coreRule, -1) {
				continue
			}
			parent := g.Rule(id).Parent
			for _, childRef := range inside.Bot.EnteredRefs(begin, end, child) {
				childScore := inside.Bot.Score(begin, end, child, childRef)
				for _, ruleRef := range refined.ValidUnaryRefinementsGivenChild(begin, end, id, childRef) {
					ruleScore := refined.ScoreUnaryRule(begin, end, id, ruleRef) + coreRule
					if math.IsInf(ruleScore, -1) {
						continue
					}
					parentRef := refined.ParentRefinement(id, ruleRef)
					inside.Top.Enter(begin, end, parent, parentRef, childScore+ruleScore)
				}
			}
		}
	}
}
