package chart

import (
	"math"

	"github.com/JasonWyse/epic/nlp/grammar"
)

// Outside builds the outside chart over a finished inside chart, spans
// by decreasing width. The root refinements start at log(1) in the top
// half of the full span; every other score flows down from there.
func (b Builder) Outside(anch *grammar.Anchoring, inside *Chart) *Chart {
	g := anch.Grammar
	n := anch.Length()
	outside := b.factory().New(refinementCounts(anch), n)
	if n == 0 {
		return outside
	}
	for _, ref := range anch.Refined.ValidLabelRefinements(0, n, g.Root) {
		outside.Top.Enter(0, n, g.Root, ref, 0)
	}
	for width := n; width >= 1; width-- {
		for begin := 0; begin+width <= n; begin++ {
			end := begin + width
			b.outsideUnaryStep(anch, inside, outside, begin, end)
			if width > 1 {
				b.outsideBinaryStep(anch, inside, outside, begin, end)
			}
		}
	}
	return outside
}

// outsideUnaryStep distributes the top outside scores of one span down
// to the bottom half through the unary rules, reversing the inside
// closure. A child only receives mass where its inside bottom entry
// exists, so unreachable refinements stay out of the chart.
func (b Builder) outsideUnaryStep(anch *grammar.Anchoring, inside, outside *Chart, begin, end int) {
	g := anch.Grammar
	refined := anch.Refined
	for _, parent := range outside.Top.Entered(begin, end) {
		for _, id := range g.UnaryRulesWithParent(parent) {
			coreRule := anch.Core.ScoreUnaryRule(begin, end, id)
			if math.IsInf(coreRule, -1) {
				continue
			}
			child := g.Rule(id).Child()
			for _, parentRef := range outside.Top.EnteredRefs(begin, end, parent) {
				parentScore := outside.Top.Score(begin, end, parent, parentRef)
				if math.IsInf(parentScore, -1) {
					continue
				}
				for _, ruleRef := range refined.ValidRuleRefinementsGivenParent(begin, end, id, parentRef) {
					childRef := refined.ChildRefinement(id, ruleRef)
					if math.IsInf(inside.Bot.Score(begin, end, child, childRef), -1) {
						continue
					}
					ruleScore := refined.ScoreUnaryRule(begin, end, id, ruleRef) + coreRule
					if math.IsInf(ruleScore, -1) {
						continue
					}
					outside.Bot.Enter(begin, end, child, childRef, parentScore+ruleScore)
				}
			}
		}
	}
}

// outsideBinaryStep pushes the bottom outside score of each refined
// parent through its binary rules to the top outside scores of the two
// child spans. Split feasibility comes from the inside boundary
// tables, so both passes prune identically.
func (b Builder) outsideBinaryStep(anch *grammar.Anchoring, inside, outside *Chart, begin, end int) {
	g := anch.Grammar
	refined := anch.Refined
	for _, parent := range inside.Bot.Entered(begin, end) {
		rules := g.BinaryRulesWithParent(parent)
		if len(rules) == 0 {
			continue
		}
		coreSpan := anch.Core.ScoreSpan(begin, end, parent)
		if math.IsInf(coreSpan, -1) {
			continue
		}
		for _, parentRef := range inside.Bot.EnteredRefs(begin, end, parent) {
			outsideScore := outside.Bot.Score(begin, end, parent, parentRef)
			if math.IsInf(outsideScore, -1) {
				continue
			}
			spanScore := refined.ScoreSpan(begin, end, parent, parentRef) + coreSpan
			if math.IsInf(spanScore, -1) {
				continue
			}
			parentScore := outsideScore + spanScore
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
						score := parentScore + ruleScore
						outside.Top.Enter(begin, split, rule.Left, leftRef, score+rightScore)
						outside.Top.Enter(split, end, rule.Right, rightRef, score+leftScore)
					}
				}
			}
		}
	}
}
