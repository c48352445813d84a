package grammar

import (
	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/util"
)

// A Variant is one refined instantiation of a base rule: refinement
// indices for the parent and children. Unary variants keep Right
// at -1, mirroring Rule.
type Variant struct {
	Parent int
	Left   int
	Right  int
}

type ruleRefs struct {
	variants []Variant
	byParent [][]int
	byChild  [][]int
}

// Refinements is the refinement layer over a grammar: how many
// refinements each label has, which refined variants each rule has,
// and the parent- and child-conditioned variant indexes the chart
// builders iterate over.
type Refinements struct {
	Counts []int
	ranges [][]int
	rules  []ruleRefs
}

// NewRefinements builds the layer over g. counts gives the refinement
// count per label, at least one each. variants lists the refined
// instantiations per rule id; a rule with none listed defaults to the
// all-zero variant, and identity rules always get the full diagonal.
func NewRefinements(g *Grammar, counts []int, variants [][]Variant) (*Refinements, error) {
	if len(counts) != g.NumLabels() {
		return nil, errors.Errorf("got %d refinement counts for %d labels", len(counts), g.NumLabels())
	}
	for label, count := range counts {
		if count < 1 {
			return nil, errors.Errorf("label %s needs at least one refinement", g.Labels.ValueOf(label))
		}
	}
	ranges := make([][]int, len(counts))
	for label, count := range counts {
		ranges[label] = util.RangeInt(count)
	}
	rules := make([]ruleRefs, g.NumRules())
	for id := 0; id < g.NumRules(); id++ {
		rule := g.Rule(id)
		var vs []Variant
		if id < len(variants) {
			vs = variants[id]
		}
		if g.IsIdentity(id) {
			if len(vs) > 0 {
				return nil, errors.Errorf("identity rule %s carries explicit variants", g.RuleString(id))
			}
			vs = make([]Variant, counts[rule.Parent])
			for i := range vs {
				vs[i] = Variant{i, i, -1}
			}
		} else if len(vs) == 0 {
			if rule.IsBinary() {
				vs = []Variant{{0, 0, 0}}
			} else {
				vs = []Variant{{0, 0, -1}}
			}
		}
		seen := make(map[Variant]bool, len(vs))
		for _, v := range vs {
			if err := checkVariant(g, counts, id, rule, v); err != nil {
				return nil, err
			}
			if seen[v] {
				return nil, errors.Errorf("duplicate refinement %v of %s", v, g.RuleString(id))
			}
			seen[v] = true
		}
		byParent := make([][]int, counts[rule.Parent])
		var byChild [][]int
		if !rule.IsBinary() {
			byChild = make([][]int, counts[rule.Child()])
		}
		for i, v := range vs {
			byParent[v.Parent] = append(byParent[v.Parent], i)
			if !rule.IsBinary() {
				byChild[v.Left] = append(byChild[v.Left], i)
			}
		}
		rules[id] = ruleRefs{vs, byParent, byChild}
	}
	return &Refinements{counts, ranges, rules}, nil
}

func checkVariant(g *Grammar, counts []int, id int, rule Rule, v Variant) error {
	if v.Parent < 0 || v.Parent >= counts[rule.Parent] {
		return errors.Errorf("parent refinement %d out of range for %s", v.Parent, g.RuleString(id))
	}
	if rule.IsBinary() {
		if v.Left < 0 || v.Left >= counts[rule.Left] {
			return errors.Errorf("left refinement %d out of range for %s", v.Left, g.RuleString(id))
		}
		if v.Right < 0 || v.Right >= counts[rule.Right] {
			return errors.Errorf("right refinement %d out of range for %s", v.Right, g.RuleString(id))
		}
		return nil
	}
	if v.Left < 0 || v.Left >= counts[rule.Child()] {
		return errors.Errorf("child refinement %d out of range for %s", v.Left, g.RuleString(id))
	}
	if v.Right >= 0 {
		return errors.Errorf("unary rule %s carries a right refinement", g.RuleString(id))
	}
	return nil
}

// Trivial gives every label a single refinement and every rule its
// all-zero variant, turning the refined machinery into a plain PCFG.
func Trivial(g *Grammar) *Refinements {
	counts := make([]int, g.NumLabels())
	for i := range counts {
		counts[i] = 1
	}
	refs, err := NewRefinements(g, counts, nil)
	if err != nil {
		panic(err)
	}
	return refs
}

func (r *Refinements) NumLabelRefinements(label int) int {
	return r.Counts[label]
}

// AllLabelRefinements returns the shared 0..count-1 slice of a label.
// Callers must not modify it.
func (r *Refinements) AllLabelRefinements(label int) []int {
	return r.ranges[label]
}

func (r *Refinements) NumRuleRefinements(rule int) int {
	return len(r.rules[rule].variants)
}

func (r *Refinements) Variant(rule, ruleRef int) Variant {
	return r.rules[rule].variants[ruleRef]
}

// ByParent returns the variants of rule whose parent refinement is
// parentRef.
func (r *Refinements) ByParent(rule, parentRef int) []int {
	return r.rules[rule].byParent[parentRef]
}

// ByChild returns the variants of a unary rule whose child refinement
// is childRef.
func (r *Refinements) ByChild(rule, childRef int) []int {
	return r.rules[rule].byChild[childRef]
}
