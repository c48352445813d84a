package grammar

import (
	"github.com/JasonWyse/epic/alg/graph"
)

// Analysis lists the defects of a grammar topology: labels the root
// can never expand to, labels that derive no word, and the rules
// touching either kind. Identity unaries are never reported.
type Analysis struct {
	Unreachable  []int
	Unproductive []int
	DeadRules    []int
}

func (a *Analysis) Empty() bool {
	return len(a.Unreachable) == 0 && len(a.Unproductive) == 0 && len(a.DeadRules) == 0
}

// ruleGraph builds the parent to child edge relation over labels,
// skipping identity unaries.
func ruleGraph(g *Grammar) *graph.BasicGraph {
	rg := graph.NewBasicGraph(g.NumLabels())
	for id := 0; id < g.NumRules(); id++ {
		if g.IsIdentity(id) {
			continue
		}
		rule := g.Rule(id)
		rg.AddEdge(rule.Parent, rule.Left)
		if rule.IsBinary() {
			rg.AddEdge(rule.Parent, rule.Right)
		}
	}
	return rg
}

// Analyze diagnoses a grammar against the terminal frontier formed by
// lexicalTags, the labels with at least one lexical entry. A label is
// reachable when some rule chain expands the root to it, productive
// when some rule chain derives a word from it, and a rule is dead when
// its parent is unreachable or any child is unproductive.
func Analyze(g *Grammar, lexicalTags []int) *Analysis {
	reachable := graph.Reachable(ruleGraph(g), g.Root)

	productive := make([]bool, g.NumLabels())
	for _, tag := range lexicalTags {
		if tag >= 0 && tag < len(productive) {
			productive[tag] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for id := 0; id < g.NumRules(); id++ {
			if g.IsIdentity(id) {
				continue
			}
			rule := g.Rule(id)
			if productive[rule.Parent] {
				continue
			}
			if !productive[rule.Left] {
				continue
			}
			if rule.IsBinary() && !productive[rule.Right] {
				continue
			}
			productive[rule.Parent] = true
			changed = true
		}
	}

	analysis := new(Analysis)
	for label := 0; label < g.NumLabels(); label++ {
		if !reachable[label] {
			analysis.Unreachable = append(analysis.Unreachable, label)
		}
		if !productive[label] {
			analysis.Unproductive = append(analysis.Unproductive, label)
		}
	}
	for id := 0; id < g.NumRules(); id++ {
		if g.IsIdentity(id) {
			continue
		}
		rule := g.Rule(id)
		dead := !reachable[rule.Parent] || !productive[rule.Left]
		if rule.IsBinary() && !productive[rule.Right] {
			dead = true
		}
		if dead {
			analysis.DeadRules = append(analysis.DeadRules, id)
		}
	}
	return analysis
}
