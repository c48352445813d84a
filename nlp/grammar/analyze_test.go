package grammar

import (
	"math"
	"testing"
)

func containsInt(list []int, x int) bool {
	for _, v := range list {
		if v == x {
			return true
		}
	}
	return false
}

func TestAnalyzeCleanGrammar(t *testing.T) {
	g := buildToyGrammar(t)
	refs := Trivial(g)
	lex := NewSimpleLexicon(refs.Counts)
	np, _ := g.Labels.IndexOf("NP")
	v, _ := g.Labels.IndexOf("V")
	lex.SetScore("dog", np, 0, math.Log(0.5))
	lex.SetScore("barks", v, 0, math.Log(0.5))

	analysis := Analyze(g, lex.Tags())
	if !analysis.Empty() {
		t.Errorf("Expected clean analysis, got %+v", analysis)
	}
}

func TestAnalyzeDefects(t *testing.T) {
	b := NewBuilder()
	b.SetRoot("S")
	good := b.AddBinary("S", "NP", "VP")
	if _, err := b.AddUnary("VP", "V"); err != nil {
		t.Fatal(err)
	}
	// X is never expanded from the root; W derives no word
	orphan := b.AddBinary("X", "NP", "V")
	barren, err := b.AddUnary("S", "W")
	if err != nil {
		t.Fatal(err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	refs := Trivial(g)
	lex := NewSimpleLexicon(refs.Counts)
	np, _ := g.Labels.IndexOf("NP")
	v, _ := g.Labels.IndexOf("V")
	lex.SetScore("dog", np, 0, math.Log(0.5))
	lex.SetScore("barks", v, 0, math.Log(0.5))

	analysis := Analyze(g, lex.Tags())

	x, _ := g.Labels.IndexOf("X")
	w, _ := g.Labels.IndexOf("W")
	if len(analysis.Unreachable) != 1 || !containsInt(analysis.Unreachable, x) {
		t.Errorf("Expected only X unreachable, got %v", analysis.Unreachable)
	}
	if len(analysis.Unproductive) != 1 || !containsInt(analysis.Unproductive, w) {
		t.Errorf("Expected only W unproductive, got %v", analysis.Unproductive)
	}
	if len(analysis.DeadRules) != 2 {
		t.Errorf("Expected 2 dead rules, got %v", analysis.DeadRules)
	}
	if !containsInt(analysis.DeadRules, orphan) {
		t.Errorf("Expected rule %s dead", g.RuleString(orphan))
	}
	if !containsInt(analysis.DeadRules, barren) {
		t.Errorf("Expected rule %s dead", g.RuleString(barren))
	}
	if containsInt(analysis.DeadRules, good) {
		t.Errorf("Expected rule %s alive", g.RuleString(good))
	}
}

func TestAnalyzeProductivityChains(t *testing.T) {
	// productivity must propagate through unary chains
	b := NewBuilder()
	b.SetRoot("S")
	if _, err := b.AddUnary("S", "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddUnary("A", "B"); err != nil {
		t.Fatal(err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	bLabel, _ := g.Labels.IndexOf("B")
	analysis := Analyze(g, []int{bLabel})
	if !analysis.Empty() {
		t.Errorf("Expected chain to be productive, got %+v", analysis)
	}

	// drop the frontier and everything dies
	analysis = Analyze(g, nil)
	if len(analysis.Unproductive) != g.NumLabels() {
		t.Errorf("Expected all labels unproductive, got %v", analysis.Unproductive)
	}
}

func TestLexiconTags(t *testing.T) {
	g := buildToyGrammar(t)
	refs := Trivial(g)
	lex := NewSimpleLexicon(refs.Counts)
	if tags := lex.Tags(); len(tags) != 0 {
		t.Errorf("Expected no tags in empty lexicon, got %v", tags)
	}

	np, _ := g.Labels.IndexOf("NP")
	v, _ := g.Labels.IndexOf("V")
	lex.SetScore("dog", np, 0, math.Log(0.5))
	lex.SetScore("cat", np, 0, math.Log(0.3))
	lex.SetScore("barks", v, 0, math.Log(0.5))

	tags := lex.Tags()
	if len(tags) != 2 {
		t.Errorf("Expected 2 distinct tags, got %v", tags)
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Errorf("Expected sorted tags, got %v", tags)
		}
	}
}
