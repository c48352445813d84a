package grammar

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/util"
)

const APPROX_LABELS = 128

// A Rule is one production over unrefined labels. Binary rules have
// Right >= 0; unary rules rewrite Parent to Left and keep Right at -1.
type Rule struct {
	Parent int
	Left   int
	Right  int
}

func (r Rule) IsBinary() bool {
	return r.Right >= 0
}

// Child returns the single child of a unary rule.
func (r Rule) Child() int {
	return r.Left
}

// Grammar is an immutable unrefined topology: the label alphabet, the
// root label, and the rule set with parent- and child-major indexes.
// Every label carries an implicit identity unary rule, appended when
// the grammar is built, so the unary closure step always carries a
// bottom chart entry to the top half.
type Grammar struct {
	Labels *util.EnumSet
	Root   int
	Rules  []Rule

	binaryByParent [][]int
	unaryByParent  [][]int
	unaryByChild   [][]int
	identity       []int
}

func (g *Grammar) NumLabels() int {
	return g.Labels.Len()
}

func (g *Grammar) NumRules() int {
	return len(g.Rules)
}

func (g *Grammar) Rule(id int) Rule {
	return g.Rules[id]
}

func (g *Grammar) BinaryRulesWithParent(label int) []int {
	return g.binaryByParent[label]
}

func (g *Grammar) UnaryRulesWithParent(label int) []int {
	return g.unaryByParent[label]
}

func (g *Grammar) UnaryRulesWithChild(label int) []int {
	return g.unaryByChild[label]
}

// IdentityRule returns the id of the implicit self unary of a label.
func (g *Grammar) IdentityRule(label int) int {
	return g.identity[label]
}

func (g *Grammar) IsIdentity(id int) bool {
	rule := g.Rules[id]
	return !rule.IsBinary() && rule.Parent == rule.Left
}

// RuleString renders a rule the way the rules text format spells it.
func (g *Grammar) RuleString(id int) string {
	rule := g.Rules[id]
	if rule.IsBinary() {
		return fmt.Sprintf("%s -> %s %s", g.Labels.ValueOf(rule.Parent),
			g.Labels.ValueOf(rule.Left), g.Labels.ValueOf(rule.Right))
	}
	return fmt.Sprintf("%s -> %s", g.Labels.ValueOf(rule.Parent),
		g.Labels.ValueOf(rule.Left))
}

// Builder accumulates labels and rules before the topology is frozen.
type Builder struct {
	labels *util.EnumSet
	root   int
	rules  []Rule
	index  map[Rule]int
}

func NewBuilder() *Builder {
	return &Builder{
		labels: util.NewEnumSet(APPROX_LABELS),
		root:   -1,
		index:  make(map[Rule]int),
	}
}

func (b *Builder) AddLabel(name string) int {
	id, _ := b.labels.Add(name)
	return id
}

func (b *Builder) SetRoot(name string) {
	b.root = b.AddLabel(name)
}

// AddBinary records parent -> left right, returning the rule id.
// Adding the same production twice returns the original id.
func (b *Builder) AddBinary(parent, left, right string) int {
	return b.add(Rule{b.AddLabel(parent), b.AddLabel(left), b.AddLabel(right)})
}

// AddUnary records parent -> child. Self unaries are rejected: every
// label already rewrites to itself through its implicit identity rule.
func (b *Builder) AddUnary(parent, child string) (int, error) {
	rule := Rule{b.AddLabel(parent), b.AddLabel(child), -1}
	if rule.Parent == rule.Left {
		return -1, errors.Errorf("self unary %s -> %s: identity rules are implicit", parent, child)
	}
	return b.add(rule), nil
}

func (b *Builder) add(rule Rule) int {
	if id, exists := b.index[rule]; exists {
		return id
	}
	id := len(b.rules)
	b.rules = append(b.rules, rule)
	b.index[rule] = id
	return id
}

// Build freezes the label alphabet, appends the identity unary of
// every label and indexes the rule set. The root defaults to the
// parent of the first rule when SetRoot was never called.
func (b *Builder) Build() (*Grammar, error) {
	if b.root < 0 {
		if len(b.rules) == 0 {
			return nil, errors.New("empty grammar: no rules and no root")
		}
		b.root = b.rules[0].Parent
	}
	numLabels := b.labels.Len()
	identity := make([]int, numLabels)
	for label := 0; label < numLabels; label++ {
		identity[label] = b.add(Rule{label, label, -1})
	}
	b.labels.Frozen = true
	g := &Grammar{
		Labels:         b.labels,
		Root:           b.root,
		Rules:          b.rules,
		binaryByParent: make([][]int, numLabels),
		unaryByParent:  make([][]int, numLabels),
		unaryByChild:   make([][]int, numLabels),
		identity:       identity,
	}
	for id, rule := range b.rules {
		if rule.IsBinary() {
			g.binaryByParent[rule.Parent] = append(g.binaryByParent[rule.Parent], id)
		} else {
			g.unaryByParent[rule.Parent] = append(g.unaryByParent[rule.Parent], id)
			g.unaryByChild[rule.Child()] = append(g.unaryByChild[rule.Child()], id)
		}
	}
	return g, nil
}
