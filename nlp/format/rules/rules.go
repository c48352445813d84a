package rules

// Package rules reads and writes refined grammar files.
//
// One declaration per line. # starts a comment line. A trailing
// numeric field is the rule probability, defaulting to one:
//
//	ROOT S
//	S -> NP VP 0.9
//	S -> VP 0.1
//	NP_0 -> DT_0 NN_1 0.5
//	NN_1 :: dog 0.3
//	NN :: <unk> 0.0001
//
// A label suffix of underscore plus digits names a refinement; labels
// without one refine to index zero. Explicit self unaries are
// rejected, identity rewrites being implicit, and unary chains are
// expected to be collapsed before the grammar is written.

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/nlp/grammar"
)

const (
	ROOT_DIRECTIVE = "ROOT"
	RULE_ARROW     = "->"
	LEXICAL_SEP    = "::"
)

type ruleLine struct {
	id      int
	variant grammar.Variant
	weight  float64
	line    int
}

type lexLine struct {
	tag    int
	ref    int
	word   string
	weight float64
	line   int
}

// Read parses one grammar file into a weighted model.
func Read(r io.Reader) (*grammar.Weights, error) {
	builder := grammar.NewBuilder()
	maxRef := make(map[int]int)
	seen := make(map[lexKey]int)
	var (
		ruleLines []ruleLine
		lexLines  []lexLine
		rootSeen  bool
	)

	note := func(label, ref int) {
		if ref > maxRef[label] {
			maxRef[label] = ref
		}
	}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch {
		case fields[0] == ROOT_DIRECTIVE:
			if len(fields) != 2 {
				return nil, errors.Errorf("line %d: ROOT wants exactly one label", lineno)
			}
			base, ref := parseSymbol(fields[1])
			if ref != 0 || base != fields[1] {
				return nil, errors.Errorf("line %d: ROOT names a base label, not a refinement", lineno)
			}
			if rootSeen {
				return nil, errors.Errorf("line %d: duplicate ROOT", lineno)
			}
			builder.SetRoot(base)
			rootSeen = true
		case len(fields) >= 2 && fields[1] == RULE_ARROW:
			parsed, err := parseRule(builder, fields, lineno, note)
			if err != nil {
				return nil, err
			}
			ruleLines = append(ruleLines, parsed)
		case len(fields) >= 2 && fields[1] == LEXICAL_SEP:
			parsed, err := parseLexical(builder, fields, lineno, note)
			if err != nil {
				return nil, err
			}
			key := lexKey{parsed.word, parsed.tag, parsed.ref}
			if prev, exists := seen[key]; exists {
				return nil, errors.Errorf("line %d: lexical entry already declared on line %d", parsed.line, prev)
			}
			seen[key] = parsed.line
			lexLines = append(lexLines, parsed)
		default:
			return nil, errors.Errorf("line %d: unrecognized declaration %q", lineno, strings.Join(fields, " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	g, err := builder.Build()
	if err != nil {
		return nil, err
	}

	counts := make([]int, g.NumLabels())
	for label := range counts {
		counts[label] = maxRef[label] + 1
	}

	variants := make([][]grammar.Variant, g.NumRules())
	for _, parsed := range ruleLines {
		variants[parsed.id] = append(variants[parsed.id], parsed.variant)
	}
	refs, err := grammar.NewRefinements(g, counts, variants)
	if err != nil {
		return nil, err
	}

	lex := grammar.NewSimpleLexicon(counts)
	for _, parsed := range lexLines {
		lex.SetScore(parsed.word, parsed.tag, parsed.ref, math.Log(parsed.weight))
	}

	w := grammar.NewWeights(g, refs, lex)
	next := make([]int, g.NumRules())
	for _, parsed := range ruleLines {
		w.SetRuleScore(parsed.id, next[parsed.id], math.Log(parsed.weight))
		next[parsed.id]++
	}
	return w, nil
}

type lexKey struct {
	word string
	tag  int
	ref  int
}

func parseRule(builder *grammar.Builder, fields []string, lineno int, note func(label, ref int)) (ruleLine, error) {
	body := fields[2:]
	weight, hasWeight, err := parseWeight(body)
	if err != nil {
		return ruleLine{}, errors.Wrapf(err, "line %d", lineno)
	}
	if hasWeight {
		body = body[:len(body)-1]
	}
	parentBase, parentRef := parseSymbol(fields[0])
	switch len(body) {
	case 1:
		childBase, childRef := parseSymbol(body[0])
		id, err := builder.AddUnary(parentBase, childBase)
		if err != nil {
			return ruleLine{}, errors.Wrapf(err, "line %d", lineno)
		}
		rule := ruleLine{id, grammar.Variant{Parent: parentRef, Left: childRef, Right: -1}, weight, lineno}
		note(builder.AddLabel(parentBase), parentRef)
		note(builder.AddLabel(childBase), childRef)
		return rule, nil
	case 2:
		leftBase, leftRef := parseSymbol(body[0])
		rightBase, rightRef := parseSymbol(body[1])
		id := builder.AddBinary(parentBase, leftBase, rightBase)
		rule := ruleLine{id, grammar.Variant{Parent: parentRef, Left: leftRef, Right: rightRef}, weight, lineno}
		note(builder.AddLabel(parentBase), parentRef)
		note(builder.AddLabel(leftBase), leftRef)
		note(builder.AddLabel(rightBase), rightRef)
		return rule, nil
	}
	return ruleLine{}, errors.Errorf("line %d: a rule wants one or two children, got %d", lineno, len(body))
}

func parseLexical(builder *grammar.Builder, fields []string, lineno int, note func(label, ref int)) (lexLine, error) {
	body := fields[2:]
	weight, hasWeight, err := parseWeight(body)
	if err != nil {
		return lexLine{}, errors.Wrapf(err, "line %d", lineno)
	}
	if hasWeight {
		body = body[:len(body)-1]
	}
	if len(body) != 1 {
		return lexLine{}, errors.Errorf("line %d: a lexical entry wants exactly one word", lineno)
	}
	tagBase, tagRef := parseSymbol(fields[0])
	tag := builder.AddLabel(tagBase)
	note(tag, tagRef)
	return lexLine{tag, tagRef, body[0], weight, lineno}, nil
}

// parseSymbol splits a trailing underscore-digits refinement suffix
// off a label spelling. Underscores inside names survive: NP_SBJ is a
// whole label, NP_SBJ_2 is its refinement 2.
func parseSymbol(s string) (string, int) {
	i := strings.LastIndexByte(s, '_')
	if i <= 0 || i == len(s)-1 {
		return s, 0
	}
	ref, err := strconv.Atoi(s[i+1:])
	if err != nil || ref < 0 {
		return s, 0
	}
	return s[:i], ref
}

// parseWeight interprets a numeric final field as a probability.
func parseWeight(body []string) (float64, bool, error) {
	if len(body) == 0 {
		return 1, false, nil
	}
	weight, err := strconv.ParseFloat(body[len(body)-1], 64)
	if err != nil {
		return 1, false, nil
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return 0, true, errors.Errorf("weight %q is not a positive probability", body[len(body)-1])
	}
	return weight, true, nil
}

// Write renders a model back to the rules format: root first, refined
// rules next, lexical entries last in word order. Implicit identity
// rules are skipped.
func Write(writer io.Writer, w *grammar.Weights) error {
	g := w.G
	if _, err := fmt.Fprintf(writer, "%s %s\n", ROOT_DIRECTIVE, g.Labels.ValueOf(g.Root)); err != nil {
		return err
	}
	for id := 0; id < g.NumRules(); id++ {
		if g.IsIdentity(id) {
			continue
		}
		for k := 0; k < w.Refs.NumRuleRefinements(id); k++ {
			if math.IsInf(w.Rules[id][k], -1) {
				continue
			}
			_, err := fmt.Fprintf(writer, "%s %s\n",
				SpellRule(g, w.Refs, id, k), formatWeight(w.Rules[id][k]))
			if err != nil {
				return err
			}
		}
	}
	words := make([]string, 0, len(w.Lexicon.Entries))
	for word := range w.Lexicon.Entries {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		for _, entry := range w.Lexicon.Entries[word] {
			for ref, score := range entry.Scores {
				if math.IsInf(score, -1) {
					continue
				}
				_, err := fmt.Fprintf(writer, "%s %s %s %s\n",
					SpellLabel(g, w.Refs, entry.Tag, ref), LEXICAL_SEP, word, formatWeight(score))
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SpellLabel renders a refined label the way rule files spell it: the
// refinement suffix appears only on labels with more than one.
func SpellLabel(g *grammar.Grammar, refs *grammar.Refinements, label, ref int) string {
	name := g.Labels.ValueOf(label)
	if refs.Counts[label] > 1 {
		return fmt.Sprintf("%s_%d", name, ref)
	}
	return name
}

// SpellRule renders one refined rule variant.
func SpellRule(g *grammar.Grammar, refs *grammar.Refinements, rule, ruleRef int) string {
	r := g.Rule(rule)
	v := refs.Variant(rule, ruleRef)
	if r.IsBinary() {
		return fmt.Sprintf("%s %s %s %s",
			SpellLabel(g, refs, r.Parent, v.Parent), RULE_ARROW,
			SpellLabel(g, refs, r.Left, v.Left), SpellLabel(g, refs, r.Right, v.Right))
	}
	return fmt.Sprintf("%s %s %s",
		SpellLabel(g, refs, r.Parent, v.Parent), RULE_ARROW,
		SpellLabel(g, refs, r.Child(), v.Left))
}

func formatWeight(score float64) string {
	return strconv.FormatFloat(math.Exp(score), 'g', -1, 64)
}

func ReadFile(filename string) (*grammar.Weights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return Read(file)
}

func WriteFile(filename string, w *grammar.Weights) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	return Write(file, w)
}
