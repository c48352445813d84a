package chart

import (
	"math"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/alg/logsum"
	"github.com/JasonWyse/epic/util"
)

// spanIndex maps a span 0 <= begin < end <= length onto the triangular
// storage order.
func spanIndex(begin, end int) int {
	return end*(end+1)/2 + begin
}

// refOffsets maps (label, refinement) pairs onto a dense arena offset
// using prefix sums of the per-label refinement counts.
type refOffsets struct {
	base   []int
	counts []int
	total  int
}

func newRefOffsets(counts []int) refOffsets {
	base := make([]int, len(counts))
	var total int
	for label, count := range counts {
		base[label] = total
		total += count
	}
	return refOffsets{base, counts, total}
}

func (o refOffsets) of(label, ref int) int {
	if ref < 0 || ref >= o.counts[label] {
		panic(errors.Errorf("refinement %d out of range for label %d", ref, label))
	}
	return o.base[label] + ref
}

// Half is one layer of a chart: bottom holds entries before the unary
// closure, top after it. Cells score refined labels per span; a cell
// never entered scores math.Inf(-1). Alongside the scores each half
// maintains the narrow and wide boundary tables used to bound binary
// split points, both per refined label and collapsed per label.
type Half struct {
	length  int
	offsets refOffsets
	combine func(a, b float64) float64

	scores  [][]float64
	entered [][]int
	refs    [][][]int

	narrowRight [][]int
	wideRight   [][]int
	narrowLeft  [][]int
	wideLeft    [][]int

	coarseNarrowRight [][]int
	coarseWideRight   [][]int
	coarseNarrowLeft  [][]int
	coarseWideLeft    [][]int
}

func newHalf(offsets refOffsets, length int, combine func(a, b float64) float64) *Half {
	// spans ending at length reach spanIndex(length-1, length)
	numSpans := spanIndex(length, length)
	numLabels := len(offsets.counts)
	h := &Half{
		length:  length,
		offsets: offsets,
		combine: combine,
		scores:  make([][]float64, numSpans),
		entered: make([][]int, numSpans),
		refs:    make([][][]int, numSpans),

		narrowRight: boundaryTable(length, offsets.total, length+1),
		wideRight:   boundaryTable(length, offsets.total, -1),
		narrowLeft:  boundaryTable(length, offsets.total, -1),
		wideLeft:    boundaryTable(length, offsets.total, length+1),

		coarseNarrowRight: boundaryTable(length, numLabels, length+1),
		coarseWideRight:   boundaryTable(length, numLabels, -1),
		coarseNarrowLeft:  boundaryTable(length, numLabels, -1),
		coarseWideLeft:    boundaryTable(length, numLabels, length+1),
	}
	return h
}

func boundaryTable(length, width, fill int) [][]int {
	table := make([][]int, length+1)
	for i := range table {
		row := make([]int, width)
		for j := range row {
			row[j] = fill
		}
		table[i] = row
	}
	return table
}

// Enter accumulates score into the cell (begin, end, label, ref). The
// first entry of a cell records it in the entered lists and widens the
// boundary tables; later entries only combine scores.
func (h *Half) Enter(begin, end, label, ref int, score float64) {
	idx := spanIndex(begin, end)
	arena := h.scores[idx]
	if arena == nil {
		arena = make([]float64, h.offsets.total)
		for i := range arena {
			arena[i] = math.Inf(-1)
		}
		h.scores[idx] = arena
		h.refs[idx] = make([][]int, len(h.offsets.counts))
	}
	off := h.offsets.of(label, ref)
	if math.IsInf(arena[off], -1) {
		arena[off] = score
		refs := h.refs[idx]
		if len(refs[label]) == 0 {
			h.entered[idx] = append(h.entered[idx], label)
		}
		refs[label] = append(refs[label], ref)
		h.noteBoundaries(begin, end, label, off)
		return
	}
	arena[off] = h.combine(arena[off], score)
}

func (h *Half) noteBoundaries(begin, end, label, off int) {
	if end < h.narrowRight[begin][off] {
		h.narrowRight[begin][off] = end
	}
	if end > h.wideRight[begin][off] {
		h.wideRight[begin][off] = end
	}
	if begin > h.narrowLeft[end][off] {
		h.narrowLeft[end][off] = begin
	}
	if begin < h.wideLeft[end][off] {
		h.wideLeft[end][off] = begin
	}

	if end < h.coarseNarrowRight[begin][label] {
		h.coarseNarrowRight[begin][label] = end
	}
	if end > h.coarseWideRight[begin][label] {
		h.coarseWideRight[begin][label] = end
	}
	if begin > h.coarseNarrowLeft[end][label] {
		h.coarseNarrowLeft[end][label] = begin
	}
	if begin < h.coarseWideLeft[end][label] {
		h.coarseWideLeft[end][label] = begin
	}
}

// Score returns the accumulated score of a cell, math.Inf(-1) when the
// cell was never entered.
func (h *Half) Score(begin, end, label, ref int) float64 {
	arena := h.scores[spanIndex(begin, end)]
	if arena == nil {
		return math.Inf(-1)
	}
	return arena[h.offsets.of(label, ref)]
}

// Entered lists the labels with at least one entry over the span, in
// first-entry order. Callers must not modify the slice.
func (h *Half) Entered(begin, end int) []int {
	return h.entered[spanIndex(begin, end)]
}

// EnteredRefs lists the refinements of label entered over the span.
func (h *Half) EnteredRefs(begin, end, label int) []int {
	refs := h.refs[spanIndex(begin, end)]
	if refs == nil {
		return nil
	}
	return refs[label]
}

// SplitRange bounds the feasible split points of a binary rule over
// (begin, end) whose refined children are (left, leftRef) and (right,
// rightRef). The range is inclusive on both ends; ok is false when no
// split point can join two recorded entries.
func (h *Half) SplitRange(begin, end, left, leftRef, right, rightRef int) (min, max int, ok bool) {
	leftOff := h.offsets.of(left, leftRef)
	narrowR := h.narrowRight[begin][leftOff]
	if narrowR >= end {
		return 0, 0, false
	}
	rightOff := h.offsets.of(right, rightRef)
	narrowL := h.narrowLeft[end][rightOff]
	if narrowL < narrowR {
		return 0, 0, false
	}
	min = util.Max(narrowR, h.wideLeft[end][rightOff])
	max = util.Min(h.wideRight[begin][leftOff], narrowL)
	if min > narrowL || min > max {
		return 0, 0, false
	}
	return min, max, true
}

// CoarseFeasible is the label-level version of SplitRange: it reports
// whether any refinement of the children could build the span.
func (h *Half) CoarseFeasible(begin, end, left, right int) bool {
	narrowR := h.coarseNarrowRight[begin][left]
	if narrowR >= end {
		return false
	}
	narrowL := h.coarseNarrowLeft[end][right]
	if narrowL < narrowR {
		return false
	}
	min := util.Max(narrowR, h.coarseWideLeft[end][right])
	max := util.Min(h.coarseWideRight[begin][left], narrowL)
	return min <= narrowL && min <= max
}

// Chart pairs the two halves of one inside or outside pass. The
// reducer and combiner decide the semiring: log-sum for marginals,
// max for Viterbi.
type Chart struct {
	Length int
	Bot    *Half
	Top    *Half

	reduce  logsum.Reducer
	combine func(a, b float64) float64
}

func newChart(refinements []int, length int, reduce logsum.Reducer, combine func(a, b float64) float64) *Chart {
	offsets := newRefOffsets(refinements)
	return &Chart{
		Length:  length,
		Bot:     newHalf(offsets, length, combine),
		Top:     newHalf(offsets, length, combine),
		reduce:  reduce,
		combine: combine,
	}
}

func (c *Chart) Reduce(buf []float64, n int) float64 {
	return c.reduce(buf, n)
}

func (c *Chart) Reducer() logsum.Reducer {
	return c.reduce
}

// Factory allocates charts of one semiring.
type Factory interface {
	New(refinements []int, length int) *Chart
	String() string
}

type logSumFactory struct{}

func (logSumFactory) New(refinements []int, length int) *Chart {
	return newChart(refinements, length, logsum.Sum, logsum.Add)
}

func (logSumFactory) String() string {
	return "logsum"
}

type viterbiFactory struct{}

func (viterbiFactory) New(refinements []int, length int) *Chart {
	return newChart(refinements, length, logsum.Max, math.Max)
}

func (viterbiFactory) String() string {
	return "viterbi"
}

var (
	LogSum  Factory = logSumFactory{}
	Viterbi Factory = viterbiFactory{}
)

func FactoryByName(name string) (Factory, error) {
	switch name {
	case "", "logsum":
		return LogSum, nil
	case "viterbi":
		return Viterbi, nil
	}
	return nil, errors.Errorf("unknown chart type %s", name)
}
