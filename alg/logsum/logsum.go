package logsum

// Log-domain arithmetic for probability computations. Scores are
// natural logarithms; math.Inf(-1) represents probability zero.

import "math"

// Add returns log(exp(a) + exp(b)) without leaving the log domain.
func Add(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// Sum returns the log of the summed exponentials of buf[:n], shifted
// by the maximum element for numerical stability.
func Sum(buf []float64, n int) float64 {
	switch n {
	case 0:
		return math.Inf(-1)
	case 1:
		return buf[0]
	case 2:
		return Add(buf[0], buf[1])
	}
	max := buf[0]
	for i := 1; i < n; i++ {
		if buf[i] > max {
			max = buf[i]
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	var total float64
	for i := 0; i < n; i++ {
		total += math.Exp(buf[i] - max)
	}
	return max + math.Log(total)
}

// Max returns the maximum of buf[:n], the Viterbi counterpart of Sum.
func Max(buf []float64, n int) float64 {
	if n == 0 {
		return math.Inf(-1)
	}
	max := buf[0]
	for i := 1; i < n; i++ {
		if buf[i] > max {
			max = buf[i]
		}
	}
	return max
}

// A Reducer collapses the first n buffered scores to a single score.
// Sum yields marginal semantics, Max yields Viterbi semantics.
type Reducer func(buf []float64, n int) float64

const DEFAULT_BUFFER_SIZE = 128

// Accumulator collects log-domain contributions in a fixed-size buffer,
// collapsing them to a single partial result whenever the buffer fills.
// The final value is therefore independent of the buffer size.
type Accumulator struct {
	buf    []float64
	n      int
	reduce Reducer
}

func NewAccumulator(size int, reduce Reducer) *Accumulator {
	if size < 2 {
		size = 2
	}
	return &Accumulator{
		buf:    make([]float64, size),
		reduce: reduce,
	}
}

func (a *Accumulator) Push(score float64) {
	a.buf[a.n] = score
	a.n++
	if a.n == len(a.buf) {
		a.buf[0] = a.reduce(a.buf, a.n)
		a.n = 1
	}
}

func (a *Accumulator) Empty() bool {
	return a.n == 0
}

// Total reduces the buffered contributions. The accumulator remains
// usable; call Reset before reusing it for an unrelated cell.
func (a *Accumulator) Total() float64 {
	return a.reduce(a.buf, a.n)
}

func (a *Accumulator) Reset() {
	a.n = 0
}
