package logsum

import (
	"math"
	"testing"
)

const EPSILON = 1e-12

func TestAdd(t *testing.T) {
	got := Add(math.Log(0.25), math.Log(0.25))
	if math.Abs(got-math.Log(0.5)) > EPSILON {
		t.Errorf("Expected log(0.5), got %v", got)
	}

	negInf := math.Inf(-1)
	if got := Add(negInf, math.Log(0.3)); math.Abs(got-math.Log(0.3)) > EPSILON {
		t.Errorf("Expected log(0.3) when adding zero probability, got %v", got)
	}
	if got := Add(math.Log(0.3), negInf); math.Abs(got-math.Log(0.3)) > EPSILON {
		t.Errorf("Expected log(0.3) when adding zero probability, got %v", got)
	}
	if got := Add(negInf, negInf); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf for two zero probabilities, got %v", got)
	}
}

func TestAddExtremeMagnitudes(t *testing.T) {
	// exp(-1000) underflows in the real domain; the log domain must not
	got := Add(-1000, -1000)
	expected := -1000 + math.Log(2)
	if math.Abs(got-expected) > EPSILON {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	got = Add(-1000, -2000)
	if math.Abs(got - -1000) > EPSILON {
		t.Errorf("Expected dominant term -1000, got %v", got)
	}
}

func TestSum(t *testing.T) {
	buf := []float64{math.Log(0.1), math.Log(0.2), math.Log(0.3)}
	got := Sum(buf, 3)
	if math.Abs(got-math.Log(0.6)) > EPSILON {
		t.Errorf("Expected log(0.6), got %v", got)
	}

	if got := Sum(buf, 0); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf for empty sum, got %v", got)
	}
	if got := Sum(buf, 1); got != buf[0] {
		t.Errorf("Expected %v for singleton sum, got %v", buf[0], got)
	}

	allZero := []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	if got := Sum(allZero, 3); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf when all terms are zero, got %v", got)
	}
}

func TestSumMatchesChainedAdd(t *testing.T) {
	buf := []float64{-1.5, -0.25, -3.75, -2.0, -0.5, -10.0}
	chained := math.Inf(-1)
	for _, v := range buf {
		chained = Add(chained, v)
	}
	got := Sum(buf, len(buf))
	if math.Abs(got-chained) > EPSILON {
		t.Errorf("Expected %v from chained adds, got %v", chained, got)
	}
}

func TestMax(t *testing.T) {
	buf := []float64{-1.5, -0.25, -3.75}
	if got := Max(buf, 3); got != -0.25 {
		t.Errorf("Expected -0.25, got %v", got)
	}
	if got := Max(buf, 0); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf for empty max, got %v", got)
	}
}

func TestAccumulator(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = -float64(i%37) - 0.5
	}

	// small buffer forces many in-place collapses
	acc := NewAccumulator(4, Sum)
	if !acc.Empty() {
		t.Errorf("Expected fresh accumulator to be empty")
	}
	for _, v := range values {
		acc.Push(v)
	}
	if acc.Empty() {
		t.Errorf("Expected non-empty accumulator after pushes")
	}

	direct := Sum(values, len(values))
	got := acc.Total()
	if math.Abs(got-direct) > 1e-9 {
		t.Errorf("Expected %v from direct sum, got %v", direct, got)
	}

	acc.Reset()
	if !acc.Empty() {
		t.Errorf("Expected empty accumulator after reset")
	}
	if got := acc.Total(); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf total after reset, got %v", got)
	}
}

func TestAccumulatorViterbi(t *testing.T) {
	acc := NewAccumulator(3, Max)
	for _, v := range []float64{-5, -1, -3, -2, -4} {
		acc.Push(v)
	}
	if got := acc.Total(); got != -1 {
		t.Errorf("Expected max -1, got %v", got)
	}
}
