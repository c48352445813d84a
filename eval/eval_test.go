package eval

import (
	"math"
	"testing"
)

type testError struct {
	class string
}

func (e testError) String() string {
	return e.class
}

func (e testError) Class() string {
	return e.class
}

func TestResultTallies(t *testing.T) {
	r := &Result{TP: 6, FP: 2, TN: 1, FN: 3}
	if r.All() != 12 {
		t.Errorf("Expected 12, got %d", r.All())
	}
	if r.TestPositives() != 8 {
		t.Errorf("Expected 8 test positives, got %d", r.TestPositives())
	}
	if r.ConditionPositives() != 9 {
		t.Errorf("Expected 9 condition positives, got %d", r.ConditionPositives())
	}
	if r.ConditionNegatives() != 3 {
		t.Errorf("Expected 3 condition negatives, got %d", r.ConditionNegatives())
	}
	if got := r.Precision(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Expected precision 0.75, got %v", got)
	}
	if got := r.Recall(); math.Abs(got-6.0/9.0) > 1e-12 {
		t.Errorf("Expected recall 2/3, got %v", got)
	}
	p, rec := r.Precision(), r.Recall()
	if got := r.F1(); math.Abs(got-2*p*rec/(p+rec)) > 1e-12 {
		t.Errorf("Expected harmonic mean, got %v", got)
	}
}

func TestTotal(t *testing.T) {
	total := &Total{Results: make([]*Result, 0, 2)}
	total.Add(&Result{TP: 3})
	total.Add(&Result{TP: 1, FN: 1, Errors: Errors{testError{"missing"}}})
	total.Add(&Result{TP: 1, FP: 2, Errors: Errors{testError{"extra"}, testError{"extra"}}})

	if total.Population != 3 {
		t.Errorf("Expected population 3, got %d", total.Population)
	}
	if total.Exact != 1 {
		t.Errorf("Expected 1 exact match, got %d", total.Exact)
	}
	if got := total.ExactMatch(); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("Expected exact match 1/3, got %v", got)
	}
	if total.TP != 5 || total.FP != 2 || total.FN != 1 {
		t.Errorf("Expected summed tallies, got %+v", total.Result)
	}

	errs := total.Errors()
	if len(errs) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(errs))
	}
	byType := errs.ByType()
	if byType["extra"] != 2 || byType["missing"] != 1 {
		t.Errorf("Expected error classes tallied, got %v", byType)
	}
}
