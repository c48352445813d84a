package events

import (
	"math"
	"testing"
)

func TestCompareAgreement(t *testing.T) {
	gold := []Event{
		{SPAN, 0, 0, NO_SPLIT, 2, "NP", 0, 0.5},
		{BINARY, 0, 0, 1, 2, "NP -> DT NN", 0, 0.5},
		{SPAN, 1, 0, NO_SPLIT, 1, "VB", 0, 1},
	}
	total := Compare(gold, gold, 1e-9)
	if total.TP != 3 || total.Incorrect() != 0 {
		t.Errorf("Expected full agreement, got %+v", total.Result)
	}
	if total.Population != 2 || total.Exact != 2 {
		t.Errorf("Expected 2 exactly matched sentences, got %d of %d", total.Exact, total.Population)
	}
	if got := total.ExactMatch(); got != 1 {
		t.Errorf("Expected exact match 1, got %v", got)
	}
	if errs := total.Errors(); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestCompareErrorClasses(t *testing.T) {
	gold := []Event{
		{SPAN, 0, 0, NO_SPLIT, 1, "DT", 0, 1},
		{SPAN, 0, 1, NO_SPLIT, 2, "NN", 0, 0.75},
		{UNARY, 0, 0, NO_SPLIT, 2, "NP -> X", 0, 0.5},
	}
	test := []Event{
		{SPAN, 0, 0, NO_SPLIT, 1, "DT", 0, 1},
		{SPAN, 0, 1, NO_SPLIT, 2, "NN", 0, 0.25},
		{BINARY, 0, 0, 1, 2, "NP -> DT NN", 0, 0.5},
	}
	total := Compare(test, gold, 1e-9)
	if total.TP != 1 || total.FN != 2 || total.FP != 2 {
		t.Errorf("Expected TP 1 FN 2 FP 2, got %+v", total.Result)
	}
	if total.Exact != 0 {
		t.Errorf("Expected no exact match, got %d", total.Exact)
	}
	byType := total.Errors().ByType()
	if byType[MISSING] != 1 || byType[EXTRA] != 1 || byType[DIVERGED] != 1 {
		t.Errorf("Expected one error of each class, got %v", byType)
	}
	if got := total.Recall(); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("Expected recall 1/3, got %v", got)
	}
}

func TestCompareTolerance(t *testing.T) {
	gold := []Event{{SPAN, 0, 0, NO_SPLIT, 1, "DT", 0, 0.5}}
	test := []Event{{SPAN, 0, 0, NO_SPLIT, 1, "DT", 0, 0.5 + 1e-7}}

	if total := Compare(test, gold, 1e-6); total.TP != 1 {
		t.Errorf("Expected match within tolerance, got %+v", total.Result)
	}
	total := Compare(test, gold, 1e-9)
	if total.TP != 0 {
		t.Errorf("Expected divergence outside tolerance, got %+v", total.Result)
	}
	if byType := total.Errors().ByType(); byType[DIVERGED] != 1 {
		t.Errorf("Expected a diverged error, got %v", byType)
	}
}

func TestCompareDisjointSentences(t *testing.T) {
	gold := []Event{{SPAN, 0, 0, NO_SPLIT, 1, "DT", 0, 1}}
	test := []Event{{SPAN, 1, 0, NO_SPLIT, 1, "DT", 0, 1}}
	total := Compare(test, gold, 1e-9)
	if total.Population != 2 {
		t.Fatalf("Expected both sentences counted, got %d", total.Population)
	}
	if total.FN != 1 || total.FP != 1 {
		t.Errorf("Expected one missing and one extra, got %+v", total.Result)
	}
	if total.Results[0].Other.(int) != 0 || total.Results[1].Other.(int) != 1 {
		t.Errorf("Expected results in sentence order")
	}
}
