package chart

// Visitor receives posterior-weighted parse events from a marginal
// traversal. Counts are real-domain expected counts under the model;
// rule and ruleRef identify the grammar rule and its refined variant.
// Implementations accumulate side effects and do not return errors.
type Visitor interface {
	VisitSpan(begin, end, label, ref int, count float64)
	VisitBinaryRule(begin, split, end, rule, ruleRef int, count float64)
	VisitUnaryRule(begin, end, rule, ruleRef int, count float64)
}

// MultiVisitor fans every event out to several visitors in order.
func MultiVisitor(visitors ...Visitor) Visitor {
	return multiVisitor(visitors)
}

type multiVisitor []Visitor

func (m multiVisitor) VisitSpan(begin, end, label, ref int, count float64) {
	for _, v := range m {
		v.VisitSpan(begin, end, label, ref, count)
	}
}

func (m multiVisitor) VisitBinaryRule(begin, split, end, rule, ruleRef int, count float64) {
	for _, v := range m {
		v.VisitBinaryRule(begin, split, end, rule, ruleRef, count)
	}
}

func (m multiVisitor) VisitUnaryRule(begin, end, rule, ruleRef int, count float64) {
	for _, v := range m {
		v.VisitUnaryRule(begin, end, rule, ruleRef, count)
	}
}
