package graph

// Reachable computes the set of vertices reachable from a start
// vertex by following directed edges. The result is indexed by
// vertex id.
func Reachable(g DirectedGraph, from int) []bool {
	reached := make([]bool, g.NumberOfVertices())
	if from < 0 || from >= len(reached) {
		return reached
	}
	// lookup outgoing edges by source vertex
	outgoing := make(map[int][]DirectedEdge, g.NumberOfVertices())
	for _, edgeId := range g.GetEdges() {
		edge := g.GetDirectedEdge(edgeId)
		outSet, exists := outgoing[edge.From()]
		if !exists {
			outSet = make([]DirectedEdge, 0, 2)
		}
		outSet = append(outSet, edge)
		outgoing[edge.From()] = outSet
	}
	agenda := make([]int, 1, g.NumberOfVertices())
	agenda[0] = from
	reached[from] = true
	var cur int
	for len(agenda) > 0 {
		// pop agenda
		cur = agenda[len(agenda)-1]
		agenda = agenda[:len(agenda)-1]
		for _, edge := range outgoing[cur] {
			if !reached[edge.To()] {
				reached[edge.To()] = true
				agenda = append(agenda, edge.To())
			}
		}
	}
	return reached
}
