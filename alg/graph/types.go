package graph

import "github.com/JasonWyse/epic/util"

type BasicVertex int
type BasicDirectedEdge [3]int

// BasicGraph is a dense directed graph over integer vertices. The
// grammar packages use it for rule topology, one vertex per label.
type BasicGraph struct {
	Vertices []BasicVertex
	Edges    []BasicDirectedEdge
}

var _ Vertex = *new(BasicVertex)
var _ DirectedEdge = BasicDirectedEdge{}
var _ DirectedGraph = &BasicGraph{}

func (b BasicVertex) ID() int {
	return int(b)
}

func (b BasicVertex) Equal(otherEq util.Equaler) bool {
	other := otherEq.(BasicVertex)
	return b == other
}

func (e BasicDirectedEdge) ID() int {
	return e[0]
}

func (e BasicDirectedEdge) From() int {
	return e[1]
}

func (e BasicDirectedEdge) To() int {
	return e[2]
}

func (e BasicDirectedEdge) Vertices() []int {
	return []int{e[1], e[2]}
}

func (e BasicDirectedEdge) Equal(otherEq util.Equaler) bool {
	other := otherEq.(BasicDirectedEdge)
	return e[1] == other[1] && e[2] == other[2]
}

func NewBasicGraph(numVertices int) *BasicGraph {
	vertices := make([]BasicVertex, numVertices)
	for i := range vertices {
		vertices[i] = BasicVertex(i)
	}
	return &BasicGraph{Vertices: vertices}
}

// AddEdge records a directed edge, returning its id.
func (g *BasicGraph) AddEdge(from, to int) int {
	id := len(g.Edges)
	g.Edges = append(g.Edges, BasicDirectedEdge{id, from, to})
	return id
}

func (g *BasicGraph) GetVertices() []int {
	vertices := make([]int, len(g.Vertices))
	for i := range g.Vertices {
		vertices[i] = i
	}
	return vertices
}

func (g *BasicGraph) GetEdges() []int {
	edges := make([]int, len(g.Edges))
	for i := range g.Edges {
		edges[i] = i
	}
	return edges
}

func (g *BasicGraph) GetVertex(i int) Vertex {
	return g.Vertices[i]
}

func (g *BasicGraph) GetEdge(i int) Edge {
	return Edge(g.Edges[i])
}

func (g *BasicGraph) NumberOfVertices() int {
	return len(g.Vertices)
}

func (g *BasicGraph) NumberOfEdges() int {
	return len(g.Edges)
}

func (g *BasicGraph) GetDirectedEdge(i int) DirectedEdge {
	return g.Edges[i]
}
