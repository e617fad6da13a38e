package viz

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data Node `json:"data"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ToCytoscape converts the graph to Cytoscape.js elements.
func (g *Graph) ToCytoscape() CytoscapeElements {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: n})
	}

	for _, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     edgeID(e),
				Source: e.From,
				Target: e.To,
			},
		})
	}

	return elements
}

// ToCytoscapeJSON converts the graph to Cytoscape.js JSON format.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	jsonBytes, err := json.Marshal(g.ToCytoscape())
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID is stable because Build never emits the same (from, to) twice.
func edgeID(e Edge) string {
	return e.From + "->" + e.To
}
