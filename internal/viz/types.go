// Package viz builds the citation graph of a resolved paper and renders it
// for display.
package viz

// Role is the part a node plays relative to the searched paper.
type Role string

const (
	RoleRoot      Role = "root"      // the searched paper
	RoleReference Role = "reference" // a work the root cites
	RoleCitation  Role = "citation"  // a work citing the root
)

// Graph contains all data needed to render the visualization.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a paper in the graph.
type Node struct {
	ID      string `json:"id"`
	Label   string `json:"label"`   // truncated title
	Tooltip string `json:"tooltip"` // full title and details
	Role    Role   `json:"role"`
	Color   string `json:"color"`
	Size    int    `json:"size"`
	URL     string `json:"url,omitempty"`
}

// Edge is directed: root→reference for works the root cites, citation→root
// for works citing the root.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// RootNode returns the root node, or nil for an empty graph.
func (g *Graph) RootNode() *Node {
	for i := range g.Nodes {
		if g.Nodes[i].Role == RoleRoot {
			return &g.Nodes[i]
		}
	}
	return nil
}

// CountByRole returns how many nodes have each role.
func (g *Graph) CountByRole() map[Role]int {
	counts := make(map[Role]int, 3)
	for _, n := range g.Nodes {
		counts[n.Role]++
	}
	return counts
}
