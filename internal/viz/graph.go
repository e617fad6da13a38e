package viz

import (
	"fmt"
	"strings"

	"github.com/matsen/citegraph/internal/paper"
)

// Display constants.
const (
	LabelMaxLen   = 30 // runes of title shown in a node label
	RootLabelHead = "[ROOT]"
	UntitledLabel = "(untitled)"

	RootColor      = "#f0a30a"
	ReferenceColor = "#4285F4"
	CitationColor  = "#34A853"

	RootSize    = 30
	RelatedSize = 16
)

// Build converts a record into its citation graph.
//
// The root comes first, then references, then citations, each in record
// order. Related entries without an ID are skipped. Each ID yields exactly
// one node; when an ID is emitted more than once the first emission wins,
// which gives root > reference > citation precedence. Edges are unique and
// self-loops are dropped.
//
// Build is pure: the same record always yields the same graph.
func Build(rec *paper.Record) *Graph {
	b := &builder{
		seenNodes: make(map[string]bool),
		seenEdges: make(map[Edge]bool),
		graph: &Graph{
			Nodes: make([]Node, 0, 1+len(rec.References)+len(rec.Citations)),
			Edges: make([]Edge, 0, len(rec.References)+len(rec.Citations)),
		},
	}

	b.addNode(newRootNode(rec))

	for _, ref := range rec.References {
		if !ref.Linkable() {
			continue
		}
		b.addNode(newRelatedNode(ref, RoleReference))
		b.addEdge(rec.ID, ref.ID)
	}

	for _, cit := range rec.Citations {
		if !cit.Linkable() {
			continue
		}
		b.addNode(newRelatedNode(cit, RoleCitation))
		b.addEdge(cit.ID, rec.ID)
	}

	return b.graph
}

// builder accumulates nodes and edges, dropping duplicates.
type builder struct {
	graph     *Graph
	seenNodes map[string]bool
	seenEdges map[Edge]bool
}

func (b *builder) addNode(n Node) {
	if b.seenNodes[n.ID] {
		return
	}
	b.seenNodes[n.ID] = true
	b.graph.Nodes = append(b.graph.Nodes, n)
}

func (b *builder) addEdge(from, to string) {
	e := Edge{From: from, To: to}
	if from == to || b.seenEdges[e] {
		return
	}
	b.seenEdges[e] = true
	b.graph.Edges = append(b.graph.Edges, e)
}

// newRootNode creates the node for the searched paper.
func newRootNode(rec *paper.Record) Node {
	tooltip := rec.Title
	if rec.Year > 0 {
		tooltip = fmt.Sprintf("%s (%d)", rec.Title, rec.Year)
	}
	if len(rec.Authors) > 0 {
		tooltip += "\n" + rec.AuthorsString()
	}

	return Node{
		ID:      rec.ID,
		Label:   RootLabelHead + "\n" + TruncateLabel(rec.Title, LabelMaxLen),
		Tooltip: tooltip,
		Role:    RoleRoot,
		Color:   RootColor,
		Size:    RootSize,
		URL:     rec.URL,
	}
}

// newRelatedNode creates a node for a reference or citation.
func newRelatedNode(rel paper.Related, role Role) Node {
	color := ReferenceColor
	if role == RoleCitation {
		color = CitationColor
	}

	title := rel.Title
	if title == "" {
		title = UntitledLabel
	}

	return Node{
		ID:      rel.ID,
		Label:   TruncateLabel(title, LabelMaxLen),
		Tooltip: title,
		Role:    role,
		Color:   color,
		Size:    RelatedSize,
		URL:     rel.URL,
	}
}

// TruncateLabel shortens s to maxLen runes, adding "..." if truncated.
// Line breaks are flattened so labels stay on one line.
func TruncateLabel(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "..."
}
