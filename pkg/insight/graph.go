package insight

// graphBuilder owns the node arena and performs the dedup rules from §3/§9:
// nodes dedup by composite Id, edges dedup by (source.Id, target.Id, relation).
// The driver is the only writer; VariableInsightGraph is handed out read-only.
type graphBuilder struct {
	byID  map[string]*InsightNode
	order []*InsightNode
	edges map[string]struct{} // "sourceID\x00targetID\x00relation"
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		byID:  make(map[string]*InsightNode),
		edges: make(map[string]struct{}),
	}
}

// nodeFor returns the existing node for s, or materializes a new one.
// ok reports whether this call created the node.
func (g *graphBuilder) nodeFor(s Symbol) (*InsightNode, bool) {
	id := nodeID(s)
	if n, exists := g.byID[id]; exists {
		return n, false
	}
	loc, _ := s.PrimaryLocation()
	n := &InsightNode{
		ID:         id,
		Name:       s.Name(),
		TypeString: s.TypeString(),
		Location:   loc,
		Excerpt:    s.SourceExcerpt(),
		Kind:       nodeKindOf(s.Kind()),
	}
	g.byID[id] = n
	g.order = append(g.order, n)
	return n, true
}

// addEdge appends target to source's outgoing set unless an edge with the
// same (source, target, relation) already exists. Returns true if appended.
func (g *graphBuilder) addEdge(source, target *InsightNode, relation Relation, origin Location) bool {
	key := source.ID + "\x00" + target.ID + "\x00" + string(relation)
	if _, exists := g.edges[key]; exists {
		return false
	}
	g.edges[key] = struct{}{}
	source.Edges = append(source.Edges, &InsightEdge{
		Target:         target,
		Relation:       relation,
		OriginLocation: origin,
	})
	return true
}

func (g *graphBuilder) build(root *InsightNode) *VariableInsightGraph {
	return &VariableInsightGraph{
		Root:            root,
		Nodes:           g.order,
		TotalReferences: len(g.order) - 1,
	}
}
