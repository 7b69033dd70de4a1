package scene

// GraphBuilderOption is a functional option for configuring an in-memory Graph.
type GraphBuilderOption func(g *memoryGraph)

// WithCapacity pre-sizes the node registry.
//
// Parameters:
//   - n: expected number of nodes and groups
//
// Returns:
//   - GraphBuilderOption: option function to apply
func WithCapacity(n int) GraphBuilderOption {
	return func(g *memoryGraph) {
		if n > 0 {
			g.registry = make(map[Handle]*node, n)
		}
	}
}
