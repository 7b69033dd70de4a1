package scene

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// Handle is an opaque reference to a node owned by a Graph.
type Handle uint64

// Root is the implicit top-level group every node descends from.
const Root Handle = 0

// Hit is the nearest intersection reported by Graph.Intersect.
type Hit struct {
	Handle   Handle
	Distance float64
	Point    r3.Vec
}

// Graph is the scene-graph collaborator the animation core drives. The core only reads world
// positions, writes local transforms, vertex positions, visibility and scalar uniforms,
// moves nodes between groups and hit-tests rays.
type Graph interface {
	// AddGroup creates an empty group under parent.
	//
	// Parameters:
	//   - parent: the parent handle (Root for top level)
	//
	// Returns:
	//   - Handle: the new group
	AddGroup(parent Handle) Handle

	// AddNode creates a renderable node under parent.
	//
	// Parameters:
	//   - parent: the parent handle (Root for top level)
	//   - t: the initial local transform
	//   - radius: bounding radius used for hit-testing (0 disables hits)
	//
	// Returns:
	//   - Handle: the new node
	AddNode(parent Handle, t common.Transform, radius float64) Handle

	// Parent returns the parent of h, or Root for top-level and unknown handles.
	Parent(h Handle) Handle

	// WorldPosition returns the world-space origin of h after composing every parent transform.
	WorldPosition(h Handle) r3.Vec

	// LocalTransform returns the local transform of h.
	LocalTransform(h Handle) common.Transform

	// SetLocalTransform replaces the local transform of h.
	SetLocalTransform(h Handle, t common.Transform)

	// Reparent moves h under group, keeping its local transform.
	Reparent(h Handle, group Handle)

	// SetVertexOffset sets the local position of vertex index of h.
	SetVertexOffset(h Handle, index int, v r3.Vec)

	// VertexOffset returns the local position of vertex index of h.
	VertexOffset(h Handle, index int) r3.Vec

	// VertexCount returns how many vertices have been written for h.
	VertexCount(h Handle) int

	// Intersect returns the nearest candidate hit by ray, if any.
	//
	// Parameters:
	//   - ray: the ray to test
	//   - candidates: handles eligible for hits
	//
	// Returns:
	//   - Hit: the nearest hit
	//   - bool: false if nothing was hit
	Intersect(ray common.Ray, candidates []Handle) (Hit, bool)

	// SetVisible toggles whether h is drawn and hit-testable.
	SetVisible(h Handle, visible bool)

	// Visible reports whether h is drawn.
	Visible(h Handle) bool

	// SetUniform sets a named scalar material parameter on h.
	SetUniform(h Handle, name string, v float64)

	// Uniform returns a named scalar material parameter of h (0 if unset).
	Uniform(h Handle, name string) float64

	// Count returns the number of nodes and groups.
	Count() int
}

type node struct {
	parent   Handle
	local    common.Transform
	radius   float64
	visible  bool
	group    bool
	vertices []r3.Vec
	uniforms map[string]float64
}

// memoryGraph is an in-memory Graph. It holds no GPU state and is safe for concurrent
// reads during culling.
type memoryGraph struct {
	mu       *sync.RWMutex
	registry map[Handle]*node
	nextID   Handle
}

var _ Graph = &memoryGraph{}

// NewGraph creates an empty in-memory Graph.
//
// Parameters:
//   - options: functional options to configure the graph
//
// Returns:
//   - Graph: the new graph
func NewGraph(options ...GraphBuilderOption) Graph {
	g := &memoryGraph{
		mu:       &sync.RWMutex{},
		registry: make(map[Handle]*node),
		nextID:   1,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *memoryGraph) AddGroup(parent Handle) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.add(&node{
		parent:  g.validParent(parent),
		local:   common.IdentityTransform(),
		visible: true,
		group:   true,
	})
}

func (g *memoryGraph) AddNode(parent Handle, t common.Transform, radius float64) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.add(&node{
		parent:  g.validParent(parent),
		local:   t,
		radius:  radius,
		visible: true,
	})
}

// add registers n. Caller must hold the write lock.
func (g *memoryGraph) add(n *node) Handle {
	h := g.nextID
	g.nextID++
	g.registry[h] = n
	return h
}

// validParent maps unknown parents to Root. Caller must hold the lock.
func (g *memoryGraph) validParent(parent Handle) Handle {
	if _, ok := g.registry[parent]; ok {
		return parent
	}
	return Root
}

func (g *memoryGraph) Parent(h Handle) Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.registry[h]; ok {
		return n.parent
	}
	return Root
}

func (g *memoryGraph) WorldPosition(h Handle) r3.Vec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.toWorld(h, r3.Vec{})
}

// toWorld maps a point in the local space of h into world space. Caller must hold the lock.
func (g *memoryGraph) toWorld(h Handle, p r3.Vec) r3.Vec {
	for depth := 0; h != Root && depth < len(g.registry); depth++ {
		n, ok := g.registry[h]
		if !ok {
			break
		}
		p = n.local.Apply(p)
		h = n.parent
	}
	return p
}

func (g *memoryGraph) LocalTransform(h Handle) common.Transform {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.registry[h]; ok {
		return n.local
	}
	return common.IdentityTransform()
}

func (g *memoryGraph) SetLocalTransform(h Handle, t common.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.registry[h]; ok {
		n.local = t
	}
}

func (g *memoryGraph) Reparent(h Handle, group Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.registry[h]
	if !ok || h == group {
		return
	}
	group = g.validParent(group)
	// Refuse to create a cycle.
	for p := group; p != Root; p = g.registry[p].parent {
		if p == h {
			return
		}
	}
	n.parent = group
}

func (g *memoryGraph) SetVertexOffset(h Handle, index int, v r3.Vec) {
	if index < 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.registry[h]
	if !ok {
		return
	}
	if index >= len(n.vertices) {
		grown := make([]r3.Vec, index+1)
		copy(grown, n.vertices)
		n.vertices = grown
	}
	n.vertices[index] = v
}

func (g *memoryGraph) VertexOffset(h Handle, index int) r3.Vec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.registry[h]
	if !ok || index < 0 || index >= len(n.vertices) {
		return r3.Vec{}
	}
	return n.vertices[index]
}

func (g *memoryGraph) VertexCount(h Handle) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.registry[h]; ok {
		return len(n.vertices)
	}
	return 0
}

func (g *memoryGraph) Intersect(ray common.Ray, candidates []Handle) (Hit, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	dir := common.SafeUnit(ray.Direction, r3.Vec{Z: -1})
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, h := range candidates {
		n, ok := g.registry[h]
		if !ok || n.radius <= 0 || !g.visibleChain(h) {
			continue
		}
		center := g.toWorld(h, r3.Vec{})
		t, ok := raySphere(ray.Origin, dir, center, n.radius)
		if ok && t < best.Distance {
			best = Hit{Handle: h, Distance: t, Point: r3.Add(ray.Origin, r3.Scale(t, dir))}
			found = true
		}
	}
	return best, found
}

// visibleChain reports whether h and all its parents are visible. Caller must hold the lock.
func (g *memoryGraph) visibleChain(h Handle) bool {
	for depth := 0; h != Root && depth < len(g.registry); depth++ {
		n, ok := g.registry[h]
		if !ok {
			return false
		}
		if !n.visible {
			return false
		}
		h = n.parent
	}
	return true
}

// raySphere returns the nearest non-negative ray parameter where the ray meets the sphere.
func raySphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(origin, center)
	b := r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

func (g *memoryGraph) SetVisible(h Handle, visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.registry[h]; ok {
		n.visible = visible
	}
}

func (g *memoryGraph) Visible(h Handle) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.registry[h]; ok {
		return n.visible
	}
	return false
}

func (g *memoryGraph) SetUniform(h Handle, name string, v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.registry[h]
	if !ok {
		return
	}
	if n.uniforms == nil {
		n.uniforms = make(map[string]float64)
	}
	n.uniforms[name] = v
}

func (g *memoryGraph) Uniform(h Handle, name string) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.registry[h]; ok {
		return n.uniforms[name]
	}
	return 0
}

func (g *memoryGraph) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.registry)
}
