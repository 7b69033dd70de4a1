package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

func at(x, y, z float64) common.Transform {
	t := common.IdentityTransform()
	t.Position = r3.Vec{X: x, Y: y, Z: z}
	return t
}

func TestWorldPositionComposesParents(t *testing.T) {
	g := NewGraph()
	outer := g.AddGroup(Root)
	tr := at(0, 10, 0)
	tr.Rotation = common.EulerXYZ(0, 0, math.Pi/2)
	g.SetLocalTransform(outer, tr)
	inner := g.AddGroup(outer)
	g.SetLocalTransform(inner, at(2, 0, 0))
	leaf := g.AddNode(inner, at(1, 0, 0), 0.5)

	// (3,0,0) rotated 90° about Z becomes (0,3,0), then lifted by 10.
	assert.True(t, common.NearlyEqual(r3.Vec{Y: 13}, g.WorldPosition(leaf), 1e-9))
	assert.Equal(t, inner, g.Parent(leaf))
	assert.Equal(t, 3, g.Count())
}

func TestReparentKeepsLocalTransform(t *testing.T) {
	g := NewGraph()
	a := g.AddGroup(Root)
	b := g.AddGroup(Root)
	g.SetLocalTransform(b, at(0, 0, -5))
	n := g.AddNode(a, at(1, 1, 1), 1)

	g.Reparent(n, b)
	assert.Equal(t, b, g.Parent(n))
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: -4}, g.WorldPosition(n))

	g.Reparent(b, n)
	assert.Equal(t, Root, g.Parent(b), "cycles are refused")
}

func TestVerticesAndUniforms(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(Root, common.IdentityTransform(), 1)

	g.SetVertexOffset(n, 3, r3.Vec{Z: 2})
	assert.Equal(t, 4, g.VertexCount(n))
	assert.Equal(t, r3.Vec{Z: 2}, g.VertexOffset(n, 3))
	assert.Equal(t, r3.Vec{}, g.VertexOffset(n, 99))

	g.SetUniform(n, "hover", 0.25)
	assert.Equal(t, 0.25, g.Uniform(n, "hover"))
	assert.Zero(t, g.Uniform(n, "missing"))
}

func TestIntersectNearestVisible(t *testing.T) {
	g := NewGraph()
	near := g.AddNode(Root, at(0, 0, -5), 1)
	far := g.AddNode(Root, at(0, 0, -10), 1)
	off := g.AddNode(Root, at(5, 0, -5), 1)
	candidates := []Handle{far, near, off}
	ray := common.Ray{Direction: r3.Vec{Z: -1}}

	hit, ok := g.Intersect(ray, candidates)
	require.True(t, ok)
	assert.Equal(t, near, hit.Handle)
	assert.InDelta(t, 4, hit.Distance, 1e-9)

	g.SetVisible(near, false)
	hit, ok = g.Intersect(ray, candidates)
	require.True(t, ok)
	assert.Equal(t, far, hit.Handle)

	_, ok = g.Intersect(common.Ray{Direction: r3.Vec{Z: 1}}, candidates)
	assert.False(t, ok)
}

func TestRecorderFlush(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Root, common.IdentityTransform(), 0)
	b := g.AddNode(Root, common.IdentityTransform(), 0)
	r := NewRecorder(g)

	r.SetLocalTransform(b, at(1, 0, 0))
	r.SetLocalTransform(a, at(2, 0, 0))
	r.SetLocalTransform(b, at(3, 0, 0))

	updates := r.Flush()
	require.Len(t, updates, 2)
	assert.Equal(t, a, updates[0].Handle)
	assert.Equal(t, b, updates[1].Handle)
	assert.Equal(t, 3.0, updates[1].Transform.Position.X)
	assert.Equal(t, r3.Vec{X: 3}, g.WorldPosition(b), "writes reach the wrapped graph")
	assert.Nil(t, r.Flush())
}
