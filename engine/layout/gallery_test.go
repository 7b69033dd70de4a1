package layout

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/clock"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
)

const ms = time.Millisecond

// settled returns a gallery whose initial spiral setup has fully run.
func settled(n int) (Gallery, scene.Graph, clock.Scheduler) {
	common.SetLogger(nil)
	graph := scene.NewGraph()
	sched := clock.NewScheduler()
	g := NewGallery(graph, sched, n)
	g.Setup(ModeSpiral)
	sched.Advance(0)
	sched.Advance(DefaultDuration)
	g.Events()
	return g, graph, sched
}

func inHorizon(g Gallery) []int {
	var out []int
	for _, it := range g.Items() {
		if it.Mode == ModeHorizon {
			out = append(out, it.Index)
		}
	}
	return out
}

func TestGalleryInitialSetup(t *testing.T) {
	Convey("Given a fresh gallery", t, func() {
		common.SetLogger(nil)
		graph := scene.NewGraph()
		sched := clock.NewScheduler()
		g := NewGallery(graph, sched, 10)
		So(g.Mode(), ShouldEqual, ModeNone)
		So(g.Observe(), ShouldBeFalse)

		Convey("Setup hides instantly and locks until every show finishes", func() {
			So(g.Setup(ModeSpiral), ShouldBeTrue)
			So(g.Changing(), ShouldBeTrue)
			So(g.Setup(ModeHorizon), ShouldBeFalse)

			sched.Advance(0)
			So(g.Mode(), ShouldEqual, ModeSpiral)
			So(g.Phase(), ShouldEqual, PhaseShowing)
			for _, it := range g.Items() {
				So(it.Mode, ShouldEqual, ModeSpiral)
				So(graph.Uniform(it.Handle, UniformOpacity), ShouldEqual, 1.0)
			}
			spot, directional := g.Lights()
			So(graph.Visible(spot), ShouldBeTrue)
			So(graph.Visible(directional), ShouldBeFalse)

			sched.Advance(DefaultDuration - ms)
			So(g.Changing(), ShouldBeTrue)
			sched.Advance(ms)
			So(g.Changing(), ShouldBeFalse)
			So(g.Phase(), ShouldEqual, PhaseStable)
			for _, it := range g.Items() {
				So(graph.Uniform(it.Handle, UniformThreshold), ShouldEqual, 1.0)
			}

			events := g.Events()
			So(events, ShouldHaveLength, 3)
			So(events[0].Kind, ShouldEqual, EventTransitionStarted)
			So(events[1].Kind, ShouldEqual, EventModeChanged)
			So(events[2].Kind, ShouldEqual, EventTransitionCompleted)
			So(events[2].Transition, ShouldEqual, events[0].Transition)
		})
	})
}

func TestGalleryTransition(t *testing.T) {
	Convey("Given a settled spiral gallery of 10 items, all in view", t, func() {
		g, graph, sched := settled(10)
		for _, v := range g.Views() {
			v.InView = true
		}
		So(sched.Pending(), ShouldEqual, 0)

		Convey("Observe schedules exactly one hide per item with staggered delays", func() {
			So(g.Observe(), ShouldBeTrue)
			So(g.Changing(), ShouldBeTrue)
			So(g.Phase(), ShouldEqual, PhaseHiding)
			tr, ok := g.Transition()
			So(ok, ShouldBeTrue)
			So(tr.Boundary, ShouldEqual, BoundaryEnd)
			So(tr.To, ShouldEqual, ModeHorizon)

			want := make([]time.Duration, 10)
			for i := range want {
				want[i] = time.Duration(i) * DefaultStagger
			}
			So(cmp.Diff(want, sched.PendingDelays()), ShouldBeEmpty)

			Convey("A second trigger adds no callbacks", func() {
				So(g.Observe(), ShouldBeFalse)
				So(g.Setup(ModeSpiral), ShouldBeFalse)
				So(sched.Pending(), ShouldEqual, 10)
			})

			Convey("The end boundary hides from the last item back to the first", func() {
				sched.Advance(DefaultDuration)
				So(inHorizon(g), ShouldResemble, []int{9})
				sched.Advance(DefaultStagger)
				So(inHorizon(g), ShouldResemble, []int{8, 9})
			})

			Convey("The lock holds until the last show completes", func() {
				// Hides end at 0.9s + 9 * 50ms; shows take as long again.
				sched.Advance(DefaultDuration + 9*DefaultStagger)
				So(g.Mode(), ShouldEqual, ModeHorizon)
				So(g.Phase(), ShouldEqual, PhaseShowing)
				spot, directional := g.Lights()
				So(graph.Visible(spot), ShouldBeFalse)
				So(graph.Visible(directional), ShouldBeTrue)

				sched.Advance(DefaultDuration + 9*DefaultStagger - ms)
				So(g.Changing(), ShouldBeTrue)
				So(sched.Pending(), ShouldEqual, 1)
				sched.Advance(ms)
				So(g.Changing(), ShouldBeFalse)

				events := g.Events()
				So(events, ShouldHaveLength, 3)
				So(events[1].Mode, ShouldEqual, ModeHorizon)
				So(events[2].Kind, ShouldEqual, EventTransitionCompleted)
				So(events[2].Transition, ShouldEqual, tr.ID)

				Convey("Items sit in their horizon lines with flat vertices", func() {
					for _, it := range g.Items() {
						So(it.Mode, ShouldEqual, ModeHorizon)
						So(it.Line, ShouldEqual, it.Index/3)
						So(graph.VertexCount(it.Handle), ShouldEqual, 17*17)
						So(graph.VertexOffset(it.Handle, 0), ShouldResemble, it.Horizon.Vertices[0])
					}
				})
			})
		})
	})

	Convey("Given a settled gallery where only the start side is in view", t, func() {
		g, _, sched := settled(11)
		for i, v := range g.Views() {
			v.InView = i < 10
		}

		Convey("The start boundary hides from the first item onward", func() {
			So(g.Observe(), ShouldBeTrue)
			tr, _ := g.Transition()
			So(tr.Boundary, ShouldEqual, BoundaryStart)
			So(sched.Pending(), ShouldEqual, 11)

			sched.Advance(DefaultDuration)
			// Item 10 is out of view: it hides instantly once every in-view item has started.
			So(inHorizon(g), ShouldResemble, []int{0, 10})
			sched.Advance(DefaultStagger)
			So(inHorizon(g), ShouldResemble, []int{0, 1, 10})
		})
	})

	Convey("Given a settled gallery with nothing in view", t, func() {
		g, _, sched := settled(10)

		Convey("Observe does nothing", func() {
			So(g.Observe(), ShouldBeFalse)
			So(sched.Pending(), ShouldEqual, 0)
		})
	})
}

func TestGalleryMotion(t *testing.T) {
	Convey("Given a settled spiral gallery", t, func() {
		g, graph, sched := settled(10)
		item := g.Items()[2]

		Convey("Advance lifts the spiral by speed and direction", func() {
			before := graph.WorldPosition(item.Handle)
			g.Advance(10, -1)
			after := graph.WorldPosition(item.Handle)
			So(after.Y-before.Y, ShouldAlmostEqual, -0.15, 1e-9)
		})

		Convey("Hover cross-fades between targets", func() {
			a, b := g.Items()[0].Handle, g.Items()[1].Handle
			g.Hover(a, true)
			sched.Advance(0)
			sched.Advance(DefaultHoverTime)
			So(graph.Uniform(a, UniformHover), ShouldEqual, 1.0)

			g.Hover(b, true)
			sched.Advance(0)
			sched.Advance(DefaultHoverTime / 2)
			g.Update()
			So(graph.Uniform(a, UniformHover), ShouldBeBetween, 0.0, 1.0)
			So(graph.Uniform(b, UniformHover), ShouldBeBetween, 0.0, 1.0)

			g.Hover(0, false)
			sched.Advance(0)
			sched.Advance(DefaultHoverTime)
			So(graph.Uniform(a, UniformHover), ShouldEqual, 0.0)
			So(graph.Uniform(b, UniformHover), ShouldEqual, 0.0)
		})

		Convey("Camera distance follows the mode", func() {
			So(g.CameraDistance(), ShouldAlmostEqual, 30, 1e-9)
			g.SetViewport(960, 1080)
			So(g.CameraDistance(), ShouldAlmostEqual, 60, 1e-9)
		})
	})

	Convey("Given a settled horizon gallery", t, func() {
		common.SetLogger(nil)
		graph := scene.NewGraph()
		sched := clock.NewScheduler()
		g := NewGallery(graph, sched, 10)
		g.Setup(ModeHorizon)
		sched.Advance(0)
		sched.Advance(DefaultDuration)
		So(g.Mode(), ShouldEqual, ModeHorizon)
		So(g.CameraDistance(), ShouldAlmostEqual, 19.5, 1e-9)
		first := g.Items()[0]

		Convey("Advance slides even lines to the left", func() {
			before := graph.WorldPosition(first.Handle)
			g.Advance(10, 1)
			after := graph.WorldPosition(first.Handle)
			So(after.X-before.X, ShouldAlmostEqual, -0.15*math.Cos(common.Radians(5)), 1e-9)
		})

		Convey("Deform waves the vertices of in-view items only", func() {
			first.View.InView = true
			g.Deform(3, 1)
			v := graph.VertexOffset(first.Handle, 0)
			So(v.Z, ShouldAlmostEqual, 0.1*math.Cos(-5.0/10*2), 1e-12)

			second := g.Items()[1]
			So(graph.VertexOffset(second.Handle, 0).Z, ShouldEqual, 0.0)
		})
	})
}
