package canvas

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanvas(mode config.Mode) (*Canvas, *anim.ManualScheduler, *scene.Overlay) {
	sched := anim.NewManualScheduler(time.Time{}, 10*time.Millisecond)
	env := anim.NewEnv(sched)
	opts := config.Default()
	opts.Mode = mode
	opts.SweepDuration = 200 * time.Millisecond
	opts.TangentDuration = 50 * time.Millisecond
	overlay := scene.NewOverlay(env)
	return New(env, scene.NewGraph(), overlay, opts), sched, overlay
}

func addPoints(t *testing.T, c *Canvas, pts ...casteljau.Point) {
	t.Helper()
	for _, p := range pts {
		require.NoError(t, c.AddPoint(p))
	}
}

func square() []casteljau.Point {
	return []casteljau.Point{casteljau.P(0, 0), casteljau.P(0, 4), casteljau.P(4, 4), casteljau.P(4, 0)}
}

func complete(t *testing.T, sched *anim.ManualScheduler, done <-chan struct{}) {
	t.Helper()
	ok := sched.RunUntil(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Minute)
	require.True(t, ok, "animation did not complete")
}

func TestUndoOnEmptyCanvas(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, _ := newCanvas(config.Bezier)
	assert.NoError(t, c.RemoveLastPoint())
	assert.Empty(t, c.Points())
	assert.Nil(t, c.Curve())
	assert.Equal(t, 0, c.graph.Len())
}

func TestEditPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, _ := newCanvas(config.Bezier)
	addPoints(t, c, casteljau.P(0, 0))
	assert.Nil(t, c.Curve(), "a single point has no curve")
	assert.Equal(t, 2, c.graph.Len()) // marker and label
	addPoints(t, c, casteljau.P(2, 2), casteljau.P(4, 0))
	require.Len(t, c.Curve(), c.opts.BezierSteps+1)
	assert.Equal(t, casteljau.P(4, 0), c.Curve()[len(c.Curve())-1])
	// polygon, curve, 3 × (marker, label)
	assert.Equal(t, 8, c.graph.Len())
	require.NoError(t, c.MovePoint(2, casteljau.P(6, 0)))
	assert.Equal(t, casteljau.P(6, 0), c.Curve()[len(c.Curve())-1])
	assert.True(t, errors.Is(c.MovePoint(3, casteljau.Origin), ErrNoPoint))
	require.NoError(t, c.RemoveLastPoint())
	assert.Equal(t, []casteljau.Point{casteljau.P(0, 0), casteljau.P(2, 2)}, c.Points())
	var labels []string
	c.graph.Each(func(_ scene.Handle, p scene.Primitive) {
		if l, ok := p.(scene.Label); ok {
			labels = append(labels, l.Text)
		}
	})
	assert.Equal(t, []string{"b₀", "b₁"}, labels)
}

func TestCatmullRomCurveEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, _ := newCanvas(config.CatmullRom)
	addPoints(t, c, casteljau.P(1, 1), casteljau.P(2, 3))
	curve := c.Curve()
	require.NotEmpty(t, curve)
	assert.Equal(t, casteljau.P(1, 1), curve[0])
	assert.Equal(t, casteljau.P(2, 3), curve[len(curve)-1])
	addPoints(t, c, square()...)
	curve = c.Curve()
	assert.Equal(t, casteljau.P(1, 1), curve[0])
	assert.Equal(t, casteljau.P(4, 0), curve[len(curve)-1])
	assert.Len(t, curve, 5*c.opts.CatmullRomSteps+1)
}

func TestEditsIgnoredWhileLocked(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, sched, _ := newCanvas(config.Bezier)
	addPoints(t, c, square()...)
	done, err := c.Animate()
	require.NoError(t, err)
	assert.True(t, c.Locked())
	assert.True(t, errors.Is(c.AddPoint(casteljau.P(9, 9)), ErrLocked))
	assert.True(t, errors.Is(c.MovePoint(0, casteljau.P(9, 9)), ErrLocked))
	assert.True(t, errors.Is(c.RemoveLastPoint(), ErrLocked))
	assert.True(t, errors.Is(c.SetMode(config.CatmullRom), ErrLocked))
	assert.True(t, c.TogglePause())
	sched.Advance(time.Second)
	assert.True(t, c.Locked(), "paused animation keeps the lock")
	assert.False(t, c.TogglePause())
	complete(t, sched, done)
	assert.Equal(t, square(), c.Points())
	assert.NoError(t, c.AddPoint(casteljau.P(9, 9)))
	assert.Equal(t, 0, c.Animator().Transient(), "edits clear leftovers of the sweep")
}

func TestAnimateRefusals(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, overlay := newCanvas(config.Bezier)
	addPoints(t, c, casteljau.P(1, 1))
	_, err := c.Animate()
	assert.Error(t, err)
	assert.NotEmpty(t, overlay.NoticeText())
	require.NoError(t, c.SetMode(config.CatmullRom))
	addPoints(t, c, casteljau.P(2, 2), casteljau.P(3, 1))
	_, err = c.Animate()
	assert.True(t, errors.Is(err, catmull.ErrTooFewKnots))
	assert.Contains(t, overlay.NoticeText(), "4 control points")
	_, err = c.AnimateTangent(0, catmull.First)
	assert.True(t, errors.Is(err, catmull.ErrTooFewKnots))
	addPoints(t, c, casteljau.P(4, 4))
	_, err = c.AnimateTangent(3, catmull.First)
	assert.True(t, errors.Is(err, catmull.ErrSegmentRange))
	assert.False(t, c.Locked())
}

func TestAnimateSpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, sched, _ := newCanvas(config.CatmullRom)
	pts := square()
	addPoints(t, c, pts...)
	done, err := c.Animate()
	require.NoError(t, err)
	assert.Equal(t, 5, c.env.Lock.Waiting(), "6 derivations, 1 running")
	complete(t, sched, done)
	assert.False(t, c.Locked())
	assert.Equal(t, 4, c.DerivedPoints().Len())
	path := catmull.FromPoints(pts)
	for i := 0; i < path.Segments(); i++ {
		b, err := path.Segment(i)
		require.NoError(t, err)
		start, ok := c.Derived(i)
		require.True(t, ok)
		post, ok := start.Get(catmull.First)
		require.True(t, ok)
		assert.True(t, post.Equal(b[1]), "segment %d: %s != %s", i, post, b[1])
		end, ok := c.Derived(i + 1)
		require.True(t, ok)
		pre, ok := end.Get(catmull.Second)
		require.True(t, ok)
		assert.True(t, pre.Equal(b[2]), "segment %d: %s != %s", i, pre, b[2])
	}
	first, _ := c.Derived(0)
	assert.False(t, first.HasPre)
	lo, hi, ok := c.Bounds()
	require.True(t, ok)
	assert.True(t, lo.X <= 0 && lo.Y <= 0 && hi.X >= 4 && hi.Y >= 4)
}

func TestDerivedPointsFollowEdits(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, sched, _ := newCanvas(config.CatmullRom)
	addPoints(t, c, square()...)
	done, err := c.AnimateTangent(1, catmull.Second)
	require.NoError(t, err)
	complete(t, sched, done)
	dp, ok := c.Derived(2)
	require.True(t, ok)
	assert.True(t, dp.HasPre)
	assert.False(t, dp.HasPost)
	require.NoError(t, c.MovePoint(3, casteljau.P(10, 0)))
	dp, _ = c.Derived(2)
	want := catmull.Derived(casteljau.P(0, 4), casteljau.P(4, 4), casteljau.P(10, 0), catmull.Second)
	assert.True(t, dp.Pre.Equal(want), "got %s, want %s", dp.Pre, want)
	require.NoError(t, c.RemoveLastPoint())
	_, ok = c.Derived(2)
	assert.True(t, ok)
	require.NoError(t, c.RemoveLastPoint())
	_, ok = c.Derived(2)
	assert.False(t, ok, "derived points are deleted with their control point")
	require.NoError(t, c.SetMode(config.Bezier))
	assert.Equal(t, 0, c.DerivedPoints().Len())
}

func TestPicking(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, _ := newCanvas(config.CatmullRom)
	addPoints(t, c, square()...)
	i, ok := c.PointAt(casteljau.P(0.1, 3.9), 0.5)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = c.PointAt(casteljau.P(2, 2), 0.5)
	assert.False(t, ok)
	seg, ok := c.SegmentAt(casteljau.P(2, 4.2), 0.5)
	assert.True(t, ok)
	assert.Equal(t, 1, seg)
	_, ok = c.SegmentAt(casteljau.P(20, 20), 0.5)
	assert.False(t, ok)
}

func TestModeAliasFromConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts, err := config.Load(strings.NewReader("mode: cr"))
	require.NoError(t, err)
	env := anim.NewEnv(anim.NewManualScheduler(time.Time{}, 10*time.Millisecond))
	c := New(env, scene.NewGraph(), scene.NewOverlay(env), opts)
	addPoints(t, c, square()...)
	assert.Equal(t, config.CatmullRom, c.Mode())
	assert.Len(t, c.Curve(), 3*opts.CatmullRomSteps+1)
}

func TestClosedSpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, sched, _ := newCanvas(config.CatmullRom)
	require.NoError(t, c.SetClosed(true))
	addPoints(t, c, square()...)
	assert.True(t, c.Path().IsCycle())
	curve := c.Curve()
	require.Len(t, curve, 4*c.opts.CatmullRomSteps+1)
	assert.Equal(t, curve[0], curve[len(curve)-1])
	done, err := c.Animate()
	require.NoError(t, err)
	assert.Equal(t, 7, c.env.Lock.Waiting(), "two derived points for each of 4 segments")
	complete(t, sched, done)
	first, ok := c.Derived(0)
	require.True(t, ok)
	assert.True(t, first.HasPre && first.HasPost, "the first knot joins the last segment")
	want := catmull.Derived(casteljau.P(4, 0), casteljau.P(0, 0), casteljau.P(0, 4), catmull.Second)
	assert.True(t, first.Pre.Equal(want), "got %s, want %s", first.Pre, want)
	require.NoError(t, c.SetClosed(false))
	first, ok = c.Derived(0)
	require.True(t, ok)
	assert.False(t, first.HasPre, "opening the spline drops the closing segment")
	assert.True(t, first.HasPost)
	assert.Len(t, c.Curve(), 3*c.opts.CatmullRomSteps+1)
}

func TestSegmentAtUsesConvexHull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _, _ := newCanvas(config.CatmullRom)
	// segment 1 has the crossed control polygon (0,0) (4,1) (2,1) (6,0)
	addPoints(t, c, casteljau.P(-18, -6), casteljau.P(0, 0), casteljau.P(6, 0), casteljau.P(24, -6))
	b, err := c.Path().Segment(1)
	require.NoError(t, err)
	assert.True(t, b[1].Equal(casteljau.P(4, 1)) && b[2].Equal(casteljau.P(2, 1)))
	seg, ok := c.SegmentAt(casteljau.P(1.5, 0.6), 0.01)
	assert.True(t, ok)
	assert.Equal(t, 1, seg)
}
