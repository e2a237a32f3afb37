package bezier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func quad() []casteljau.Point {
	return []casteljau.Point{casteljau.P(0, 0), casteljau.P(1, 2), casteljau.P(2, 0)}
}

func TestDeCasteljauEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, ok := DeCasteljau(nil, 0.5)
	assert.False(t, ok)
}

func TestDeCasteljauEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sets := [][]casteljau.Point{
		{casteljau.P(3, 4)},
		quad(),
		{casteljau.P(0, 0), casteljau.P(1, 3), casteljau.P(4, 3), casteljau.P(5, -1), casteljau.P(7, 2)},
	}
	for _, points := range sets {
		first, ok := DeCasteljau(points, 0)
		assert.True(t, ok)
		assert.Equal(t, points[0], first)
		last, _ := DeCasteljau(points, 1)
		assert.Equal(t, points[len(points)-1], last)
	}
}

func TestDeCasteljauMidpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// quadratic: B(1/2) = 1/4 P0 + 1/2 P1 + 1/4 P2
	p, _ := DeCasteljau(quad(), 0.5)
	assert.True(t, p.Equal(casteljau.P(1, 1)), "got %v", p)
}

func TestLevels(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Nil(t, Levels(nil, 0.3))
	levels := Levels(quad(), 0.5)
	if assert.Len(t, levels, 3) {
		assert.Len(t, levels[0], 3)
		assert.Len(t, levels[1], 2)
		assert.Len(t, levels[2], 1)
		assert.True(t, levels[1][0].Equal(casteljau.P(0.5, 1)))
		assert.True(t, levels[1][1].Equal(casteljau.P(1.5, 1)))
		p, _ := DeCasteljau(quad(), 0.5)
		assert.Equal(t, p, levels[2][0])
	}
}

func TestLevelsDoNotAliasInput(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	points := quad()
	levels := Levels(points, 0.5)
	levels[0][0] = casteljau.P(9, 9)
	assert.Equal(t, casteljau.P(0, 0), points[0])
}

func TestCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Nil(t, Curve([]casteljau.Point{casteljau.P(1, 1)}, 10))
	c := Curve(quad(), 10)
	assert.Len(t, c, 11)
	assert.Equal(t, quad()[0], c[0])
	assert.Equal(t, quad()[2], c[10])
	assert.Len(t, Curve(quad(), 0), 2)
}

func TestCurveIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	points := quad()
	c1 := Curve(points, 50)
	c2 := Curve(points, 50)
	if diff := cmp.Diff(c1, c2); diff != "" {
		t.Errorf("sampling twice differs (-first +second):\n%s", diff)
	}
}
