package polygon

import (
	"testing"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(casteljau.P(0, 0)).Knot(casteljau.P(1, 3)).Knot(casteljau.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(casteljau.P(0, 5), casteljau.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	ll, ur, ok := box.BoundingBox()
	assert.True(t, ok)
	assert.Equal(t, casteljau.P(0, 1), ll)
	assert.Equal(t, casteljau.P(4, 5), ur)
}

func TestEmptyBoundingBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, ok := NullPolygon().BoundingBox()
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tri := FromPoints([]casteljau.Point{casteljau.P(0, 0), casteljau.P(4, 0), casteljau.P(0, 4)})
	assert.True(t, tri.Contains(casteljau.P(1, 1)))
	assert.False(t, tri.Contains(casteljau.P(3, 3)))
	line := FromPoints([]casteljau.Point{casteljau.P(0, 0), casteljau.P(4, 0)})
	assert.False(t, line.Contains(casteljau.P(1, 0)))
}

func TestOverlapAndIntersection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(casteljau.P(0, 0), casteljau.P(2, 2))
	b := Box(casteljau.P(1, 1), casteljau.P(3, 3))
	c := Box(casteljau.P(5, 5), casteljau.P(6, 6))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	isect := a.Intersection(b)
	if assert.Len(t, isect, 1) {
		ll, ur, _ := isect[0].BoundingBox()
		assert.True(t, ll.Equal(casteljau.P(1, 1)))
		assert.True(t, ur.Equal(casteljau.P(2, 2)))
	}
	assert.Empty(t, a.Intersection(c))
}

func TestHullOfCrossedPolygon(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crossed := []casteljau.Point{casteljau.P(0, 0), casteljau.P(2, 2), casteljau.P(2, 0), casteljau.P(0, 2)}
	at := casteljau.P(1, 0.2)
	assert.False(t, FromPoints(crossed).Cycle().Contains(at), "crossed polygon leaves a gap")
	hull := Hull(append(crossed, casteljau.P(1, 1)))
	L().Infof("hull = %s", AsString(hull))
	assert.Equal(t, 4, hull.N())
	assert.True(t, hull.IsCycle())
	assert.True(t, hull.Contains(at))
	assert.Equal(t, "(0,0) -- (2,0) -- (2,2) -- (0,2) -- cycle", AsString(hull))
	line := Hull([]casteljau.Point{casteljau.P(0, 0), casteljau.P(1, 1), casteljau.P(2, 2)})
	assert.Equal(t, 2, line.N(), "collinear points collapse to their ends")
}
