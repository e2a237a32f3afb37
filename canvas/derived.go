package canvas

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/scene"
)

// DerivedPoint holds the derived Bézier control points attached to a
// control point: the pre-control (third control point of the segment
// ending at the owner) and the post-control (second control point of the
// segment starting at the owner). Either may be missing.
type DerivedPoint struct {
	Owner     int
	Pre, Post casteljau.Point
	HasPre    bool
	HasPost   bool
	markers   [2]scene.Handle
}

// Get returns the control point selected by w.
func (dp *DerivedPoint) Get(w catmull.Which) (casteljau.Point, bool) {
	if w == catmull.Second {
		return dp.Pre, dp.HasPre
	}
	return dp.Post, dp.HasPost
}

func (dp *DerivedPoint) set(w catmull.Which, p casteljau.Point) {
	if w == catmull.Second {
		dp.Pre, dp.HasPre = p, true
	} else {
		dp.Post, dp.HasPost = p, true
	}
}

// DerivedPoints maps control point indices to their derived points. The
// map is sparse: control points without derived points have no entry.
type DerivedPoints struct {
	m *treemap.Map // int -> *DerivedPoint
}

// NewDerivedPoints creates an empty map.
func NewDerivedPoints() *DerivedPoints {
	return &DerivedPoints{m: treemap.NewWithIntComparator()}
}

// Get returns the entry for control point owner.
func (dps *DerivedPoints) Get(owner int) (*DerivedPoint, bool) {
	v, found := dps.m.Get(owner)
	if !found {
		return nil, false
	}
	return v.(*DerivedPoint), true
}

// Set stores a derived point for control point owner.
func (dps *DerivedPoints) Set(owner int, w catmull.Which, p casteljau.Point) *DerivedPoint {
	dp, found := dps.Get(owner)
	if !found {
		dp = &DerivedPoint{Owner: owner}
		dps.m.Put(owner, dp)
	}
	dp.set(w, p)
	return dp
}

// Delete removes the entry for control point owner.
func (dps *DerivedPoints) Delete(owner int) {
	dps.m.Remove(owner)
}

// DeleteFrom removes the entries of every control point with index ≥ n.
func (dps *DerivedPoints) DeleteFrom(n int) {
	for _, k := range dps.m.Keys() {
		if k.(int) >= n {
			dps.m.Remove(k)
		}
	}
}

// Len is the number of control points with derived points.
func (dps *DerivedPoints) Len() int {
	return dps.m.Size()
}

// Clear removes every entry.
func (dps *DerivedPoints) Clear() {
	dps.m.Clear()
}

// Each calls fn for every entry, in order of control point index.
func (dps *DerivedPoints) Each(fn func(dp *DerivedPoint)) {
	it := dps.m.Iterator()
	for it.Next() {
		fn(it.Value().(*DerivedPoint))
	}
}

func (dp *DerivedPoint) unset(w catmull.Which) {
	if w == catmull.Second {
		dp.Pre, dp.HasPre = casteljau.Point{}, false
	} else {
		dp.Post, dp.HasPost = casteljau.Point{}, false
	}
}

// Recompute updates the positions of every derived point from the spline
// controls of path. Entries of control points which no longer exist are
// removed, as are derived points of segments which no longer exist.
func (dps *DerivedPoints) Recompute(path *catmull.Path) {
	dps.DeleteFrom(path.N())
	if dps.Len() == 0 {
		return
	}
	controls, err := catmull.FindControls(path, path.Controls)
	if err != nil {
		tracer().Debugf("derived points dropped: %v", err)
		dps.Clear()
		return
	}
	var empty []int
	dps.Each(func(dp *DerivedPoint) {
		for _, w := range []catmull.Which{catmull.First, catmull.Second} {
			if _, ok := dp.Get(w); !ok {
				continue
			}
			if ctrl := controls.Control(dp.Owner, w); catmull.IsUnknown(ctrl) {
				dp.unset(w)
			} else {
				dp.set(w, ctrl)
			}
		}
		if !dp.HasPre && !dp.HasPost {
			empty = append(empty, dp.Owner)
		}
	})
	for _, owner := range empty {
		dps.Delete(owner)
	}
}
