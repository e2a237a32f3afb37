package casteljau

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
}

func TestPointBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p.Add(q)
	if !r.Equal(Origin) {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	if s := P3(1, 2, 3).String(); s != "(1,2,3)" {
		t.Errorf("Expected (1,2,3), is %s", s)
	}
}

func TestLerp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, q := P(0, 0), P(4, 2)
	if !p.Lerp(q, 0).Equal(p) || !p.Lerp(q, 1).Equal(q) {
		t.Errorf("Expected lerp to interpolate its endpoints")
	}
	if m := p.Lerp(q, 0.25); !m.Equal(P(1, 0.5)) {
		t.Errorf("Expected (1,0.5), is %v", m)
	}
}

func TestNormalizedZeroVector(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if n := Origin.Normalized(); n != XAxis {
		t.Errorf("Expected zero vector to normalize to x-axis, is %v", n)
	}
	if n := P(0, 3).Normalized(); !n.Equal(P(0, 1)) {
		t.Errorf("Expected (0,1), is %v", n)
	}
	if P(math.NaN(), 0).IsNaN() == false {
		t.Errorf("Expected NaN point to be detected")
	}
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if q := Translation(P(-1, -1)).Transform(P(1, 1)); !q.Equal(Origin) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is %v", q)
	}
	m := Translation(P(1, 0)).Combine(Scaling(2, 2))
	if q := m.Transform(P(1, 1)); !q.Equal(P(4, 2)) {
		t.Errorf("Expected translation first, then scaling: (4,2), is %v", q)
	}
}

func TestInverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Scaling(2, -3).Combine(Translation(P(5, 7)))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("Expected transform to be invertible")
	}
	p := P3(1.5, -2, 4)
	if q := inv.Transform(m.Transform(p)); !q.Equal(p) {
		t.Errorf("Expected round trip to yield %v, is %v", p, q)
	}
	if _, ok := Scaling(0, 1).Inverse(); ok {
		t.Errorf("Expected singular transform to be rejected")
	}
}
