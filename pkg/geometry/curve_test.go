package geometry

import (
	"errors"
	"testing"
)

func newTestCurve(param float64) *Curve {
	c := NewShape(KindCurve).(*Curve)
	c.SetParameter(param)
	c.Update(Circle{Point{100, 100}, 35}, Circle{Point{300, 100}, 35})
	return c
}

func TestCurveControlPoint(t *testing.T) {
	c := newTestCurve(40)
	cp := c.Control()
	if !near(cp.X, 200, 1e-9) || !near(cp.Y, 140, 1e-9) {
		t.Errorf("control expected (200, 140), got (%.2f, %.2f)", cp.X, cp.Y)
	}

	// Negative parameters bow to the other side of the chord.
	c = newTestCurve(-40)
	if cp := c.Control(); !near(cp.Y, 60, 1e-9) {
		t.Errorf("control Y expected 60, got %.2f", cp.Y)
	}
}

func TestCurveLabelPosition(t *testing.T) {
	c := newTestCurve(40)
	lp := c.LabelPosition()
	// Half-offset anchor (200, 120) pushed 20 along cos of the chord angle.
	if !near(lp.X, 200, 1e-9) || !near(lp.Y, 140, 1e-9) {
		t.Errorf("label expected (200, 140), got (%.2f, %.2f)", lp.X, lp.Y)
	}
}

func TestCurveInterval(t *testing.T) {
	c := newTestCurve(40)
	t0, t1, err := c.Interval()
	if err != nil {
		t.Fatalf("Interval: %v", err)
	}
	if t0 <= 0 || t1 >= 1 || t0 >= t1 {
		t.Fatalf("expected 0 < t0 < t1 < 1, got t0=%.3f t1=%.3f", t0, t1)
	}
	b := c.Bezier()
	if d := b.At(t0).Dist(Point{100, 100}); !near(d, 35, 1.5) {
		t.Errorf("B(t0) expected on source boundary, distance %.2f", d)
	}
	if d := b.At(t1).Dist(Point{300, 100}); !near(d, 35, 1.5) {
		t.Errorf("B(t1) expected on destination boundary, distance %.2f", d)
	}
}

func TestCurveUnsolvable(t *testing.T) {
	c := NewShape(KindCurve).(*Curve)
	c.Update(Circle{Point{100, 100}, 35}, Circle{Point{100, 100}, 35})

	r := &recorder{}
	err := c.Draw(r, "a", false)
	if !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("expected ErrUnsolvable, got %v", err)
	}
	if len(r.paths) != 0 || len(r.polygons) != 0 || len(r.texts) != 0 {
		t.Errorf("nothing should be drawn for an unsolvable curve")
	}
	if c.CurveHit(100, 100) {
		t.Errorf("unsolvable curve should not be hit")
	}
}

func TestCurveDraw(t *testing.T) {
	c := newTestCurve(40)
	r := &recorder{}
	if err := c.Draw(r, "0, 1", true); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(r.paths) != 1 || len(r.paths[0]) != drawSegments+1 {
		t.Fatalf("expected one path of %d points, got %v", drawSegments+1, len(r.paths))
	}
	if len(r.polygons) != 1 || len(r.polygons[0]) != 3 {
		t.Fatalf("expected one triangular arrowhead")
	}
	tip := r.polygons[0][0]
	if d := tip.Dist(Point{300, 100}); !near(d, 35, 1.5) {
		t.Errorf("arrowhead tip expected on destination boundary, distance %.2f", d)
	}
	for i, corner := range r.polygons[0][1:] {
		if !near(corner.Dist(tip), HeadLength, 1e-9) {
			t.Errorf("corner %d is %.2f from tip, want %.0f", i, corner.Dist(tip), HeadLength)
		}
	}
	if len(r.texts) != 1 || r.texts[0] != "0, 1" {
		t.Errorf("expected label to be drawn, got %v", r.texts)
	}
}

func TestCurveArrowheadFollowsTangent(t *testing.T) {
	for _, param := range []float64{-60, 0, 40} {
		c := newTestCurve(param)
		r := &recorder{}
		if err := c.Draw(r, "", false); err != nil {
			t.Fatalf("param %.0f: Draw: %v", param, err)
		}
		_, t1, _ := c.Interval()
		tangent := c.Bezier().Tangent(t1)

		head := r.polygons[0]
		axis := head[1].Add(head[2]).Scale(0.5).Sub(head[0])
		cos := axis.Dot(tangent) / (axis.Len() * tangent.Len())
		if !near(cos, -1, 1e-9) {
			t.Errorf("param %.0f: arrowhead should point along the curve, cos %.6f", param, cos)
		}
	}
}

func TestBezierTangent(t *testing.T) {
	q := QuadBezier{P0: Point{0, 0}, C: Point{50, 100}, P1: Point{100, 0}}
	tests := []struct {
		t    float64
		want Point
	}{
		{0, Point{100, 200}},
		{0.5, Point{100, 0}},
		{1, Point{100, -200}},
	}
	for _, tt := range tests {
		got := q.Tangent(tt.t)
		if !near(got.X, tt.want.X, 1e-9) || !near(got.Y, tt.want.Y, 1e-9) {
			t.Errorf("Tangent(%.1f) = (%.2f, %.2f), want (%.2f, %.2f)", tt.t, got.X, got.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestCurveHit(t *testing.T) {
	c := newTestCurve(40)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"on the curve apex", 200, 120, true},
		{"within threshold of the curve", 200, 130, true},
		{"on the label", 200, 145, true},
		{"far below", 200, 200, false},
		{"inside the source circle", 110, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CurveHit(tt.x, tt.y); got != tt.want {
				t.Errorf("CurveHit(%.0f, %.0f) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCurveFitPassesThroughDraggedPoint(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float64
		wantParam float64
	}{
		{"above the midpoint", 200, 40, -120},
		{"quarter along", 150, 60, -320.0 / 3},
		{"below three quarters", 250, 130, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCurve(40)
			if !c.Fit(tt.x, tt.y) {
				t.Fatalf("Fit(%.0f, %.0f) reported no solution", tt.x, tt.y)
			}
			if !near(c.Parameter(), tt.wantParam, 1e-6) {
				t.Errorf("parameter = %.4f, want %.4f", c.Parameter(), tt.wantParam)
			}

			// Redraw from fresh anchors and look for the dragged point.
			c.Update(Circle{Point{100, 100}, 35}, Circle{Point{300, 100}, 35})
			b := c.Bezier()
			if b.Hit(Point{tt.x, tt.y}, 0, 1, 0.5, 1000) < 0 {
				t.Errorf("refit curve does not pass within 0.5px of (%.0f, %.0f)", tt.x, tt.y)
			}
			if !c.CurveHit(tt.x, tt.y) {
				t.Errorf("refit curve not hit at the dragged point")
			}
		})
	}
}

func TestCurveFitDegenerate(t *testing.T) {
	c := newTestCurve(40)
	if c.Fit(100, 100) {
		t.Errorf("Fit at the source centre should fail")
	}
	if c.Parameter() != 40 {
		t.Errorf("parameter changed to %.2f on failed fit", c.Parameter())
	}

	c = NewShape(KindCurve).(*Curve)
	c.SetParameter(10)
	c.Update(Circle{Point{50, 50}, 35}, Circle{Point{50, 50}, 35})
	if c.Fit(80, 80) {
		t.Errorf("Fit with a zero-length chord should fail")
	}
}
