package mathx

import "testing"

func TestBezierSegmentAnchors(t *testing.T) {
	segs := []BezierSegment{
		{P0: Vec3{0, 0, 0}, C0: Vec3{1, 1, 0}, C1: Vec3{2, -1, 0}, P1: Vec3{3, 0, 0}},
		{P0: Vec3{-5, 2, 1}, C0: Vec3{-3, 5, 1}, C1: Vec3{3, 5, 1}, P1: Vec3{5, 2, 1}},
	}
	for i, seg := range segs {
		if got := seg.Coord(0); got != seg.P0 {
			t.Errorf("segment %d: Coord(0) = %v, want %v", i, got, seg.P0)
		}
		if got := seg.Coord(1); got != seg.P1 {
			t.Errorf("segment %d: Coord(1) = %v, want %v", i, got, seg.P1)
		}
	}
}
