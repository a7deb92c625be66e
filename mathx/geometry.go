package mathx

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Contains reports whether p lies inside or on the boundary of b.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Plane is defined by ax + by + cz + d = 0, with Normal assumed unit length
// by callers that need signed-distance results to be metrically accurate.
type Plane struct {
	Normal Vec3
	D      float64
}

// DistanceToPoint returns the signed distance from p to the plane.
func (p Plane) DistanceToPoint(pt Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// RayTest intersects r against the plane, returning the distance along
// r.Dir and true when the crossing lies in front of the ray origin. Rays
// parallel to the plane (within Epsilon) miss.
func (p Plane) RayTest(r Ray) (float64, bool) {
	denom := p.Normal.Dot(r.Dir)
	if math.Abs(denom) <= Epsilon {
		return 0, false
	}
	t := -(p.Normal.Dot(r.Origin) + p.D) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Ray is an origin + direction (not required to be normalized).
type Ray struct {
	Origin, Dir Vec3
}

// Capsule is a swept sphere between two points.
type Capsule struct {
	A, B   Vec3
	Radius float64
}

// RayTest intersects r against b and returns the entry distance along
// r.Dir and true on hit, or 0 and false on miss; when r starts inside b the
// exit distance is returned. Uses the slab method.
func (b AABB) RayTest(r Ray) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	bmin := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	bmax := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < bmin[i] || origin[i] > bmax[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (bmin[i] - origin[i]) * inv
		t2 := (bmax[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// RayTest intersects r against the sphere, returning the nearest entry
// distance and true on hit.
func (s Sphere) RayTest(r Ray) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	bq := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := bq*bq - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-bq - sq) / (2 * a)
	t2 := (-bq + sq) / (2 * a)
	if t1 >= 0 {
		return t1, true
	}
	if t2 >= 0 {
		return t2, true
	}
	return 0, false
}

// SphereTest reports whether two spheres overlap.
func (s Sphere) SphereTest(o Sphere) bool {
	d := s.Center.DistanceTo(o.Center)
	return d <= s.Radius+o.Radius
}

// DistanceToPoint returns the distance from p to the nearest point on the sphere surface.
func (s Sphere) DistanceToPoint(p Vec3) float64 {
	return math.Abs(s.Center.DistanceTo(p) - s.Radius)
}

// DistanceToPoint returns the signed distance from p to the capsule
// surface; negative when p is inside.
func (c Capsule) DistanceToPoint(p Vec3) float64 {
	return PerpendicularFoot(c.A, c.B, p).DistanceTo(p) - c.Radius
}

// SphereTest reports whether the capsule and sphere overlap.
func (c Capsule) SphereTest(s Sphere) bool {
	return PerpendicularFoot(c.A, c.B, s.Center).DistanceTo(s.Center) <= c.Radius+s.Radius
}

// RayTest intersects r against the capsule, returning the nearest entry
// distance along r.Dir and true on hit. The cylindrical body and the two
// end-cap spheres are tested separately; the smallest non-negative hit wins.
func (c Capsule) RayTest(r Ray) (float64, bool) {
	best := math.Inf(1)
	hit := false

	ba := c.B.Sub(c.A)
	oa := r.Origin.Sub(c.A)
	baba := ba.Dot(ba)
	bard := ba.Dot(r.Dir)
	baoa := ba.Dot(oa)
	rdoa := r.Dir.Dot(oa)
	oaoa := oa.Dot(oa)
	qa := baba*r.Dir.Dot(r.Dir) - bard*bard
	qb := baba*rdoa - baoa*bard
	qc := baba*oaoa - baoa*baoa - c.Radius*c.Radius*baba
	if disc := qb*qb - qa*qc; disc >= 0 && math.Abs(qa) > Epsilon {
		t := (-qb - math.Sqrt(disc)) / qa
		// Accept only hits on the cylindrical body, between the two caps.
		if y := baoa + t*bard; t >= 0 && y > 0 && y < baba {
			best, hit = t, true
		}
	}
	for _, center := range [2]Vec3{c.A, c.B} {
		if t, ok := (Sphere{Center: center, Radius: c.Radius}).RayTest(r); ok && t < best {
			best, hit = t, true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// PerpendicularFoot returns the closest point on segment (a, b) to p.
func PerpendicularFoot(a, b, p Vec3) Vec3 {
	ab := b.Sub(a)
	l2 := ab.LenSqr()
	if l2 <= Epsilon {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Scale(t))
}

// TriangleContainsPoint reports whether p (assumed coplanar with the
// triangle) lies inside (a, b, c) using the three-edge cross-sign method.
// Points on an edge or vertex are treated as inside. Degenerate (collinear
// or zero-area) triangles report false.
func TriangleContainsPoint(a, b, c, p Vec3, normal Vec3) bool {
	area2 := b.Sub(a).Cross(c.Sub(a)).Dot(normal)
	if math.Abs(area2) <= Epsilon {
		return false
	}
	s1 := edgeSign(a, b, p, normal)
	s2 := edgeSign(b, c, p, normal)
	s3 := edgeSign(c, a, p, normal)
	hasNeg := s1 < -Epsilon || s2 < -Epsilon || s3 < -Epsilon
	hasPos := s1 > Epsilon || s2 > Epsilon || s3 > Epsilon
	return !(hasNeg && hasPos)
}

func edgeSign(a, b, p, normal Vec3) float64 {
	return b.Sub(a).Cross(p.Sub(a)).Dot(normal)
}
