package scene

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// facingTriangle returns a triangle in the plane z=depth whose normal points
// toward +Z and which covers the view axis
func facingTriangle(depth float64) (p1, p2, p3 core.Vec3) {
	return core.NewVec3(-5, -5, depth), core.NewVec3(5, -5, depth), core.NewVec3(0, 5, depth)
}

func TestClosestHit_Empty(t *testing.T) {
	s := New()
	hit := s.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))

	if hit.Kind != HitNone || hit.Ok() {
		t.Errorf("Expected no hit in empty scene, got %v", hit.Kind)
	}
}

func TestClosestHit_TriangleVersusSphere(t *testing.T) {
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		triDepth   float64
		sphereZ    float64
		wantKind   HitKind
		wantDist   float64
		wantPointZ float64
	}{
		{"triangle nearer", -5, -10, HitTriangle, 5, -5},
		{"sphere nearer", -10, -5, HitSphere, 4, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			p1, p2, p3 := facingTriangle(tt.triDepth)
			s.AddTriangle(p1, p2, p3, core.NewVec3(255, 0, 0))
			s.AddSphere(core.NewVec3(0, 0, tt.sphereZ), 1, core.NewVec3(0, 255, 0))

			hit := s.ClosestHit(ray)
			if hit.Kind != tt.wantKind {
				t.Fatalf("Expected %v, got %v", tt.wantKind, hit.Kind)
			}
			if hit.Index != 0 {
				t.Errorf("Expected index 0, got %d", hit.Index)
			}
			if math.Abs(hit.Distance-tt.wantDist) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", tt.wantDist, hit.Distance)
			}
			if diff := cmp.Diff(hit.Point, core.NewVec3(0, 0, tt.wantPointZ), approx); diff != "" {
				t.Errorf("Unexpected hit point (-got +want):\n%s", diff)
			}
		})
	}
}

func TestClosestHit_TieGoesToTriangle(t *testing.T) {
	s := New()

	// Sphere surface and triangle plane both sit at z = -4
	p1, p2, p3 := facingTriangle(-4)
	s.AddTriangle(p1, p2, p3, core.Vec3{})
	s.AddSphere(core.NewVec3(0, 0, -5), 1, core.Vec3{})

	hit := s.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if hit.Kind != HitTriangle {
		t.Errorf("Expected triangle to win the tie, got %v", hit.Kind)
	}
}

func TestClosestHit_PicksNearestWithinClass(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, -20), 1, core.Vec3{})
	s.AddSphere(core.NewVec3(0, 0, -10), 1, core.Vec3{})
	s.AddSphere(core.NewVec3(5, 0, -2), 1, core.Vec3{}) // off axis
	for _, depth := range []float64{-30, -15} {
		p1, p2, p3 := facingTriangle(depth)
		s.AddTriangle(p1, p2, p3, core.Vec3{})
	}

	hit := s.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if hit.Kind != HitSphere || hit.Index != 1 {
		t.Fatalf("Expected sphere 1, got %v %d", hit.Kind, hit.Index)
	}

	// Remove the spheres and the nearer triangle wins
	s.Spheres = nil
	hit = s.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if hit.Kind != HitTriangle || hit.Index != 1 {
		t.Fatalf("Expected triangle 1, got %v %d", hit.Kind, hit.Index)
	}
}

func TestClosestHit_DistanceFromRayOrigin(t *testing.T) {
	s := New()

	// Measured from the world origin the sphere is closer, but from the ray
	// origin the triangle is
	p1, p2, p3 := facingTriangle(40)
	s.AddTriangle(p1, p2, p3, core.Vec3{})
	s.AddSphere(core.NewVec3(0, 0, 0), 1, core.Vec3{})

	hit := s.ClosestHit(core.NewRay(core.NewVec3(0, 0, 50), core.NewVec3(0, 0, -1)))
	if hit.Kind != HitTriangle {
		t.Errorf("Expected triangle, got %v", hit.Kind)
	}
}

func TestOccluded(t *testing.T) {
	s := New()
	s.AddSphere(core.NewVec3(0, 0, -10), 1, core.Vec3{})

	if !s.Occluded(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))) {
		t.Error("Expected ray toward sphere to be occluded")
	}
	if s.Occluded(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))) {
		t.Error("Expected ray away from sphere to be clear")
	}
}

func TestNormalAndColor(t *testing.T) {
	s := New()
	p1, p2, p3 := facingTriangle(-5)
	s.AddTriangle(p1, p2, p3, core.NewVec3(1, 2, 3))
	s.AddSphere(core.NewVec3(0, 10, 0), 2, core.NewVec3(4, 5, 6))

	triHit := Hit{Kind: HitTriangle, Index: 0, Point: core.NewVec3(0, 0, -5)}
	sphHit := Hit{Kind: HitSphere, Index: 0, Point: core.NewVec3(0, 12, 0)}

	tests := []struct {
		name       string
		hit        Hit
		wantNormal core.Vec3
		wantColor  core.Vec3
	}{
		{"triangle", triHit, core.NewVec3(0, 0, 1), core.NewVec3(1, 2, 3)},
		{"sphere", sphHit, core.NewVec3(0, 1, 0), core.NewVec3(4, 5, 6)},
		{"none", Hit{Kind: HitNone}, core.Vec3{}, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(s.Normal(tt.hit), tt.wantNormal, approx); diff != "" {
				t.Errorf("Unexpected normal (-got +want):\n%s", diff)
			}
			if diff := cmp.Diff(s.Color(tt.hit), tt.wantColor); diff != "" {
				t.Errorf("Unexpected color (-got +want):\n%s", diff)
			}
		})
	}
}

func TestHitKind_String(t *testing.T) {
	for kind, want := range map[HitKind]string{
		HitNone:     "none",
		HitTriangle: "triangle",
		HitSphere:   "sphere",
		HitKind(9):  "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("HitKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
