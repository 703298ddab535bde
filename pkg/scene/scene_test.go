package scene

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func TestSphereGrid(t *testing.T) {
	s := NewSphereGrid(3, 4, rand.New(rand.NewSource(7)))

	if len(s.Spheres) != 12 {
		t.Fatalf("Expected 12 spheres, got %d", len(s.Spheres))
	}
	if len(s.Triangles) != 0 || len(s.Lights) != 0 {
		t.Errorf("Expected spheres only, got %d triangles and %d lights", len(s.Triangles), len(s.Lights))
	}

	first := s.Spheres[0]
	if first.Center.X != -8 || first.Center.Y != -6 {
		t.Errorf("Expected first sphere at (-8, -6), got (%f, %f)", first.Center.X, first.Center.Y)
	}

	for i, sphere := range s.Spheres {
		if sphere.Radius != GridSphereRadius {
			t.Errorf("sphere %d: expected radius %f, got %f", i, GridSphereRadius, sphere.Radius)
		}
		if sphere.Center.Z < GridDepth-1 || sphere.Center.Z > GridDepth+1 {
			t.Errorf("sphere %d: depth %f outside jitter range", i, sphere.Center.Z)
		}
	}
}

func TestTriangleWall_FacesCamera(t *testing.T) {
	s := NewTriangleWall(rand.New(rand.NewSource(7)))

	if len(s.Triangles) != 2*wallCells*wallCells {
		t.Fatalf("Expected %d triangles, got %d", 2*wallCells*wallCells, len(s.Triangles))
	}

	want := core.NewVec3(0, 0, 1)
	for i, tri := range s.Triangles {
		if diff := cmp.Diff(tri.Normal(), want, approx); diff != "" {
			t.Errorf("triangle %d: normal does not face the camera (-got +want):\n%s", i, diff)
		}
	}
}

func TestNewDefaultScene_Deterministic(t *testing.T) {
	a := NewDefaultScene(4, 4, 42)
	b := NewDefaultScene(4, 4, 42)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Same seed produced different scenes (-a +b):\n%s", diff)
	}
	if len(a.Lights) != 2 {
		t.Errorf("Expected 2 default lights, got %d", len(a.Lights))
	}
	if got := a.GetPrimitiveCount(); got != 16+50 {
		t.Errorf("Expected 66 primitives, got %d", got)
	}
}

func TestMerge(t *testing.T) {
	a := New()
	a.AddLight(core.NewVec3(1, 1, 1))
	a.AddSphere(core.NewVec3(0, 0, -1), 1, core.Vec3{})

	b := NewShadowScene()
	a.Merge(b)
	a.Merge(nil)

	if len(a.Spheres) != 1+len(b.Spheres) || len(a.Triangles) != len(b.Triangles) || len(a.Lights) != 1+len(b.Lights) {
		t.Errorf("Unexpected merged sizes: %d spheres, %d triangles, %d lights", len(a.Spheres), len(a.Triangles), len(a.Lights))
	}

	// Existing primitives keep their indices
	if a.Spheres[0].Center != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected original sphere first, got %v", a.Spheres[0].Center)
	}
}

func TestEmptyScene(t *testing.T) {
	s := NewEmptyScene()
	if !s.IsEmpty() {
		t.Errorf("Expected empty scene, got %d primitives", s.GetPrimitiveCount())
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name, DefaultOptions())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s == nil {
				t.Fatal("Expected scene, got nil")
			}
		})
	}

	if _, err := ByName("nonexistent", DefaultOptions()); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestByName_SphereGridHasNoWall(t *testing.T) {
	s, err := ByName("spheregrid", Options{Rows: 2, Cols: 3, Seed: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Triangles) != 0 || len(s.Spheres) != 6 {
		t.Errorf("Expected 6 spheres and no triangles, got %d and %d", len(s.Spheres), len(s.Triangles))
	}
}
