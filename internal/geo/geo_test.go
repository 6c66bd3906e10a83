package geo

import (
	"strings"
	"testing"

	"github.com/fmarker/extractor/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

func TestToPoint(t *testing.T) {
	point := ToPoint(core.Position3D{X: 100.5, Y: -200.25, Z: 50})

	coords, ok := point.Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if coords.X != 100.5 {
		t.Errorf("expected X=100.5, got %f", coords.X)
	}
	if coords.Y != -200.25 {
		t.Errorf("expected Y=-200.25, got %f", coords.Y)
	}
	if coords.Z != 50 {
		t.Errorf("expected Z=50, got %f", coords.Z)
	}
	if coords.Type != geom.DimXYZ {
		t.Errorf("expected XYZ point, got %v", coords.Type)
	}
}

func TestWKT(t *testing.T) {
	wkt := WKT(core.Position3D{X: 1, Y: -2, Z: 3.5})

	if !strings.HasPrefix(wkt, "POINT Z") {
		t.Errorf("expected POINT Z prefix, got %q", wkt)
	}
	if !strings.Contains(wkt, "1 -2 3.5") {
		t.Errorf("expected coordinates in %q", wkt)
	}
}


func TestToPoint_FromFixed(t *testing.T) {
	coords, ok := ToPoint(core.PositionFromFixed(1500, -2000, 30)).Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if coords.X != 1.5 || coords.Y != -2 || coords.Z != 0.03 {
		t.Errorf("unexpected coordinates %+v", coords)
	}
}
