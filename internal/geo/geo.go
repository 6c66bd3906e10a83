package geo

import (
	"github.com/fmarker/extractor/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Waymark positions are stored as XYZ points in the game's own map
// coordinates. No SRID is attached; they are not geodetic.

// ToPoint converts a position to an XYZ point
func ToPoint(p core.Position3D) geom.Point {
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: p.X, Y: p.Y},
			Z:    p.Z,
			Type: geom.DimXYZ,
		},
	)
}

// WKT renders a position as well-known text, e.g. "POINT Z (1 -2 3)"
func WKT(p core.Position3D) string {
	return ToPoint(p).AsText()
}

