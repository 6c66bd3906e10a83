// pkg/core/types.go
package core

// FixedPointScale converts the save file's fixed-point integers to game units.
const FixedPointScale = 1000.0

// Position3D represents a 3D coordinate in game units
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"` // height
	Z float64 `json:"z"`
}

// PositionFromFixed builds a Position3D from raw fixed-point components.
func PositionFromFixed(x, y, z int32) Position3D {
	return Position3D{
		X: float64(x) / FixedPointScale,
		Y: float64(y) / FixedPointScale,
		Z: float64(z) / FixedPointScale,
	}
}
