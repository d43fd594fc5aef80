package types

// Camera is the minimal view the discovery core needs of the player's
// viewpoint: a world position and a projection into screen space.
type Camera interface {
	X() float64
	Y() float64
	WorldToScreen(worldX, worldY float64, canvasWidth, canvasHeight int) (screenX, screenY float64)
}

// VelocityReader is an optional camera capability. Save collection reads
// velocity only when the concrete camera implements it.
type VelocityReader interface {
	VelocityX() float64
	VelocityY() float64
}

// VelocityWriter is an optional camera capability. Load restores velocity
// only when the concrete camera implements it.
type VelocityWriter interface {
	SetVelocity(vx, vy float64)
}

// PositionWriter restores the camera position on load. Unlike velocity this
// is a required capability of any camera used with save/load.
type PositionWriter interface {
	SetPosition(x, y float64)
}

// DistanceReader is an optional camera capability reporting total distance
// traveled for the save-file player block.
type DistanceReader interface {
	DistanceTraveled() float64
}
