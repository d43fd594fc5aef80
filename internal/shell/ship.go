package shell

import (
	"math"
	"sync"
)

// Ship is the player viewpoint for the interactive shell: a position, a
// velocity and an odometer. It implements the camera contract plus every
// optional capability, so save/load round-trips the full player block.
type Ship struct {
	mu       sync.Mutex
	x, y     float64
	vx, vy   float64
	traveled float64
}

// NewShip creates a ship at the origin.
func NewShip() *Ship {
	return &Ship{}
}

func (s *Ship) X() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x
}

func (s *Ship) Y() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.y
}

// WorldToScreen projects a world position onto a canvas centered on the
// ship.
func (s *Ship) WorldToScreen(worldX, worldY float64, canvasWidth, canvasHeight int) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return worldX - s.x + float64(canvasWidth)/2, worldY - s.y + float64(canvasHeight)/2
}

func (s *Ship) VelocityX() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vx
}

func (s *Ship) VelocityY() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vy
}

func (s *Ship) SetVelocity(vx, vy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vx, s.vy = vx, vy
}

func (s *Ship) SetPosition(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
}

func (s *Ship) DistanceTraveled() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traveled
}

// MoveBy translates the ship, records the leg on the odometer and leaves
// the velocity pointing along the leg.
func (s *Ship) MoveBy(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x += dx
	s.y += dy
	s.vx, s.vy = dx, dy
	s.traveled += math.Hypot(dx, dy)
}
