// Package anim provides time-driven playback of visual transitions.
//
// Game logic commits instantly; animations replay the committed actions
// gradually by interpolating unit display positions. Start positions are
// always supplied by the caller from logical grid state at enqueue time,
// never read from the unit's current display position, so a backlog of
// queued animations cannot compound stale visual state.
package anim

import (
	"math"

	"github.com/samdwyer/hexmarch/internal/entity"
)

// Animation is one visual transition owned by a single unit.
type Animation interface {
	// Advance consumes up to dt seconds and returns the unconsumed
	// remainder (non-zero only when the animation finishes mid-step).
	Advance(dt float64) float64
	// Finished reports whether the animation has reached its end state.
	Finished() bool
	// Skip snaps the owning unit's display state to the end value.
	Skip()
	// UnitID identifies the unit whose display state this animation owns.
	UnitID() int
}

// Move linearly interpolates a unit's display position between two pixel
// points. Duration derives from pixel distance and a speed in hexes/second.
type Move struct {
	unit             *entity.Unit
	startX, startY   float64
	targetX, targetY float64
	duration         float64
	elapsed          float64
	done             bool
}

// NewMove creates a movement animation. start and target are pixel centers
// computed from logical grid positions; hexHeight converts the speed in
// hexes per second into pixels per second.
func NewMove(u *entity.Unit, startX, startY, targetX, targetY, speed, hexHeight float64) *Move {
	dist := math.Hypot(targetX-startX, targetY-startY)
	pixelsPerSecond := speed * hexHeight
	duration := 0.0
	if pixelsPerSecond > 0 {
		duration = dist / pixelsPerSecond
	}
	return &Move{
		unit:     u,
		startX:   startX,
		startY:   startY,
		targetX:  targetX,
		targetY:  targetY,
		duration: duration,
	}
}

// Advance implements Animation.
func (m *Move) Advance(dt float64) float64 {
	if m.done {
		return dt
	}
	m.elapsed += dt
	if m.elapsed >= m.duration {
		leftover := m.elapsed - m.duration
		m.finish()
		return leftover
	}
	progress := 1.0
	if m.duration > 0 {
		progress = m.elapsed / m.duration
	}
	m.unit.SetDisplay(
		m.startX+(m.targetX-m.startX)*progress,
		m.startY+(m.targetY-m.startY)*progress,
	)
	return 0
}

// Finished implements Animation.
func (m *Move) Finished() bool { return m.done }

// Skip implements Animation.
func (m *Move) Skip() { m.finish() }

// UnitID implements Animation.
func (m *Move) UnitID() int { return m.unit.ID }

func (m *Move) finish() {
	m.unit.SetDisplay(m.targetX, m.targetY)
	m.done = true
}

// Target returns the end pixel position (used by tests and resync).
func (m *Move) Target() (float64, float64) { return m.targetX, m.targetY }

// Start returns the start pixel position.
func (m *Move) Start() (float64, float64) { return m.startX, m.startY }

// Strike lunges a unit partway toward its target and back: out along the
// attacker->target direction for the first half of the duration, home for
// the second half. The attacker ends exactly where it started.
type Strike struct {
	unit         *entity.Unit
	targetID     int
	homeX, homeY float64
	offsetX      float64
	offsetY      float64
	duration     float64
	elapsed      float64
	done         bool
}

// NewStrike creates an attack animation. home and target are pixel centers
// of the attacker's and defender's logical cells; offset is how far the
// lunge travels in pixels. targetID names the defender, which stays on
// screen until this strike finishes even if the blow was fatal.
func NewStrike(u *entity.Unit, targetID int, homeX, homeY, targetX, targetY, offset, duration float64) *Strike {
	dx := targetX - homeX
	dy := targetY - homeY
	dist := math.Hypot(dx, dy)
	s := &Strike{unit: u, targetID: targetID, homeX: homeX, homeY: homeY, duration: duration}
	if dist > 0 {
		s.offsetX = dx / dist * offset
		s.offsetY = dy / dist * offset
	}
	return s
}

// Advance implements Animation.
func (s *Strike) Advance(dt float64) float64 {
	if s.done {
		return dt
	}
	s.elapsed += dt
	if s.elapsed >= s.duration {
		leftover := s.elapsed - s.duration
		s.finish()
		return leftover
	}
	progress := 1.0
	if s.duration > 0 {
		progress = s.elapsed / s.duration
	}
	// Out for the first half, back for the second.
	lunge := progress * 2
	if progress >= 0.5 {
		lunge = 2 - progress*2
	}
	s.unit.SetDisplay(s.homeX+s.offsetX*lunge, s.homeY+s.offsetY*lunge)
	return 0
}

// Finished implements Animation.
func (s *Strike) Finished() bool { return s.done }

// Skip implements Animation.
func (s *Strike) Skip() { s.finish() }

// UnitID implements Animation.
func (s *Strike) UnitID() int { return s.unit.ID }

// TargetID returns the defender's unit id.
func (s *Strike) TargetID() int { return s.targetID }

func (s *Strike) finish() {
	s.unit.SetDisplay(s.homeX, s.homeY)
	s.done = true
}
