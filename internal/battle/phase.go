// Package battle provides the turn engine that orchestrates an encounter:
// initiative, intents, action resolution, and the victory check.
package battle

// Phase represents the current phase of the encounter.
type Phase int

const (
	// PhaseRoundStart - rebuilding initiative and refilling action points
	PhaseRoundStart Phase = iota
	// PhaseUnitActing - waiting for the current actor's decision
	PhaseUnitActing
	// PhaseAnimationSettling - playing out queued animations before advancing
	PhaseAnimationSettling
	// PhaseCombatOver - terminal; the result summary is available
	PhaseCombatOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRoundStart:
		return "round_start"
	case PhaseUnitActing:
		return "unit_acting"
	case PhaseAnimationSettling:
		return "animation_settling"
	case PhaseCombatOver:
		return "combat_over"
	default:
		return "unknown"
	}
}

// Outcome is how the encounter ended, from the player's point of view.
type Outcome int

const (
	// OutcomeNone - the encounter is still running
	OutcomeNone Outcome = iota
	// OutcomeVictory - every enemy unit is dead
	OutcomeVictory
	// OutcomeDefeat - every player unit is dead
	OutcomeDefeat
	// OutcomeRetreat - the player withdrew
	OutcomeRetreat
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// IntentStatus tells the input layer what became of a submitted intent, so
// a rejection can be surfaced as feedback rather than silence.
type IntentStatus int

const (
	// IntentRejected - the intent was invalid; nothing changed, nothing logged
	IntentRejected IntentStatus = iota
	// IntentAccepted - logical state is committed; animation is in progress
	IntentAccepted
)

// String returns a human-readable status name.
func (s IntentStatus) String() string {
	switch s {
	case IntentRejected:
		return "rejected"
	case IntentAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}
