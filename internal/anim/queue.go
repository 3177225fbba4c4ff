package anim

// Queue plays animations strictly in order: one active animation at a time,
// the next beginning the instant the previous completes, with leftover frame
// time carried across the boundary so chained playback never stalls.
type Queue struct {
	active  Animation
	pending []Animation
}

// NewQueue creates an empty animation queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends an animation to the back of the queue.
func (q *Queue) Enqueue(a Animation) {
	q.pending = append(q.pending, a)
}

// Update advances playback by dt seconds. A non-positive dt changes nothing:
// neither display positions nor queue state.
func (q *Queue) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for dt > 0 {
		if q.active == nil {
			if len(q.pending) == 0 {
				return
			}
			q.active = q.pending[0]
			q.pending = q.pending[1:]
		}
		dt = q.active.Advance(dt)
		if !q.active.Finished() {
			return
		}
		q.active = nil
	}
}

// SkipCurrent snaps the active animation to its end state and drops it.
// The next queued animation becomes active on the following Update.
func (q *Queue) SkipCurrent() {
	if q.active != nil {
		q.active.Skip()
		q.active = nil
		return
	}
	// Nothing active yet: skipping applies to the front of the backlog.
	if len(q.pending) > 0 {
		q.pending[0].Skip()
		q.pending = q.pending[1:]
	}
}

// SkipAll fast-forwards every queued animation to its end state.
func (q *Queue) SkipAll() {
	for !q.IsIdle() {
		q.SkipCurrent()
	}
}

// IsIdle reports whether no animation is active or pending. When idle, every
// unit's display position matches its logical cell.
func (q *Queue) IsIdle() bool {
	return q.active == nil && len(q.pending) == 0
}

// HasPending reports whether any queued or active animation involves the
// given unit, either as owner or as a strike's target. A dead unit stays
// visible while this returns true.
func (q *Queue) HasPending(unitID int) bool {
	if q.active != nil && involves(q.active, unitID) {
		return true
	}
	for _, a := range q.pending {
		if involves(a, unitID) {
			return true
		}
	}
	return false
}

func involves(a Animation, unitID int) bool {
	if a.UnitID() == unitID {
		return true
	}
	if s, ok := a.(interface{ TargetID() int }); ok {
		return s.TargetID() == unitID
	}
	return false
}

// Len returns the number of animations not yet completed.
func (q *Queue) Len() int {
	n := len(q.pending)
	if q.active != nil {
		n++
	}
	return n
}
