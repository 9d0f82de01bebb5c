package demo

import (
	"time"

	"github.com/irfansharif/pixelstep/internal/geom"
)

// Reveal paces the display of an already computed point sequence: once
// started, another batch of points becomes visible every interval. It never
// alters the sequence itself.
type Reveal struct {
	points   []geom.Point
	batch    int
	interval time.Duration

	shown   int
	next    time.Time
	started bool
}

// NewReveal returns a reveal over points showing batch points per interval.
func NewReveal(points []geom.Point, batch int, interval time.Duration) *Reveal {
	if batch < 1 {
		batch = 1
	}
	return &Reveal{points: points, batch: batch, interval: interval}
}

// Start hides everything and schedules the first batch one interval after now.
func (r *Reveal) Start(now time.Time) {
	r.shown = 0
	r.next = now.Add(r.interval)
	r.started = true
}

// Advance reveals every batch that has come due by now, and reports whether
// anything new became visible.
func (r *Reveal) Advance(now time.Time) bool {
	if !r.started || r.Done() {
		return false
	}

	changed := false
	for !r.Done() && !now.Before(r.next) {
		r.shown = min(r.shown+r.batch, len(r.points))
		r.next = r.next.Add(r.interval)
		changed = true
	}
	return changed
}

// Finish makes the whole sequence visible at once.
func (r *Reveal) Finish() {
	r.started = true
	r.shown = len(r.points)
}

// Visible returns the revealed prefix of the sequence.
func (r *Reveal) Visible() []geom.Point { return r.points[:r.shown] }

// Done reports whether the whole sequence is visible.
func (r *Reveal) Done() bool { return r.shown >= len(r.points) }

// Progress returns how many points are visible out of the total.
func (r *Reveal) Progress() (shown, total int) { return r.shown, len(r.points) }
