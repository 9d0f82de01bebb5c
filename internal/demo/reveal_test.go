package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/pixelstep/internal/geom"
)

func TestReveal(t *testing.T) {
	points := []geom.Point{geom.Pt(1, 0), geom.Pt(2, 1), geom.Pt(3, 1), geom.Pt(4, 2), geom.Pt(5, 2)}
	start := time.Unix(1000, 0)

	r := NewReveal(points, 2, 100*time.Millisecond)
	require.False(t, r.Advance(start), "not started")
	require.Empty(t, r.Visible())

	r.Start(start)
	require.False(t, r.Advance(start.Add(99*time.Millisecond)))
	require.Empty(t, r.Visible())

	require.True(t, r.Advance(start.Add(100*time.Millisecond)))
	require.Equal(t, points[:2], r.Visible())
	require.False(t, r.Advance(start.Add(150*time.Millisecond)))

	// A late tick catches up on every batch that came due.
	require.True(t, r.Advance(start.Add(350*time.Millisecond)))
	require.Equal(t, points, r.Visible())
	require.True(t, r.Done())
	require.False(t, r.Advance(start.Add(time.Hour)))

	shown, total := r.Progress()
	require.Equal(t, 5, shown)
	require.Equal(t, 5, total)
}

func TestRevealOrderIndependentOfPacing(t *testing.T) {
	points := MirrorOctants([]geom.Point{geom.Pt(0, 3), geom.Pt(1, 3), geom.Pt(2, 2)}, geom.Pt(0, 0))
	start := time.Unix(0, 0)

	slow := NewReveal(points, 8, time.Second)
	slow.Start(start)
	for i := 1; !slow.Done(); i++ {
		slow.Advance(start.Add(time.Duration(i) * time.Second))
		require.Equal(t, points[:len(slow.Visible())], slow.Visible())
	}

	fast := NewReveal(points, 8, time.Second)
	fast.Finish()
	require.Equal(t, slow.Visible(), fast.Visible())
}

func TestRevealEmpty(t *testing.T) {
	r := NewReveal(nil, 0, time.Second)
	r.Start(time.Unix(0, 0))
	require.True(t, r.Done())
	require.False(t, r.Advance(time.Unix(10, 0)))
	require.Empty(t, r.Visible())
}
