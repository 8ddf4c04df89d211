// Package replay computes the timing of an animated stroke replay.
//
// Lines are drawn one after another in their stored order. Each line takes
// time proportional to its length, so a replay moves the pen at a constant
// speed regardless of how densely the stroke was sampled.
package replay

import (
	"math"
	"time"

	"github.com/pstuifzand/sketchboard/internal/geom"
	"github.com/pstuifzand/sketchboard/internal/model"
)

// DefaultBaseSpeed is the pen speed in canvas pixels per second at speed 1
const DefaultBaseSpeed = 500.0

// MaxSegmentDuration caps the time of a single line or loop pause. Links
// with an absurdly small speed would otherwise overflow time.Duration.
const MaxSegmentDuration = 24 * time.Hour

// Segment is the time slot of one line
type Segment struct {
	Index    int
	Length   float64
	Start    time.Duration
	Duration time.Duration
}

// End returns when the line is fully drawn
func (s Segment) End() time.Duration {
	return addDuration(s.Start, s.Duration)
}

// Schedule is the replay timeline of a drawing
type Schedule struct {
	Segments []Segment
	Total    time.Duration
	Loop     bool
	Interval time.Duration // pause between loop iterations
	Wipe     *float64      // passed through to the renderer
	easing   Easing
}

// NewSchedule lays out lines according to opts. baseSpeed <= 0 selects DefaultBaseSpeed.
func NewSchedule(lines []geom.Line, opts model.ReplayOptions, baseSpeed float64) *Schedule {
	if baseSpeed <= 0 {
		baseSpeed = DefaultBaseSpeed
	}
	pxPerSecond := baseSpeed * opts.EffectiveSpeed()

	s := &Schedule{
		Segments: make([]Segment, len(lines)),
		Loop:     opts.Looping(),
		Wipe:     opts.Wipe,
		easing:   EasingByName(opts.EasingName()),
	}
	if opts.LoopInterval != nil && *opts.LoopInterval > 0 {
		s.Interval = toDuration(*opts.LoopInterval / 1000)
	}

	var at time.Duration
	for i, line := range lines {
		length := geom.LineLength(line)
		d := toDuration(length / pxPerSecond)
		s.Segments[i] = Segment{Index: i, Length: length, Start: at, Duration: d}
		at = addDuration(at, d)
	}
	s.Total = at
	return s
}

// Cycle returns the length of one loop iteration including the pause
func (s *Schedule) Cycle() time.Duration {
	if !s.Loop {
		return s.Total
	}
	return addDuration(s.Total, s.Interval)
}

// toDuration converts seconds to a Duration, capped at MaxSegmentDuration
func toDuration(secs float64) time.Duration {
	if !(secs > 0) {
		return 0
	}
	return time.Duration(math.Min(secs*float64(time.Second), float64(MaxSegmentDuration)))
}

// addDuration adds two non-negative durations, saturating instead of wrapping
func addDuration(a, b time.Duration) time.Duration {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Done reports whether a non-looping replay has finished at t
func (s *Schedule) Done(t time.Duration) bool {
	return !s.Loop && t >= s.Total
}

// Progress returns, for every line, the eased fraction drawn at time t
func (s *Schedule) Progress(t time.Duration) []float64 {
	if s.Loop && s.Cycle() > 0 {
		t %= s.Cycle()
	}

	out := make([]float64, len(s.Segments))
	for i, seg := range s.Segments {
		switch {
		case t < seg.Start:
			out[i] = 0
		case seg.Duration == 0 || t >= seg.End():
			out[i] = 1
		default:
			f := float64(t-seg.Start) / float64(seg.Duration)
			out[i] = s.easing(f)
		}
	}
	return out
}

// Frame returns the visible part of every line at time t
func (s *Schedule) Frame(lines []geom.Line, t time.Duration) []geom.Line {
	progress := s.Progress(t)
	out := make([]geom.Line, 0, len(lines))
	for i, line := range lines {
		if i >= len(progress) || progress[i] <= 0 {
			continue
		}
		out = append(out, Partial(line, progress[i]))
	}
	return out
}

// Partial returns the leading part of line covering fraction of its length.
// The last point is interpolated so the cut lands exactly on the fraction.
func Partial(line geom.Line, fraction float64) geom.Line {
	if len(line) == 0 || fraction <= 0 {
		return nil
	}
	if fraction >= 1 || len(line) == 1 {
		return append(geom.Line(nil), line...)
	}

	target := geom.LineLength(line) * fraction
	out := geom.Line{line[0]}
	walked := 0.0
	for i := 1; i < len(line); i++ {
		d := geom.Distance(line[i-1], line[i])
		if walked+d >= target {
			t := 0.0
			if d > 0 {
				t = math.Min(1, (target-walked)/d)
			}
			return append(out, geom.Lerp(line[i-1], line[i], t))
		}
		walked += d
		out = append(out, line[i])
	}
	return out
}
