package main

import (
	"fmt"
	"time"
)

// frameStats accumulates frame times and reports a summary once per window.
type frameStats struct {
	window  time.Duration
	elapsed time.Duration
	frames  int
	worst   time.Duration
}

func newFrameStats(window time.Duration) *frameStats {
	return &frameStats{window: window}
}

// Frame records one frame of duration d. It returns a summary line and true
// when a full window has elapsed, then starts a new window.
func (s *frameStats) Frame(d time.Duration) (string, bool) {
	s.frames++
	s.elapsed += d
	s.worst = max(s.worst, d)
	if s.elapsed < s.window {
		return "", false
	}
	fps := float64(s.frames) / s.elapsed.Seconds()
	line := fmt.Sprintf("%.0f fps, worst %.1f ms", fps, float64(s.worst)/float64(time.Millisecond))
	s.elapsed, s.frames, s.worst = 0, 0, 0
	return line, true
}
