package main

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/dedup"
	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/encounter"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/scheduler"
	"github.com/ConserveLee/barricade-timer/internal/settings"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

type options struct {
	Prefs    settings.Preferences
	Speed    float64 // 0 = no real-time pacing
	Tail     time.Duration
	Date     time.Time // Day the transcript's HH:MM:SS stamps belong to
	Log      logger.Logger
	Recorder encounter.Recorder
}

type stats struct {
	Lines   int
	Matched int
	Elapsed time.Duration
}

// replay runs every line of r through an engine on a virtual clock. The
// clock jumps to each line's timestamp, so timers fire exactly as they
// would have live.
func replay(r io.Reader, out io.Writer, opts options) (stats, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return stats{}, fmt.Errorf("read transcript: %w", err)
	}

	start := startTime(lines, opts.Date)
	clock := scheduler.NewManual(start)
	term := display.NewTerminal(out, clock.Now)

	eng := encounter.NewEngine(clock, term, opts.Prefs, opts.Log)
	if opts.Recorder != nil {
		eng.SetRecorder(opts.Recorder)
	}
	eng.Reset()

	var st stats
	for _, line := range lines {
		if ts, ok := dedup.Timestamp(line, clock.Now()); ok && ts.After(clock.Now()) {
			pace(ts.Sub(clock.Now()), opts.Speed)
			clock.AdvanceTo(ts)
		}
		st.Lines++
		if ev := eng.HandleLine(line); ev.Kind != trigger.None {
			st.Matched++
		}
	}

	pace(opts.Tail, opts.Speed)
	clock.Advance(opts.Tail)
	st.Elapsed = clock.Now().Sub(start)
	return st, nil
}

// startTime is the first timestamp in the transcript, or midnight of date
// when there is none.
func startTime(lines []string, date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	for _, l := range lines {
		// Noon keeps a leading 23:xx stamp on date itself.
		if ts, ok := dedup.Timestamp(l, day.Add(12*time.Hour)); ok {
			return ts
		}
	}
	return day
}

func pace(d time.Duration, speed float64) {
	if speed <= 0 || d <= 0 {
		return
	}
	time.Sleep(time.Duration(float64(d) / speed))
}
