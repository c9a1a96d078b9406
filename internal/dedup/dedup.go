// Package dedup drops chat lines that were already processed.
//
// The chat region is read repeatedly and the same lines come back on every
// capture, so each timestamped line is accepted only when its time is not
// older than the newest timestamp seen so far.
package dedup

import (
	"regexp"
	"strconv"
	"time"
)

var timestampRe = regexp.MustCompile(`[0-9]{2}:[0-9]{2}:[0-9]{2}`)

// Deduplicator tracks the high-water mark of chat timestamps.
type Deduplicator struct {
	high time.Time
}

// New returns a deduplicator whose high-water mark is start.
func New(start time.Time) *Deduplicator {
	return &Deduplicator{high: start}
}

// HighWater returns the newest accepted timestamp.
func (d *Deduplicator) HighWater() time.Time {
	return d.high
}

// Accept reports whether line should be processed. Lines without a valid
// HH:MM:SS timestamp are always accepted and do not move the mark.
func (d *Deduplicator) Accept(line string, now time.Time) bool {
	ts, ok := Timestamp(line, now)
	if !ok {
		return true
	}
	if ts.Before(d.high) {
		return false
	}
	d.high = ts
	return true
}

// Timestamp extracts the first HH:MM:SS in line and places it on now's date.
// A 23:xx stamp read just after midnight belongs to the previous day.
func Timestamp(line string, now time.Time) (time.Time, bool) {
	m := timestampRe.FindString(line)
	if m == "" {
		return time.Time{}, false
	}
	h, _ := strconv.Atoi(m[0:2])
	min, _ := strconv.Atoi(m[3:5])
	sec, _ := strconv.Atoi(m[6:8])
	if h > 23 || min > 59 || sec > 59 {
		return time.Time{}, false
	}

	ts := time.Date(now.Year(), now.Month(), now.Day(), h, min, sec, 0, now.Location())
	if h == 23 && now.Hour() == 0 {
		ts = ts.AddDate(0, 0, -1)
	}
	return ts, true
}
