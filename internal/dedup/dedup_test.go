package dedup

import (
	"testing"
	"time"
)

func TestAcceptSkipsOlderLines(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 30, 0, 0, time.UTC)
	d := New(time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC))

	steps := []struct {
		line string
		want bool
	}{
		{"[12:10:00] Amascut: Grovel!", true},
		{"[12:10:00] Amascut: Pathetic!", true}, // equal timestamps pass
		{"[12:09:59] Amascut: Weak", false},
		{"[12:10:05] Amascut: Enough", true},
		{"[12:10:00] Amascut: Grovel!", false},
		{"Amascut: no timestamp at all", true},
	}
	for i, s := range steps {
		if got := d.Accept(s.line, now); got != s.want {
			t.Errorf("step %d %q: Accept = %v, want %v", i, s.line, got, s.want)
		}
	}
	if want := time.Date(2026, 5, 2, 12, 10, 5, 0, time.UTC); !d.HighWater().Equal(want) {
		t.Errorf("high water = %v, want %v", d.HighWater(), want)
	}
}

func TestAcceptRejectsLinesBeforeStart(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 30, 0, 0, time.UTC)
	d := New(now)

	if d.Accept("[12:29:59] old scrollback", now) {
		t.Error("line older than the start time was accepted")
	}
	if !d.Accept("[12:30:00] fresh", now) {
		t.Error("line at the start time was rejected")
	}
}

func TestMidnightRollover(t *testing.T) {
	now := time.Date(2026, 5, 3, 0, 0, 30, 0, time.UTC)
	ts, ok := Timestamp("[23:59:58] Amascut: Enough", now)
	if !ok {
		t.Fatal("timestamp not found")
	}
	if want := time.Date(2026, 5, 2, 23, 59, 58, 0, time.UTC); !ts.Equal(want) {
		t.Errorf("timestamp = %v, want %v", ts, want)
	}

	d := New(time.Date(2026, 5, 2, 23, 59, 0, 0, time.UTC))
	if !d.Accept("[23:59:58] late line", now) {
		t.Error("late line should be accepted")
	}
	if !d.Accept("[00:00:10] after midnight", now) {
		t.Error("first line after midnight should be accepted")
	}
	if d.Accept("[23:59:59] stale line", now) {
		t.Error("pre-midnight line after the mark should be rejected")
	}
}

func TestInvalidTimestampIsIgnored(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	d := New(now)

	for _, line := range []string{"[99:99:99] garbled", "[12:61:00] garbled", "12:00 short"} {
		if _, ok := Timestamp(line, now); ok {
			t.Errorf("%q parsed as a timestamp", line)
		}
		if !d.Accept(line, now) {
			t.Errorf("%q should be treated as untimestamped", line)
		}
	}
	if !d.HighWater().Equal(now) {
		t.Error("untimestamped lines moved the high water mark")
	}
}
