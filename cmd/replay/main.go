// Command replay feeds a chat transcript through the encounter engine and
// prints every display change to the terminal.
//
//	replay -speed 1 testdata/p7.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/journal"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/settings"
)

func main() {
	hard := flag.Bool("hard", true, "hard mode (21s attack timer)")
	speed := flag.Float64("speed", 0, "pace lines by their timestamps at this rate; 0 replays instantly")
	tail := flag.Duration("tail", 15*time.Second, "virtual time to run after the last line")
	disable := flag.String("disable", "", "comma-separated alert keys to turn off (e.g. greenFlips,subjugation)")
	journalPath := flag.String("journal", "", "also record the replay to this journal database")
	debug := flag.Bool("debug", false, "print debug logs")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replay [flags] transcript.txt")
		flag.PrintDefaults()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open transcript: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	prefs := settings.NewMemory(*hard)
	for _, k := range strings.Split(*disable, ",") {
		if k = strings.TrimSpace(k); k != "" {
			prefs.SetAlertEnabled(settings.Key(k), false)
		}
	}

	log := logger.NewConsoleLogger(*debug)
	opts := options{
		Prefs: prefs,
		Speed: *speed,
		Tail:  *tail,
		Date:  time.Now(),
		Log:   log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *journalPath != "" {
		store, err := journal.Open(ctx, *journalPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "journal: %v\n", err)
			os.Exit(1)
		}
		w := journal.NewWriter(store, log)
		opts.Recorder = w
		stop := w.Start(ctx)
		defer func() {
			if err := stop(); err != nil {
				fmt.Fprintf(os.Stderr, "journal: %v\n", err)
			}
		}()
	}

	stats, err := replay(f, os.Stdout, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d lines, %d matched, %s virtual time\n", stats.Lines, stats.Matched, stats.Elapsed)
}
