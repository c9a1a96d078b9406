package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"

	"github.com/ConserveLee/barricade-timer/app/overlay"
	settingsui "github.com/ConserveLee/barricade-timer/app/settings"
	"github.com/ConserveLee/barricade-timer/app/tools"
	"github.com/ConserveLee/barricade-timer/internal/config"
	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/encounter"
	"github.com/ConserveLee/barricade-timer/internal/engine"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen/tesseract"
	"github.com/ConserveLee/barricade-timer/internal/journal"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/scheduler"
	"github.com/ConserveLee/barricade-timer/internal/settings"
	"github.com/ConserveLee/barricade-timer/internal/webview"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ocr, err := tesseract.New(cfg.OCR.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocr: %v\n", err)
		os.Exit(1)
	}
	defer ocr.Close()

	myApp := app.NewWithID("com.conservelee.barricade-timer")
	myWindow := myApp.NewWindow("Barricade Timer")
	myWindow.Resize(fyne.NewSize(420, 560))

	logData := binding.NewStringList()
	appLogger := logger.NewAppLogger(logData, cfg.Debug)
	store := settings.NewStore(myApp.Preferences())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Outputs ---
	view := overlay.NewView()
	outputs := display.Fanout{view}
	if cfg.Web.Enabled {
		hub := webview.NewHub(appLogger)
		outputs = append(outputs, hub)
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.Web.Addr); err != nil {
				appLogger.Error("Web mirror stopped: %v", err)
			}
		}()
	}

	// --- Encounter ---
	loop := scheduler.NewLoop()
	loop.Start()

	eng := encounter.NewEngine(loop, outputs, store, appLogger)
	stopJournal := func() error { return nil }
	if cfg.Journal.Enabled {
		js, err := journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			appLogger.Error("Journal disabled: %v", err)
		} else {
			w := journal.NewWriter(js, appLogger)
			eng.SetRecorder(w)
			stopJournal = w.Start(ctx)
		}
	}
	loop.Post(eng.Reset)

	// --- Chat source ---
	var displayID atomic.Int64
	displayID.Store(int64(cfg.Display))

	searcher := screen.NewSearcher()
	searcher.SetDisplayID(cfg.Display)
	searcher.SetDebugFunc(appLogger.Debug)

	var anchor image.Image
	if img, err := screen.LoadImage(cfg.Chat.Anchor); err != nil {
		appLogger.Error("Chat anchor not loaded (%v). Crop one in Tools.", err)
	} else {
		anchor = img
	}

	reader := screen.NewChatReader(searcher, searcher, ocr, screen.ChatConfig{
		Anchor:         anchor,
		Region:         cfg.Chat.Region.Image(),
		Tolerance:      float64(cfg.Chat.Tolerance),
		ColorTolerance: float64(cfg.Chat.ColorTolerance),
	})
	reader.SetDebugFunc(appLogger.Debug)

	monitor := engine.NewMonitor(reader, eng, loop.Post, appLogger)
	monitor.Config.AcquireInterval = cfg.Scan.AcquireInterval
	monitor.Config.PollInterval = cfg.Scan.PollInterval

	// --- UI ---
	tabs := container.NewAppTabs(
		container.NewTabItem("Timer", overlay.NewOverlayPanel(view, overlay.Controls{
			Monitor: monitor,
			Engine:  eng,
			Post:    loop.Post,
			SetDisplay: func(id int) {
				displayID.Store(int64(id))
				searcher.SetDisplayID(id)
			},
			Display: cfg.Display,
		}, logData, appLogger)),
		container.NewTabItem("Alerts", settingsui.NewSettingsPanel(store, func(hard bool) {
			appLogger.Info("Hard mode: %v", hard)
		})),
		container.NewTabItem("Tools", tools.NewToolsPanel(myWindow, tools.Options{
			AnchorPath: cfg.Chat.Anchor,
			Display:    func() int { return int(displayID.Load()) },
			Anchor:     reader.Anchor,
			OnAnchorSaved: func(img image.Image) {
				reader.SetAnchor(img)
				appLogger.Info("Chat anchor updated")
			},
		})),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	myWindow.SetContent(tabs)
	myWindow.SetOnClosed(monitor.Stop)
	myWindow.ShowAndRun()

	// The loop is the only journal producer, so it stops first.
	monitor.Stop()
	loop.Stop()
	if err := stopJournal(); err != nil {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
	}
	cancel()
}
