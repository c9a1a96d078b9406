package overlay

import (
	"fmt"

	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/encounter"
	"github.com/ConserveLee/barricade-timer/internal/logger"
)

// Monitor is the chat ingestion loop.
type Monitor interface {
	Start()
	Stop()
}

// Controls are the hooks the panel drives.
type Controls struct {
	Monitor    Monitor
	Engine     *encounter.Engine
	Post       func(func()) // Queues work on the encounter loop
	SetDisplay func(int)
	Display    int // Initially selected display
}

// NewOverlayPanel creates the main tab: the two regions, monitor controls,
// manual timer controls and the log.
func NewOverlayPanel(view *View, ctl Controls, logData binding.StringList, log logger.Logger) fyne.CanvasObject {
	// 1. Screen Selector
	displayOptions := displayOptions()
	displaySelect := widget.NewSelect(displayOptions, func(selected string) {
		var id int
		if _, err := fmt.Sscanf(selected, "Display %d", &id); err != nil {
			id = 0
		}
		ctl.SetDisplay(id)
		log.Info("Switched to Display %d", id)
	})
	if ctl.Display < len(displayOptions) {
		displaySelect.SetSelected(displayOptions[ctl.Display])
	} else {
		displaySelect.SetSelected(displayOptions[0])
	}

	// 2. Logs
	logList := widget.NewListWithData(
		logData,
		func() fyne.CanvasObject { return widget.NewLabel("Log entry template") },
		func(i binding.DataItem, o fyne.CanvasObject) { o.(*widget.Label).Bind(i.(binding.String)) },
	)

	// Auto-scroll
	logData.AddListener(binding.NewDataListener(func() {
		list, _ := logData.Get()
		if len(list) > 0 {
			logList.ScrollToBottom()
		}
	}))

	// 3. Monitor buttons
	startBtn := widget.NewButton("Start", nil)
	stopBtn := widget.NewButton("Stop", nil)
	stopBtn.Disable()
	startBtn.Importance = widget.HighImportance

	startBtn.OnTapped = func() {
		startBtn.Disable()
		stopBtn.Enable()
		displaySelect.Disable()
		ctl.Monitor.Start()
	}

	stopBtn.OnTapped = func() {
		ctl.Monitor.Stop()
		stopBtn.Disable()
		startBtn.Enable()
		displaySelect.Enable()
	}

	// 4. Manual timer controls
	testBtn := widget.NewButton(fmt.Sprintf("Test %s", constants.SpecialPhase), func() {
		ctl.Post(func() { ctl.Engine.Timer().Start(constants.SpecialPhase) })
	})
	cancelBtn := widget.NewButton("Cancel", func() {
		ctl.Post(func() { ctl.Engine.Timer().Cancel() })
	})
	resetBtn := widget.NewButton("Reset", func() {
		ctl.Post(ctl.Engine.Reset)
	})

	regions := container.NewVBox(view.Timer, view.Status)

	controls := container.NewVBox(
		regions,
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel("Screen:"), displaySelect),
		container.NewHBox(startBtn, stopBtn),
		container.NewHBox(widget.NewLabel("Debug:"), testBtn, cancelBtn, resetBtn),
		widget.NewSeparator(),
		widget.NewLabel("Log:"),
	)

	return container.NewBorder(controls, nil, nil, nil, logList)
}

func displayOptions() []string {
	n := screenshot.NumActiveDisplays()
	var opts []string
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		opts = append(opts, fmt.Sprintf("Display %d (%dx%d)", i, bounds.Dx(), bounds.Dy()))
	}
	if len(opts) == 0 {
		opts = []string{"Display 0 (Default)"}
	}
	return opts
}
