// Command debug_ocr runs the chat pipeline on a saved screenshot: anchor
// search, colour filter, OCR and rule matching.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ConserveLee/barricade-timer/internal/config"
	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen/tesseract"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	screenPath := flag.String("screen", "assets/debug/1.png", "saved screenshot")
	anchorPath := flag.String("anchor", cfg.Chat.Anchor, "chat anchor template")
	outPath := flag.String("out", "debug_filtered.png", "where to write the filtered chat image")
	hard := flag.Bool("hard", true, "match with hard mode timings")
	flag.Parse()

	screenImg, err := screen.LoadImage(*screenPath)
	if err != nil {
		fmt.Printf("Failed to load screen: %v\n", err)
		return
	}
	anchorImg, err := screen.LoadImage(*anchorPath)
	if err != nil {
		fmt.Printf("Failed to load anchor: %v\n", err)
		return
	}
	fmt.Printf("Screen size: %dx%d\n", screenImg.Bounds().Dx(), screenImg.Bounds().Dy())
	fmt.Printf("Anchor size: %dx%d\n", anchorImg.Bounds().Dx(), anchorImg.Bounds().Dy())
	fmt.Printf("Using MaxFailRate: %.0f%%\n", constants.MaxFailRate*100)

	searcher := screen.NewSearcher()

	fmt.Printf("\n=== Anchor search ===\n")
	for _, tolerance := range []float64{float64(cfg.Chat.Tolerance), 80} {
		matches := searcher.FindAllTemplates(screenImg, anchorImg, image.Rectangle{}, tolerance)
		fmt.Printf("  Tolerance %.0f: %d matches", tolerance, len(matches))
		if len(matches) > 0 {
			fmt.Printf(" -> %v", matches)
		}
		fmt.Println()
	}

	at, ok := searcher.FindTemplate(screenImg, anchorImg, image.Rectangle{}, float64(cfg.Chat.Tolerance))
	if !ok {
		fmt.Println("Anchor not found, nothing to read.")
		return
	}

	region := cfg.Chat.Region.Image().Add(at).Intersect(screenImg.Bounds())
	fmt.Printf("\n=== Chat region %v ===\n", region)

	sub, ok := screenImg.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		fmt.Println("Screenshot type does not support cropping")
		return
	}
	chatImg := sub.SubImage(region)

	filtered := screen.FilterChatColors(chatImg, screen.ChatColors, float64(cfg.Chat.ColorTolerance))
	if err := savePNG(*outPath, filtered); err != nil {
		fmt.Printf("Failed to save filtered image: %v\n", err)
	} else {
		fmt.Printf("Filtered image: %s\n", *outPath)
	}

	ocr, err := tesseract.New(cfg.OCR.Language)
	if err != nil {
		fmt.Printf("Failed to start OCR: %v\n", err)
		return
	}
	defer ocr.Close()

	text, err := ocr.Recognize(filtered)
	if err != nil {
		fmt.Printf("OCR failed: %v\n", err)
		return
	}

	fmt.Printf("\n=== Lines ===\n")
	m := trigger.NewMatcher()
	ctx := trigger.Context{HardMode: *hard}
	for _, line := range screen.SplitLines(text) {
		ev := m.Match(trigger.Normalize(line), ctx)
		if ev.Kind == trigger.None {
			fmt.Printf("  %-60q\n", line)
			continue
		}
		fmt.Printf("  %-60q -> %s [%s]\n", line, ev, ev.Rule)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
