// Command scorecli is a small developer tool for exercising the scoring
// engine against local files, in the vein of agg_go's examples/*/main.go
// programs: a single flag-driven main, no subcommand framework.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	scoreengine "github.com/learningletters/scoreengine"
)

func main() {
	var (
		imagePath = flag.String("image", "", "path to the submitted drawing PNG")
		fontPath  = flag.String("font", "", "path to a TrueType or OpenType font file")
		character = flag.String("char", "A", "target character (first rune is used)")
		refOut    = flag.String("ref-out", "", "optional path to write the reference PNG to")
		renderOnly = flag.Bool("render-only", false, "render the reference glyph and exit, instead of scoring")
		size      = flag.Int("size", scoreengine.CanvasSize, "output size for -render-only")
	)
	flag.Parse()

	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "scorecli: -font is required")
		os.Exit(2)
	}
	fontBytes, err := os.ReadFile(*fontPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scorecli:", err)
		os.Exit(1)
	}
	r := firstRune(*character)

	if *renderOnly {
		png, err := scoreengine.RenderReference(r, fontBytes, *size)
		if err != nil {
			fmt.Fprintln(os.Stderr, "scorecli:", err)
			os.Exit(1)
		}
		if *refOut == "" {
			fmt.Fprintln(os.Stderr, "scorecli: -ref-out is required with -render-only")
			os.Exit(2)
		}
		if err := os.WriteFile(*refOut, png, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "scorecli:", err)
			os.Exit(1)
		}
		return
	}

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "scorecli: -image is required unless -render-only is set")
		os.Exit(2)
	}
	imageBytes, err := os.ReadFile(*imagePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scorecli:", err)
		os.Exit(1)
	}

	result, err := scoreengine.Score(imageBytes, r, fontBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scorecli:", err)
		os.Exit(1)
	}

	if *refOut != "" {
		if err := os.WriteFile(*refOut, result.ReferenceImage, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "scorecli:", err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(struct {
		Score      int    `json:"score"`
		Stars      int    `json:"stars"`
		Feedback   string `json:"feedback"`
		Coverage   int    `json:"coverage"`
		Accuracy   int    `json:"accuracy"`
		Similarity int    `json:"similarity"`
	}{
		Score:      result.Score,
		Stars:      result.Stars,
		Feedback:   result.Feedback,
		Coverage:   result.Coverage,
		Accuracy:   result.Accuracy,
		Similarity: result.Similarity,
	})
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
