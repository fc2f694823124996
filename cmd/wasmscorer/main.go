//go:build js && wasm
// +build js,wasm

// Command wasmscorer exposes the scoring engine to JavaScript when compiled
// with GOOS=js GOARCH=wasm, the same pattern agg_go/cmd/wasm used to expose
// its rendering demos: register a handful of js.Func values on the global
// object and keep the goroutine alive with an empty select.
package main

import (
	"encoding/base64"
	"fmt"
	"syscall/js"

	scoreengine "github.com/learningletters/scoreengine"
)

func main() {
	fmt.Println("handwriting scoring engine (wasm) initializing...")

	js.Global().Set("scoreDrawing", js.FuncOf(scoreDrawing))
	js.Global().Set("renderReference", js.FuncOf(renderReference))

	select {}
}

// scoreDrawing(imageBase64PNG string, character string, fontBase64 string)
// returns a JS object matching ScoreResult, or {error: "<message>"}, where an
// engine failure's message is the scoreengine Error text (kind and reason).
func scoreDrawing(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorValue("scoreDrawing requires (imageBase64PNG, character, fontBase64)")
	}

	imgBytes, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return errorValue("decoding image base64: " + err.Error())
	}
	fontBytes, err := base64.StdEncoding.DecodeString(args[2].String())
	if err != nil {
		return errorValue("decoding font base64: " + err.Error())
	}
	character := firstRune(args[1].String())

	result, err := scoreengine.Score(imgBytes, character, fontBytes)
	if err != nil {
		return errorValue(err.Error())
	}

	return map[string]interface{}{
		"score":          result.Score,
		"stars":          result.Stars,
		"feedback":       result.Feedback,
		"coverage":       result.Coverage,
		"accuracy":       result.Accuracy,
		"similarity":     result.Similarity,
		"referenceImage": base64.StdEncoding.EncodeToString(result.ReferenceImage),
	}
}

// renderReference(character string, fontBase64 string, size int) returns the
// base64-encoded reference PNG, or {error: "..."}.
func renderReference(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorValue("renderReference requires (character, fontBase64, size)")
	}

	fontBytes, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return errorValue("decoding font base64: " + err.Error())
	}
	character := firstRune(args[0].String())
	size := args[2].Int()

	png, err := scoreengine.RenderReference(character, fontBytes, size)
	if err != nil {
		return errorValue(err.Error())
	}
	return base64.StdEncoding.EncodeToString(png)
}

func errorValue(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
