//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"syscall/js"

	"github.com/tenntenn/superast-cpp/backend/api"
	"github.com/tenntenn/superast-cpp/backend/model"
)

func main() {
	c := make(chan struct{})

	// Register lower function
	js.Global().Set("goLower", js.FuncOf(lowerWrapper))

	println("Go WASM module loaded successfully")

	<-c
}

// lowerWrapper wraps api.Lower for JavaScript: goLower(source, format).
func lowerWrapper(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{
			"error": "source parameter is required",
		}
	}

	req := &model.LowerRequest{Source: args[0].String()}
	if len(args) >= 2 {
		req.Format = args[1].String()
	}

	response, err := api.Lower(context.Background(), req)
	if err != nil {
		return map[string]any{
			"error": err.Error(),
		}
	}

	// Convert response to JSON
	var buf bytes.Buffer
	if err := model.Encode(&buf, response, true); err != nil {
		return map[string]any{
			"error": err.Error(),
		}
	}

	// Parse JSON string to JavaScript object
	return js.Global().Get("JSON").Call("parse", buf.String())
}
