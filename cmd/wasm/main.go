//go:build js && wasm

// Command wasm exposes the trajectory engine to the browser. It registers
//
//	computeTrajectory(input) -> string
//
// where input is a TrajectoryInput given either as a JSON string or as a plain
// JavaScript object, and the result is the JSON-encoded TrajectoryLog. Failures
// are returned as JavaScript Error values so callers can test `instanceof Error`.
package main

import (
	"syscall/js"

	"github.com/cxd309/trajectory-engine/internal/engine"
)

func main() {
	js.Global().Set("computeTrajectory", js.FuncOf(computeTrajectory))
	select {}
}

func computeTrajectory(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return jsError("computeTrajectory: expected one argument, the trajectory input")
	}

	in := args[0]
	var input string
	switch in.Type() {
	case js.TypeString:
		input = in.String()
	case js.TypeObject:
		input = js.Global().Get("JSON").Call("stringify", in).String()
	default:
		return jsError("computeTrajectory: input must be a JSON string or an object, got " + in.Type().String())
	}

	out, err := engine.RunJSON(input)
	if err != nil {
		return jsError("computeTrajectory: " + err.Error())
	}
	return out
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
