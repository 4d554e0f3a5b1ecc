// Package plugin discovers external save-hook programs and runs them with
// the saved color on stdin.
package plugin

import (
	"encoding/json"
	"slices"
)

// ActionColorSaved is sent to plugins after a color has been saved.
const ActionColorSaved = "color_saved"

// Manifest describes a plugin's metadata and the actions it handles.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is written to a plugin's stdin.
type Request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config,omitempty"`
	Params json.RawMessage `json:"params"`
}

// Response is read from a plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ColorParams are the params of a color_saved request.
type ColorParams struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  [3]int `json:"rgb"`
	HSV  [3]int `json:"hsv"`
	HSL  [3]int `json:"hsl"`
	Mode string `json:"mode"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Plugin is a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the plugin declares action.
func (p *Plugin) Handles(action string) bool {
	return slices.Contains(p.Manifest.Actions, action)
}
