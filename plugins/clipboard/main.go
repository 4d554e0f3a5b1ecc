// Package main provides a save hook that copies the saved color to the
// system clipboard.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ColorParams is the subset of the saved color this plugin reads.
type ColorParams struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  [3]int `json:"rgb"`
}

// Config selects what gets copied: "hex" (default), "rgb" or "name".
type Config struct {
	Format string `json:"format"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if req.Action != "color_saved" {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	text, err := clipboardText(req.Config, req.Params)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}

	if err := copyToClipboard(text); err != nil {
		writeErrorResponse(fmt.Sprintf("copy failed: %v", err))
		return
	}

	data, _ := json.Marshal(map[string]string{"copied": text})
	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Data: data})
}

// clipboardText renders the saved color in the configured format.
func clipboardText(config, params json.RawMessage) (string, error) {
	var p ColorParams
	if err := json.Unmarshal(params, &p); err != nil {
		return "", fmt.Errorf("failed to parse params: %w", err)
	}

	var c Config
	if len(config) > 0 {
		if err := json.Unmarshal(config, &c); err != nil {
			return "", fmt.Errorf("failed to parse config: %w", err)
		}
	}

	switch strings.ToLower(c.Format) {
	case "", "hex":
		if p.Hex == "" {
			return "", errors.New("hex is required")
		}
		return p.Hex, nil
	case "rgb":
		return fmt.Sprintf("rgb(%d, %d, %d)", p.RGB[0], p.RGB[1], p.RGB[2]), nil
	case "name":
		if p.Name == "" {
			return "", errors.New("name is required")
		}
		return p.Name, nil
	default:
		return "", fmt.Errorf("unknown format: %s", c.Format)
	}
}

// clipboardCommand returns the copy command for goos, preferring Wayland
// when WAYLAND_DISPLAY is set.
func clipboardCommand(goos string, wayland bool) (string, []string, error) {
	switch goos {
	case "darwin":
		return "pbcopy", nil, nil
	case "linux":
		if wayland {
			return "wl-copy", nil, nil
		}
		return "xclip", []string{"-selection", "clipboard"}, nil
	case "windows":
		return "clip", nil, nil
	default:
		return "", nil, fmt.Errorf("clipboard not supported on %s", goos)
	}
}

func copyToClipboard(text string) error {
	name, args, err := clipboardCommand(runtime.GOOS, os.Getenv("WAYLAND_DISPLAY") != "")
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}
