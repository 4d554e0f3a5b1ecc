// Package tray provides the system tray menu for chromatip.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
)

// Tray represents the system tray application.
type Tray struct {
	onCycle func() detector.Mode
	onSave  func()
	onOpen  func()
	onQuit  func()
	mode    detector.Mode
	lastHex string
	mu      sync.RWMutex

	// Menu items stored for later updates
	menuMode *systray.MenuItem
	menuLast *systray.MenuItem
}

// New creates a Tray showing mode.
func New(mode detector.Mode) *Tray {
	return &Tray{mode: mode}
}

// OnCycle sets the callback that switches to the next detection mode and
// returns it.
func (t *Tray) OnCycle(fn func() detector.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCycle = fn
}

// OnSave sets the callback for the save menu item.
func (t *Tray) OnSave(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSave = fn
}

// OnOpen sets the callback for the open preview menu item.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit stops a running tray.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Chromatip")
	systray.SetTooltip("Chromatip color picker")

	t.mu.Lock()
	t.menuMode = systray.AddMenuItem(modeTitle(t.mode), "Switch to the next detection mode")
	t.menuLast = systray.AddMenuItem(lastTitle(nil), "Last detected color")
	t.menuLast.Disable()
	t.mu.Unlock()

	systray.AddSeparator()
	menuSave := systray.AddMenuItem("Save Color", "Save the last detected color")
	menuOpen := systray.AddMenuItem("Open Preview...", "Open the live preview in a browser")
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit Chromatip")

	go func() {
		for {
			select {
			case <-t.menuMode.ClickedCh:
				t.handleCycle()
			case <-menuSave.ClickedCh:
				t.call(func(t *Tray) func() { return t.onSave })
			case <-menuOpen.ClickedCh:
				t.call(func(t *Tray) func() { return t.onOpen })
			case <-menuQuit.ClickedCh:
				t.call(func(t *Tray) func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) handleCycle() {
	t.mu.RLock()
	callback := t.onCycle
	t.mu.RUnlock()

	if callback != nil {
		t.SetMode(callback())
	}
}

// call reads a callback under the lock and runs it outside the lock.
func (t *Tray) call(get func(*Tray) func()) {
	t.mu.RLock()
	fn := get(t)
	t.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// SetMode updates the mode menu item.
func (t *Tray) SetMode(m detector.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = m
	if t.menuMode != nil {
		t.menuMode.SetTitle(modeTitle(m))
	}
}

// SetLastColor updates the last color menu item. It is cheap to call on
// every frame: the menu only changes when the hex code does.
func (t *Tray) SetLastColor(c *chroma.Classification) {
	hex := ""
	if c != nil {
		hex = c.Hex
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if hex == t.lastHex {
		return
	}
	t.lastHex = hex
	if t.menuLast != nil {
		t.menuLast.SetTitle(lastTitle(c))
	}
}

// Mode returns the mode currently shown.
func (t *Tray) Mode() detector.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

func modeTitle(m detector.Mode) string {
	return "Mode: " + m.Title()
}

func lastTitle(c *chroma.Classification) string {
	if c == nil {
		return "Last: none"
	}
	return "Last: " + c.Name + " " + c.Hex
}
