package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/pixelstep/internal/app"
	"github.com/irfansharif/pixelstep/internal/geom"
)

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		eh.application.Type(char) // digits, '-' and '.' for the focused field
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods) // for various actions
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for placing line endpoints
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, zoomDelta float64) {
		eh.application.Zoom(zoomDelta) // for zooming
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, newW, newH int) {
		eh.application.Resize(newW, newH) // for window resize
	})
}

// handleKey handles keyboard input events. Text entry arrives through the char
// callback; this handles editing and actions.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	a := eh.application

	// Only editing keys auto-repeat.
	switch key {
	case glfw.KeyBackspace:
		a.Backspace()
		return
	case glfw.KeyTab:
		a.FocusNext((mods & glfw.ModShift) == 0)
		return
	}
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEnter, glfw.KeyKPEnter:
		a.Start(time.Now())
	case glfw.KeySpace:
		a.Demo(time.Now())
	case glfw.KeyDelete:
		a.Clear()
	case glfw.KeyI:
		a.ToggleEndpoints()
	case glfw.KeyG:
		a.ToggleGrid()
	case glfw.KeyEqual:
		if (mods & glfw.ModSuper) != 0 {
			a.Zoom(1) // zoom in
		}
	case glfw.KeyMinus:
		if (mods & glfw.ModSuper) != 0 {
			a.Zoom(-1) // zoom out
		}
	case glfw.KeyEscape:
		a.Window.SetShouldClose(true)
	}
}

// handleMouseButton places a line endpoint under the cursor on left click.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return // nothing to do
	}

	// Cursor positions are in screen coordinates; the view works in
	// framebuffer pixels.
	wnd := eh.application.Window
	mouseX, mouseY := wnd.GetCursorPos()
	scaleX, scaleY := wnd.GetContentScale()
	eh.application.PlaceEndpoint(geom.Pt(mouseX*float64(scaleX), mouseY*float64(scaleY)))
}
