package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/pixelstep/internal/app"
	"github.com/irfansharif/pixelstep/internal/logging"
	"github.com/irfansharif/pixelstep/internal/memory"
	"github.com/irfansharif/pixelstep/internal/render"
)

var log = logging.For("runtime")

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
}

func main() {
	cfg := app.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "pixelstep: %v\n", err)
		os.Exit(2)
	}

	if cfg.Snapshot != "" {
		if err := app.RenderSnapshot(cfg, time.Now()); err != nil {
			log.Fatalf("Failed to render snapshot: %v", err)
		}
		return
	}

	controller, err := cfg.NewController()
	if err != nil {
		log.Warningf("initial shapes: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "pixelstep", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	cw, ch := window.GetFramebufferSize()
	application := app.NewApp(window, app.NewView(cw, ch, cfg.Units), controller, cfg.Grid)
	defer application.MemoryController.Cleanup()

	NewEventHandlers(application)

	title := ""
	frameCount, frameTimeSum := 0, 0.0
	lastStatsUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		application.Tick(frameStart)
		if err := application.PrepareRenderer(); err != nil {
			log.Errorf("Failed to prepare renderer: %v", err)
		}
		if t := application.Title(); t != title {
			application.Window.SetTitle(t)
			title = t
		}

		application.Renderer.Draw()
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameTimeSum += time.Since(frameStart).Seconds() * 1000.0 // ms
		frameCount++
		if now := time.Now(); now.Sub(lastStatsUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastStatsUpdate).Seconds()
			logStats(fps, frameTimeSum/float64(frameCount),
				application.Renderer.Stats(), application.MemoryController.Stats())
			application.MemoryController.PrintStats()
			frameCount, frameTimeSum = 0, 0.0
			lastStatsUpdate = now
		}
	}
}

func logStats(fps, avgFrameTime float64, renderStats render.Stats, memStats memory.Stats) {
	log.Debugf("%.1f FPS (%.2f ms/frame, %d draw calls/frame), %d triangles, %.2f MiB GPU, %.2f µs/draw, %.2f ms/prepare",
		fps,
		avgFrameTime,
		memStats.DrawCalls,
		memStats.Vertices/3,
		float64(memStats.GPUBytes)/(1024.0*1024.0),
		renderStats.LastDrawTimeUs,
		renderStats.LastPrepareTimeMs,
	)
}
