// Package memory manages the GPU vertex buffers backing each scene layer.
//
// Every layer owns one VBO sized in powers of two. Re-uploading a layer
// reuses its buffer when the new geometry fits and doubles the buffer when it
// does not, so a growing reveal only reallocates a handful of times.
package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/irfansharif/pixelstep/internal/logging"
)

var log = logging.For("memory")

const (
	// FloatsPerVertex is the vertex layout: x, y, r, g, b, a.
	FloatsPerVertex = 6

	bytesPerVertex = FloatsPerVertex * 4

	minVertexCapacity = 1024
	maxBufferBytes    = 256 * 1024 * 1024 // 256 MiB
)

// LayerID identifies a layer. Layers are drawn in ascending order.
type LayerID int

// Controller owns the per-layer vertex buffers.
type Controller struct {
	dev     device
	buffers map[LayerID]*buffer
	stats   Stats
}

type buffer struct {
	vao, vbo        uint32
	capacity        int // vertices
	count           int // vertices in use
	initialCapacity int
	growths         int
}

// Stats tracks buffer usage.
type Stats struct {
	Layers       int
	Vertices     int64
	GPUBytes     int64
	GrowthEvents int
	DrawCalls    int // in the last Draw
}

// NewController returns a controller issuing OpenGL calls. It must be used
// from the thread owning the GL context.
func NewController() *Controller {
	return newController(glDevice{})
}

func newController(dev device) *Controller {
	return &Controller{
		dev:     dev,
		buffers: make(map[LayerID]*buffer),
	}
}

// EnsureSlot replaces the geometry of a layer. An empty vertex slice keeps the
// layer's buffer but draws nothing.
func (c *Controller) EnsureSlot(id LayerID, vertices []float32) error {
	if len(vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("vertex data must be multiple of %d floats (x,y,r,g,b,a), got %d", FloatsPerVertex, len(vertices))
	}
	count := len(vertices) / FloatsPerVertex

	b, ok := c.buffers[id]
	if !ok || count > b.capacity {
		capacity, err := capacityFor(count)
		if err != nil {
			return fmt.Errorf("layer %d: %w", id, err)
		}
		if !ok {
			b = &buffer{initialCapacity: capacity}
			c.buffers[id] = b
		} else {
			log.Debugf("growing layer %d buffer %s -> %s vertices",
				id, formatNumber(int64(b.capacity)), formatNumber(int64(capacity)))
			c.dev.release(b.vao, b.vbo)
			b.growths++
			c.stats.GrowthEvents++
		}
		b.vao, b.vbo = c.dev.allocate(capacity * bytesPerVertex)
		b.capacity = capacity
	}

	b.count = count
	if count > 0 {
		c.dev.upload(b.vbo, vertices)
	}
	return nil
}

// RemoveLayer frees a layer's buffer.
func (c *Controller) RemoveLayer(id LayerID) error {
	b, ok := c.buffers[id]
	if !ok {
		return fmt.Errorf("layer %d not found", id)
	}
	c.dev.release(b.vao, b.vbo)
	delete(c.buffers, id)
	return nil
}

// Draw issues one draw call per non-empty layer, in layer order.
func (c *Controller) Draw() error {
	drawCalls := 0
	for _, id := range c.layers() {
		b := c.buffers[id]
		if b.count == 0 {
			continue
		}
		c.dev.draw(b.vao, b.count)
		drawCalls++
	}
	c.stats.DrawCalls = drawCalls
	return nil
}

// Cleanup releases all buffers.
func (c *Controller) Cleanup() {
	for id, b := range c.buffers {
		c.dev.release(b.vao, b.vbo)
		delete(c.buffers, id)
	}
}

// Stats returns current buffer statistics.
func (c *Controller) Stats() Stats {
	c.stats.Layers = len(c.buffers)
	c.stats.Vertices, c.stats.GPUBytes = 0, 0
	for _, b := range c.buffers {
		c.stats.Vertices += int64(b.count)
		c.stats.GPUBytes += int64(b.capacity * bytesPerVertex)
	}
	return c.stats
}

// PrintStats logs buffer statistics at debug level.
func (c *Controller) PrintStats() {
	stats := c.Stats()
	log.Debugf("%d layers, %s GPU, %s vertices, %d growth events, %d draw calls",
		stats.Layers, formatNumber(stats.GPUBytes), formatNumber(stats.Vertices),
		stats.GrowthEvents, stats.DrawCalls)
	for _, id := range c.layers() {
		b := c.buffers[id]
		util := float64(b.count) / float64(b.capacity)
		log.Debugf("  layer#%d %s %.0f%% used (%s/%s vertices), %d× growth (%s -> %s)",
			id, makeUtilizationBar(util, 12), util*100,
			formatNumber(int64(b.count)), formatNumber(int64(b.capacity)),
			b.growths+1, formatNumber(int64(b.initialCapacity)), formatNumber(int64(b.capacity)))
	}
}

func (c *Controller) layers() []LayerID {
	ids := make([]LayerID, 0, len(c.buffers))
	for id := range c.buffers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// capacityFor returns the smallest power-of-two multiple of the minimum
// capacity holding count vertices.
func capacityFor(count int) (int, error) {
	capacity := minVertexCapacity
	for capacity < count {
		capacity *= 2
	}
	if capacity*bytesPerVertex > maxBufferBytes {
		return 0, fmt.Errorf("%d vertices exceed the %s buffer limit", count, formatNumber(maxBufferBytes))
	}
	return capacity, nil
}

// makeUtilizationBar creates a visual bar for utilization percentage.
func makeUtilizationBar(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 1 {
		utilization = 1
	}

	filled := int(utilization * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatNumber formats large numbers with K/M suffixes for readability.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000.0)
}
