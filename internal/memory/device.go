package memory

import "github.com/go-gl/gl/v4.1-core/gl"

// device is the subset of OpenGL the controller needs.
type device interface {
	allocate(bytes int) (vao, vbo uint32)
	upload(vbo uint32, vertices []float32)
	draw(vao uint32, count int)
	release(vao, vbo uint32)
}

type glDevice struct{}

func (glDevice) allocate(bytes int) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, bytes, nil, gl.DYNAMIC_DRAW)

	// Attribute 0: position (vec2). Attribute 1: color (vec4).
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (glDevice) upload(vbo uint32, vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (glDevice) draw(vao uint32, count int) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.BindVertexArray(0)
}

func (glDevice) release(vao, vbo uint32) {
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
}
